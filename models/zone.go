package models

import (
	"encoding/json"
)

const allZonesName = "all"

type zoneKind uint8

const (
	zoneUnset zoneKind = iota
	zoneAll
	zoneSpecific
)

// Zone is either unset, the AllZones sentinel or one specific zone name.
// The zero value is unset.
type Zone struct {
	kind zoneKind
	name string
}

func AllZones() Zone {
	return Zone{kind: zoneAll}
}

// SpecificZone returns the named zone. "all" and "" map to AllZones and unset.
func SpecificZone(name string) Zone {
	switch name {
	case "":
		return Zone{}
	case allZonesName:
		return AllZones()
	}
	return Zone{kind: zoneSpecific, name: name}
}

func (z Zone) IsSet() bool { return z.kind != zoneUnset }

func (z Zone) IsAll() bool { return z.kind == zoneAll }

// Name is the zone name for a specific zone and "" otherwise.
func (z Zone) Name() string { return z.name }

// PathSegment is the value used in /zones/{zone}/statistics.
func (z Zone) PathSegment() string {
	if z.kind == zoneAll {
		return allZonesName
	}
	return z.name
}

// String is the label value: "all", the name, or "" when unset.
func (z Zone) String() string {
	return z.PathSegment()
}

func (z Zone) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

func (z *Zone) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*z = Zone{}
		return nil
	}
	*z = SpecificZone(*s)
	return nil
}
