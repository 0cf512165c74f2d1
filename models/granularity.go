package models

import (
	"encoding/json"
	"fmt"
)

// Granularity is the bucket width the statistics API aggregates by.
type Granularity string

const (
	FiveMinutes              Granularity = "5m"
	TenMinutes               Granularity = "10m"
	ThirtyMinutes            Granularity = "30m"
	OneHour                  Granularity = "1h"
	NinetyMinutes            Granularity = "1.5h"
	TwoHoursFortyFiveMinutes Granularity = "2h45m"
	OneDay                   Granularity = "24h"
)

var granularitySeconds = map[Granularity]int64{
	FiveMinutes:              5 * 60,
	TenMinutes:               10 * 60,
	ThirtyMinutes:            30 * 60,
	OneHour:                  60 * 60,
	NinetyMinutes:            90 * 60,
	TwoHoursFortyFiveMinutes: 2*60*60 + 45*60,
	OneDay:                   24 * 60 * 60,
}

func AllGranularities() []Granularity {
	return []Granularity{
		FiveMinutes,
		TenMinutes,
		ThirtyMinutes,
		OneHour,
		NinetyMinutes,
		TwoHoursFortyFiveMinutes,
		OneDay,
	}
}

// Seconds returns the bucket width in seconds, or 0 if g is not a known value.
func (g Granularity) Seconds() int64 {
	return granularitySeconds[g]
}

func (g Granularity) Valid() bool {
	_, ok := granularitySeconds[g]
	return ok
}

// GranularityOption is the selectable value the query editor stores.
type GranularityOption struct {
	Value Granularity `json:"value"`
	Label string      `json:"label,omitempty"`
}

func NewGranularityOption(g Granularity) *GranularityOption {
	return &GranularityOption{Value: g, Label: string(g)}
}

// UnmarshalJSON accepts both {"value":"1h","label":"1h"} and a bare "1h".
func (o *GranularityOption) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		o.Value = Granularity(s)
		o.Label = s
		return nil
	}

	type plain GranularityOption
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("granularity: %w", err)
	}
	*o = GranularityOption(p)
	return nil
}
