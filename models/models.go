package models

import (
	"encoding/json"
)

type RawStats struct {
	Requests map[string]float64 `json:"requests"`
	Total    float64            `json:"total"`
}

type ZoneRecord struct {
	Name string `json:"name"`
}

// ZonePage is one page of GET /zones. The API has shipped two shapes,
// {count, results} and {total_amount, zones}; both are decoded and Total
// and Zones pick whichever is present.
type ZonePage struct {
	Count       *int         `json:"count"`
	Results     []ZoneRecord `json:"results"`
	TotalAmount *int         `json:"total_amount"`
	ZoneList    []ZoneRecord `json:"zones"`
	Page        *int         `json:"page,omitempty"`
	PerPage     *int         `json:"per_page,omitempty"`

	hasResults bool
	hasZones   bool
}

func (p *ZonePage) UnmarshalJSON(b []byte) error {
	type plain ZonePage
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	*p = ZonePage(v)
	_, p.hasResults = keys["results"]
	_, p.hasZones = keys["zones"]
	return nil
}

// Total returns the reported zone count and whether either variant carried one.
func (p *ZonePage) Total() (int, bool) {
	switch {
	case p.Count != nil:
		return *p.Count, true
	case p.TotalAmount != nil:
		return *p.TotalAmount, true
	}
	return 0, false
}

// Zones returns the page's records and whether a list field matching the
// total's variant was present.
func (p *ZonePage) Zones() ([]ZoneRecord, bool) {
	switch {
	case p.Count != nil && p.hasResults:
		return p.Results, true
	case p.TotalAmount != nil && p.hasZones:
		return p.ZoneList, true
	}
	return nil, false
}

type Identity struct {
	Name string `json:"name"`
}

type APIErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type Variable string

const (
	VariableZone        Variable = "zone"
	VariableRecordType  Variable = "record_type"
	VariableGranularity Variable = "granularity"
)

type VariableSelector struct {
	Value Variable `json:"value"`
	Label string   `json:"label,omitempty"`
}

type VariableQuery struct {
	Selector *VariableSelector `json:"selector,omitempty"`
	Value    string            `json:"value,omitempty"`
}

func DefaultVariableQuery() VariableQuery {
	return VariableQuery{
		Selector: &VariableSelector{Value: VariableZone, Label: "Zone"},
	}
}

type MetricFindValue struct {
	Text string `json:"text"`
}

type ScopedVar struct {
	Text  string `json:"text"`
	Value any    `json:"value"`
}

type ScopedVars map[string]ScopedVar

type ProbeStatus string

const (
	ProbeSuccess ProbeStatus = "success"
	ProbeError   ProbeStatus = "error"
)

type ProbeResult struct {
	Status  ProbeStatus `json:"status"`
	Message string      `json:"message"`
}
