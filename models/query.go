package models

// Query is one panel target.
type Query struct {
	RefID        string             `json:"refId"`
	Hide         bool               `json:"hide,omitempty"`
	Zone         Zone               `json:"zone"`
	RecordType   RecordType         `json:"record_type,omitempty"`
	Granularity  *GranularityOption `json:"granularity,omitempty"`
	LegendFormat string             `json:"legendFormat,omitempty"`
}

// HasGranularity reports whether the granularity option carries a value.
func (q Query) HasGranularity() bool {
	return q.Granularity != nil && q.Granularity.Value != ""
}

func DefaultQuery() Query {
	return Query{
		Zone:        AllZones(),
		RecordType:  RecordTypeAll,
		Granularity: NewGranularityOption(OneHour),
	}
}

// Normalize fills every unset field of q from defaults. Fields already set
// on q win. A granularity option without a value counts as unset.
func Normalize(q Query, defaults Query) Query {
	out := q
	if !out.Zone.IsSet() {
		out.Zone = defaults.Zone
	}
	if out.RecordType == "" {
		out.RecordType = defaults.RecordType
	}
	switch {
	case out.HasGranularity():
		g := *out.Granularity
		if g.Label == "" {
			g.Label = string(g.Value)
		}
		out.Granularity = &g
	case defaults.Granularity != nil:
		g := *defaults.Granularity
		out.Granularity = &g
	default:
		out.Granularity = nil
	}
	if out.LegendFormat == "" {
		out.LegendFormat = defaults.LegendFormat
	}
	if out.RefID == "" {
		out.RefID = defaults.RefID
	}
	return out
}

// PrepareTargets drops hidden targets and normalizes the rest. When nothing
// is left, the default query is returned on its own.
func PrepareTargets(targets []Query) []Query {
	visible := make([]Query, 0, len(targets))
	for _, t := range targets {
		if !t.Hide {
			visible = append(visible, t)
		}
	}

	defaults := DefaultQuery()
	if len(visible) == 0 {
		return []Query{Normalize(Query{}, defaults)}
	}

	out := make([]Query, len(visible))
	for i, t := range visible {
		out[i] = Normalize(t, defaults)
	}
	return out
}

// ValidateForFetch checks the fields a backend needs before it issues any
// request for q.
func ValidateForFetch(q Query) error {
	if !q.Zone.IsSet() {
		return &ValidationError{Field: "zone"}
	}
	if q.HasGranularity() && !q.Granularity.Value.Valid() {
		return &ValidationError{Field: "granularity", Reason: "unknown value " + string(q.Granularity.Value)}
	}
	if q.RecordType.IsFilter() {
		if _, ok := q.RecordType.QType(); !ok {
			return &ValidationError{Field: "record_type", Reason: "unknown value " + string(q.RecordType)}
		}
	}
	return nil
}
