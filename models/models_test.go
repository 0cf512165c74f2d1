package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranularity_Seconds(t *testing.T) {
	for _, g := range AllGranularities() {
		assert.Truef(t, g.Valid(), "%s", g)
		assert.Positivef(t, g.Seconds(), "%s", g)
	}
	assert.Len(t, granularitySeconds, len(AllGranularities()))

	assert.EqualValues(t, 300, FiveMinutes.Seconds())
	assert.EqualValues(t, 3600, OneHour.Seconds())
	assert.EqualValues(t, 5400, NinetyMinutes.Seconds())
	assert.EqualValues(t, 9900, TwoHoursFortyFiveMinutes.Seconds())
	assert.EqualValues(t, 86400, OneDay.Seconds())

	assert.False(t, Granularity("3h").Valid())
	assert.Zero(t, Granularity("3h").Seconds())
}

func TestGranularityOption_UnmarshalJSON(t *testing.T) {
	tests := map[string]struct {
		in   string
		want GranularityOption
	}{
		"object":      {in: `{"value":"2h45m","label":"2h45m"}`, want: GranularityOption{Value: TwoHoursFortyFiveMinutes, Label: "2h45m"}},
		"bare string": {in: `"10m"`, want: GranularityOption{Value: TenMinutes, Label: "10m"}},
		"no value":    {in: `{"label":"x"}`, want: GranularityOption{Label: "x"}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var got GranularityOption
			require.NoError(t, json.Unmarshal([]byte(test.in), &got))
			assert.Equal(t, test.want, got)
		})
	}

	var bad GranularityOption
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestRecordType_QType(t *testing.T) {
	for _, rt := range AllRecordTypes() {
		if rt == RecordTypeAll {
			continue
		}
		_, ok := rt.QType()
		assert.Truef(t, ok, "%s", rt)
	}

	qt, ok := RecordTypeAAAA.QType()
	require.True(t, ok)
	assert.EqualValues(t, 28, qt)

	_, ok = RecordTypeAll.QType()
	assert.False(t, ok)
	_, ok = RecordType("").QType()
	assert.False(t, ok)
	assert.False(t, RecordTypeAll.IsFilter())
	assert.True(t, RecordTypeMX.IsFilter())
}

func TestZone(t *testing.T) {
	assert.False(t, Zone{}.IsSet())
	assert.True(t, AllZones().IsAll())
	assert.Equal(t, "all", AllZones().PathSegment())
	assert.Empty(t, AllZones().Name())

	z := SpecificZone("example.com")
	assert.True(t, z.IsSet())
	assert.False(t, z.IsAll())
	assert.Equal(t, "example.com", z.PathSegment())
	assert.Equal(t, AllZones(), SpecificZone("all"))
	assert.Equal(t, Zone{}, SpecificZone(""))

	var q struct {
		Zone Zone `json:"zone"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"zone":"all"}`), &q))
	assert.True(t, q.Zone.IsAll())
	require.NoError(t, json.Unmarshal([]byte(`{"zone":null}`), &q))
	assert.False(t, q.Zone.IsSet())

	b, err := json.Marshal(SpecificZone("example.org"))
	require.NoError(t, err)
	assert.Equal(t, `"example.org"`, string(b))
}

func TestNormalize(t *testing.T) {
	defaults := DefaultQuery()

	assert.Equal(t, defaults, Normalize(Query{}, defaults))
	assert.Equal(t, defaults, Normalize(defaults, defaults))

	full := Query{
		RefID:        "B",
		Zone:         SpecificZone("example.com"),
		RecordType:   RecordTypeTXT,
		Granularity:  NewGranularityOption(OneDay),
		LegendFormat: "{{zone}}",
	}
	assert.Equal(t, full, Normalize(full, defaults))

	partial := Normalize(Query{RefID: "C", RecordType: RecordTypeA}, defaults)
	assert.Equal(t, "C", partial.RefID)
	assert.True(t, partial.Zone.IsAll())
	assert.Equal(t, RecordTypeA, partial.RecordType)
	assert.Equal(t, OneHour, partial.Granularity.Value)
}

func TestNormalize_GranularityWithoutValue(t *testing.T) {
	q := Normalize(Query{Granularity: &GranularityOption{Label: "pick one"}}, DefaultQuery())

	require.NotNil(t, q.Granularity)
	assert.Equal(t, OneHour, q.Granularity.Value)
	assert.Equal(t, "1h", q.Granularity.Label)

	q = Normalize(Query{Granularity: &GranularityOption{Value: TenMinutes}}, DefaultQuery())
	assert.Equal(t, "10m", q.Granularity.Label)
}

func TestNormalize_DoesNotAliasDefaults(t *testing.T) {
	defaults := DefaultQuery()
	q := Normalize(Query{}, defaults)
	q.Granularity.Value = OneDay

	assert.Equal(t, OneHour, defaults.Granularity.Value)
}

func TestPrepareTargets(t *testing.T) {
	assert.Equal(t, []Query{DefaultQuery()}, PrepareTargets(nil))
	assert.Equal(t, []Query{DefaultQuery()}, PrepareTargets([]Query{{RefID: "A", Hide: true}}))

	got := PrepareTargets([]Query{
		{RefID: "A", Zone: SpecificZone("a.com")},
		{RefID: "B", Hide: true},
		{RefID: "C"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].RefID)
	assert.Equal(t, "a.com", got[0].Zone.Name())
	assert.Equal(t, "C", got[1].RefID)
	assert.True(t, got[1].Zone.IsAll())
}

func TestQuery_UnmarshalJSON(t *testing.T) {
	var q Query
	in := `{"refId":"A","zone":"example.com","record_type":"AAAA","granularity":{"value":"30m","label":"30m"},"legendFormat":"{{zone}}"}`
	require.NoError(t, json.Unmarshal([]byte(in), &q))

	assert.Equal(t, "A", q.RefID)
	assert.Equal(t, "example.com", q.Zone.Name())
	assert.Equal(t, RecordTypeAAAA, q.RecordType)
	assert.Equal(t, ThirtyMinutes, q.Granularity.Value)
	assert.Equal(t, "{{zone}}", q.LegendFormat)
}

func TestTimeRange(t *testing.T) {
	var tr TimeRange
	require.NoError(t, json.Unmarshal([]byte(`{"from":1700000000999,"to":"1700003600000"}`), &tr))
	from, to := tr.UnixSeconds()
	assert.EqualValues(t, 1700000000, from)
	assert.EqualValues(t, 1700003600, to)

	require.NoError(t, json.Unmarshal([]byte(`{"from":"2023-11-14T22:13:20Z","to":"2023-11-14T23:13:20.500Z"}`), &tr))
	from, to = tr.UnixSeconds()
	assert.EqualValues(t, 1700000000, from)
	assert.EqualValues(t, 1700003600, to)

	assert.Error(t, json.Unmarshal([]byte(`{"from":"yesterday"}`), &tr))

	neg := TimeRange{From: time.UnixMilli(-1500)}
	from, _ = neg.UnixSeconds()
	assert.EqualValues(t, -2, from)
}

func TestTimeRange_MissingBounds(t *testing.T) {
	from, to := TimeRange{}.UnixSeconds()
	assert.EqualValues(t, 0, from)
	assert.EqualValues(t, 0, to)

	var tr TimeRange
	require.NoError(t, json.Unmarshal([]byte(`{"from":null,"to":1700003600000}`), &tr))
	from, to = tr.UnixSeconds()
	assert.EqualValues(t, 0, from)
	assert.EqualValues(t, 1700003600, to)
}

func TestZonePage(t *testing.T) {
	tests := map[string]struct {
		in        string
		wantTotal int
		wantOK    bool
		wantZones []ZoneRecord
		wantList  bool
	}{
		"count/results": {
			in:        `{"count":2,"results":[{"name":"a.com"},{"name":"b.com"}]}`,
			wantTotal: 2, wantOK: true,
			wantZones: []ZoneRecord{{Name: "a.com"}, {Name: "b.com"}}, wantList: true,
		},
		"total_amount/zones": {
			in:        `{"total_amount":1,"zones":[{"name":"c.com"}]}`,
			wantTotal: 1, wantOK: true,
			wantZones: []ZoneRecord{{Name: "c.com"}}, wantList: true,
		},
		"total without list": {
			in:        `{"count":3}`,
			wantTotal: 3, wantOK: true,
		},
		"mixed variants": {
			in:        `{"count":1,"zones":[{"name":"c.com"}]}`,
			wantTotal: 1, wantOK: true,
		},
		"no total": {
			in: `{"results":[]}`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var p ZonePage
			require.NoError(t, json.Unmarshal([]byte(test.in), &p))

			total, ok := p.Total()
			assert.Equal(t, test.wantOK, ok)
			assert.Equal(t, test.wantTotal, total)

			zones, ok := p.Zones()
			assert.Equal(t, test.wantList, ok)
			assert.Equal(t, test.wantZones, zones)
		})
	}
}

func TestErrorKinds(t *testing.T) {
	err := error(&ValidationError{Field: "zone"})
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "zone is required")

	wrapped := &NetworkError{Op: "GET /zones", Err: assert.AnError}
	assert.True(t, IsNetwork(wrapped))
	assert.ErrorIs(t, wrapped, assert.AnError)

	assert.True(t, IsHTTPStatus(&HTTPStatusError{StatusCode: 500, Status: "500 Internal Server Error"}))
	assert.True(t, IsMalformed(&MalformedResponseError{Reason: "no total"}))
	assert.False(t, IsMalformed(wrapped))
}

func TestValidateForFetch(t *testing.T) {
	err := ValidateForFetch(Query{RecordType: RecordTypeA})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "zone")

	err = ValidateForFetch(Query{Zone: AllZones(), Granularity: &GranularityOption{Value: "7m"}})
	assert.True(t, IsValidation(err))

	err = ValidateForFetch(Query{Zone: AllZones(), RecordType: "SPF2"})
	assert.True(t, IsValidation(err))

	assert.NoError(t, ValidateForFetch(DefaultQuery()))
	assert.NoError(t, ValidateForFetch(Query{Zone: SpecificZone("a.com")}))
}
