package transform

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/grafana/grafana-plugin-sdk-go/data"

	"dns-stats-datasource/models"
)

const (
	defaultBucketMs int64 = 5 * 60 * 1000
	valueDecimals         = 2

	// Timestamps at or below this are taken as seconds. The API has been
	// seen answering in both units and there is no field telling which.
	millisecondThreshold = 1e12

	// Bucket starts must fit in int64 milliseconds.
	minBucketMs = float64(math.MinInt64)
	maxBucketMs = float64(math.MaxInt64)
)

type point struct {
	ts    int64
	value float64
}

type Transformer struct {
	Units UnitResolver
}

var Default = &Transformer{Units: NoUnit}

// Transform reshapes statistics responses into a frame with the default
// unit resolver.
func Transform(responses []models.RawStats, q models.Query, vars models.ScopedVars) *data.Frame {
	return Default.Transform(responses, q, vars)
}

// Transform builds one time field from the first response and one value
// field per response. Value fields are bucketed independently and are not
// aligned or padded to the time field.
func (t *Transformer) Transform(responses []models.RawStats, q models.Query, vars models.ScopedVars) *data.Frame {
	if len(responses) == 0 {
		return EmptyFrame(q.RefID)
	}

	units := t.Units
	if units == nil {
		units = NoUnit
	}
	unit, convert := units(q, responses)
	width := BucketWidthMs(q)

	axis := bucketize(responses[0].Requests, width)
	times := make([]time.Time, len(axis))
	for i, p := range axis {
		times[i] = time.UnixMilli(p.ts).UTC()
	}

	frame := data.NewFrame("", data.NewField(TimeFieldName, nil, times))
	frame.RefID = q.RefID

	decimals := uint16(valueDecimals)
	for _, row := range responses {
		points := bucketize(row.Requests, width)
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = convert(p.value)
		}

		name, labels := labelInfo(rawLabels(q), q, vars)
		field := data.NewField(ValueFieldName, labels, values)
		field.Config = &data.FieldConfig{
			Unit:              unit,
			Decimals:          &decimals,
			DisplayName:       name,
			DisplayNameFromDS: name,
		}
		frame.Fields = append(frame.Fields, field)
	}

	return frame
}

// BucketWidthMs is the granularity in milliseconds, or five minutes when
// the query carries no usable granularity.
func BucketWidthMs(q models.Query) int64 {
	if q.HasGranularity() {
		if s := q.Granularity.Value.Seconds(); s > 0 {
			return s * 1000
		}
	}
	return defaultBucketMs
}

// NormalizeTimestamp converts a seconds timestamp to milliseconds and
// passes millisecond timestamps through.
func NormalizeTimestamp(ts float64) float64 {
	if ts > millisecondThreshold {
		return ts
	}
	return ts * 1000
}

// bucketize aligns every timestamp to its bucket start, sums the values
// sharing a bucket and returns the buckets in ascending order. Keys that
// are not numbers, or whose bucket does not fit in int64 milliseconds, are
// skipped.
func bucketize(requests map[string]float64, width int64) []point {
	raw := make([]point, 0, len(requests))
	for k, v := range requests {
		ts, err := strconv.ParseFloat(k, 64)
		if err != nil || math.IsNaN(ts) || math.IsInf(ts, 0) {
			continue
		}
		w := float64(width)
		bucket := math.Floor(NormalizeTimestamp(ts)/w) * w
		if bucket < minBucketMs || bucket >= maxBucketMs {
			continue
		}
		raw = append(raw, point{ts: int64(bucket), value: v})
	}
	// sum in a fixed order so float results do not depend on map order
	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].ts != raw[j].ts {
			return raw[i].ts < raw[j].ts
		}
		return raw[i].value < raw[j].value
	})

	out := make([]point, 0, len(raw))
	for _, p := range raw {
		if n := len(out); n > 0 && out[n-1].ts == p.ts {
			out[n-1].value += p.value
			continue
		}
		out = append(out, p)
	}
	return out
}
