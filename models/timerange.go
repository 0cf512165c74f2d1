package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type TimeRange struct {
	From time.Time
	To   time.Time
}

// UnixSeconds floors both bounds to whole epoch seconds. A missing bound
// counts as the epoch.
func (r TimeRange) UnixSeconds() (from, to int64) {
	return floorDiv(epochMillis(r.From), 1000), floorDiv(epochMillis(r.To), 1000)
}

func epochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

type timeRangeJSON struct {
	From json.RawMessage `json:"from"`
	To   json.RawMessage `json:"to"`
}

func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"from": r.From.UTC().Format(time.RFC3339Nano),
		"to":   r.To.UTC().Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON accepts epoch milliseconds (number or numeric string) and
// RFC 3339 timestamps for each bound.
func (r *TimeRange) UnmarshalJSON(b []byte) error {
	var raw timeRangeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	from, err := parseInstant(raw.From)
	if err != nil {
		return fmt.Errorf("range.from: %w", err)
	}
	to, err := parseInstant(raw.To)
	if err != nil {
		return fmt.Errorf("range.to: %w", err)
	}
	r.From, r.To = from, to
	return nil
}

func parseInstant(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(n), nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
