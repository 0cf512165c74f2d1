package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dns-stats-datasource/models"
)

const defaultIntervalSeconds = 5 * 60

// statsQuery builds the per-bucket count of client queries for q.
func statsQuery(q models.Query, tr models.TimeRange) (string, []any) {
	interval := int64(defaultIntervalSeconds)
	if q.HasGranularity() {
		interval = q.Granularity.Value.Seconds()
	}
	from, to := tr.UnixSeconds()

	where := " WHERE response_type = 'CQ' AND timestamp >= toDateTime(?) AND timestamp <= toDateTime(?)"
	args := []any{from, to}

	if !q.Zone.IsAll() {
		where += " AND (qname = ? OR endsWith(qname, ?))"
		args = append(args, q.Zone.Name(), "."+q.Zone.Name())
	}
	if qtype, ok := q.RecordType.QType(); ok {
		where += " AND qtype = ?"
		args = append(args, qtype)
	}

	query := fmt.Sprintf(`
		SELECT
			toInt64(toUnixTimestamp(toStartOfInterval(timestamp, INTERVAL %d SECOND))) AS ts,
			toInt64(count()) AS cnt
		FROM dns_logs`, interval) + where + `
		GROUP BY ts
		ORDER BY ts`

	return query, args
}

// FetchStats answers the same contract as the API client, keyed by epoch
// seconds.
func (s *Source) FetchStats(ctx context.Context, q models.Query, tr models.TimeRange) (stats *models.RawStats, err error) {
	if err := models.ValidateForFetch(q); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { s.metrics.ObserveUpstream("clickhouse_statistics", time.Since(start), err) }()

	query, args := statsQuery(q, tr)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &models.NetworkError{Op: "query dns_logs", Err: err}
	}
	defer rows.Close()

	stats = &models.RawStats{Requests: map[string]float64{}}
	for rows.Next() {
		var ts, cnt int64
		if err := rows.Scan(&ts, &cnt); err != nil {
			return nil, &models.MalformedResponseError{Reason: "dns_logs row: " + err.Error()}
		}
		stats.Requests[strconv.FormatInt(ts, 10)] += float64(cnt)
		stats.Total += float64(cnt)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.NetworkError{Op: "query dns_logs", Err: err}
	}
	return stats, nil
}

// ListZones returns the registrable domains seen in the logs.
func (s *Source) ListZones(ctx context.Context) (zones []models.ZoneRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveUpstream("clickhouse_zones", time.Since(start), err) }()

	rows, err := s.DB.QueryContext(ctx, `
		SELECT DISTINCT cutToFirstSignificantSubdomain(qname) AS zone
		FROM dns_logs
		WHERE zone != ''
		ORDER BY zone
	`)
	if err != nil {
		return nil, &models.NetworkError{Op: "query dns_logs zones", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &models.MalformedResponseError{Reason: "dns_logs zone row: " + err.Error()}
		}
		zones = append(zones, models.ZoneRecord{Name: strings.TrimSuffix(name, ".")})
	}
	if err := rows.Err(); err != nil {
		return nil, &models.NetworkError{Op: "query dns_logs zones", Err: err}
	}
	return zones, nil
}

func (s *Source) Probe(ctx context.Context) models.ProbeResult {
	if err := s.DB.PingContext(ctx); err != nil {
		return models.ProbeResult{Status: models.ProbeError, Message: "ClickHouse unreachable: " + err.Error()}
	}
	return models.ProbeResult{Status: models.ProbeSuccess, Message: "ClickHouse OK"}
}
