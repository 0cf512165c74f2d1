package client

import (
	"context"
	"encoding/json"
	"strconv"

	"dns-stats-datasource/models"
)

// StatsParams maps a query and time range onto the query string of
// GET /zones/{zone}/statistics.
func StatsParams(q models.Query, tr models.TimeRange) map[string]string {
	from, to := tr.UnixSeconds()
	params := map[string]string{
		"from": strconv.FormatInt(from, 10),
		"to":   strconv.FormatInt(to, 10),
	}
	if q.RecordType.IsFilter() {
		params["record_type"] = string(q.RecordType)
	}
	if q.HasGranularity() {
		params["granularity"] = strconv.FormatInt(q.Granularity.Value.Seconds(), 10)
	}
	return params
}

// FetchStats returns the request counts for one query. A nil result with a
// nil error means the API answered with an empty body.
func (c *Client) FetchStats(ctx context.Context, q models.Query, tr models.TimeRange) (*models.RawStats, error) {
	if err := models.ValidateForFetch(q); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, c.api, request{
		endpoint:   "statistics",
		path:       "/zones/{zone}/statistics",
		pathParams: map[string]string{"zone": q.Zone.PathSegment()},
		query:      StatsParams(q, tr),
	})
	if err != nil {
		return nil, err
	}
	if isEmptyBody(body) {
		return nil, nil
	}

	var stats models.RawStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, &models.MalformedResponseError{Reason: "statistics: " + err.Error()}
	}
	return &stats, nil
}
