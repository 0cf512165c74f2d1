package client

import (
	"context"
	"encoding/json"
	"strconv"

	"golang.org/x/sync/errgroup"

	"dns-stats-datasource/models"
)

const zonesPageLimit = 1000

// ListZones walks every page of GET /zones. Pages after the first are
// fetched concurrently and joined in page order. Duplicates are kept.
func (c *Client) ListZones(ctx context.Context) ([]models.ZoneRecord, error) {
	total, zones, err := c.zonesPage(ctx, 0)
	if err != nil {
		return nil, err
	}
	if total <= zonesPageLimit {
		return zones, nil
	}

	remaining := (total+zonesPageLimit-1)/zonesPageLimit - 1
	pages := make([][]models.ZoneRecord, remaining)

	var g errgroup.Group
	for i := range remaining {
		g.Go(func() error {
			_, page, err := c.zonesPage(ctx, (i+1)*zonesPageLimit)
			pages[i] = page
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, page := range pages {
		zones = append(zones, page...)
	}
	return zones, nil
}

func (c *Client) zonesPage(ctx context.Context, offset int) (int, []models.ZoneRecord, error) {
	body, err := c.get(ctx, c.api, request{
		endpoint: "zones",
		path:     "/zones",
		query: map[string]string{
			"limit":  strconv.Itoa(zonesPageLimit),
			"offset": strconv.Itoa(offset),
		},
	})
	if err != nil {
		return 0, nil, err
	}

	var page models.ZonePage
	if err := json.Unmarshal(body, &page); err != nil {
		return 0, nil, &models.MalformedResponseError{Reason: "zones page at offset " + strconv.Itoa(offset) + ": " + err.Error()}
	}
	total, ok := page.Total()
	if !ok {
		return 0, nil, &models.MalformedResponseError{Reason: "zones page has neither count nor total_amount"}
	}
	zones, ok := page.Zones()
	if !ok {
		return 0, nil, &models.MalformedResponseError{Reason: "zones page has no results or zones list"}
	}
	return total, zones, nil
}
