package datasource

import (
	"context"
	"fmt"

	"github.com/grafana/grafana-plugin-sdk-go/data"
	"golang.org/x/sync/errgroup"

	"dns-stats-datasource/logging"
	"dns-stats-datasource/metrics"
	"dns-stats-datasource/models"
	"dns-stats-datasource/transform"
)

const StateDone = "Done"

// Backend is where statistics come from: the REST API client or the
// ClickHouse source.
type Backend interface {
	FetchStats(ctx context.Context, q models.Query, tr models.TimeRange) (*models.RawStats, error)
	ListZones(ctx context.Context) ([]models.ZoneRecord, error)
	Probe(ctx context.Context) models.ProbeResult
}

type QueryRequest struct {
	RequestID  string            `json:"requestId"`
	Range      models.TimeRange  `json:"range"`
	Targets    []models.Query    `json:"targets"`
	ScopedVars models.ScopedVars `json:"scopedVars,omitempty"`
}

type QueryResponse struct {
	Data  []*data.Frame `json:"data"`
	Key   string        `json:"key,omitempty"`
	State string        `json:"state"`
}

type DataSource struct {
	backend     Backend
	transformer *transform.Transformer
	metrics     *metrics.Metrics
}

func New(backend Backend, m *metrics.Metrics) *DataSource {
	return &DataSource{
		backend:     backend,
		transformer: transform.Default,
		metrics:     m,
	}
}

// WithTransformer swaps the transformer, e.g. for a different unit resolver.
func (d *DataSource) WithTransformer(t *transform.Transformer) *DataSource {
	d.transformer = t
	return d
}

// Query runs every visible target concurrently. Data[i] belongs to the
// i-th prepared target. A single failing target fails the whole request.
func (d *DataSource) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	targets := models.PrepareTargets(req.Targets)
	frames := make([]*data.Frame, len(targets))

	var g errgroup.Group
	for i, q := range targets {
		g.Go(func() error {
			stats, err := d.backend.FetchStats(ctx, q, req.Range)
			if err != nil {
				return fmt.Errorf("query %q: %w", q.RefID, err)
			}
			var data []models.RawStats
			if stats != nil {
				data = []models.RawStats{*stats}
			}
			frames[i] = d.transformer.Transform(data, q, req.ScopedVars)
			return nil
		})
	}

	err := g.Wait()
	d.metrics.ObserveBatch(len(targets), err)
	if err != nil {
		logging.GetLogger(ctx).Errorf("query batch of %d targets failed: %v", len(targets), err)
		return nil, err
	}

	return &QueryResponse{Data: frames, Key: req.RequestID, State: StateDone}, nil
}

// MetricFindQuery resolves dashboard variable values for a selector.
func (d *DataSource) MetricFindQuery(ctx context.Context, vq models.VariableQuery) ([]models.MetricFindValue, error) {
	if vq.Selector == nil {
		vq.Selector = models.DefaultVariableQuery().Selector
	}

	switch vq.Selector.Value {
	case models.VariableZone:
		zones, err := d.backend.ListZones(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(zones))
		for i, z := range zones {
			names[i] = z.Name
		}
		return valueVariable(names), nil
	case models.VariableRecordType:
		types := models.AllRecordTypes()
		names := make([]string, len(types))
		for i, rt := range types {
			names[i] = string(rt)
		}
		return valueVariable(names), nil
	case models.VariableGranularity:
		gs := models.AllGranularities()
		names := make([]string, len(gs))
		for i, g := range gs {
			names[i] = string(g)
		}
		return valueVariable(names), nil
	}
	return []models.MetricFindValue{}, nil
}

// ListZones exposes the backend listing for selection UIs.
func (d *DataSource) ListZones(ctx context.Context) ([]models.ZoneRecord, error) {
	return d.backend.ListZones(ctx)
}

func (d *DataSource) CheckHealth(ctx context.Context) models.ProbeResult {
	return d.backend.Probe(ctx)
}

// valueVariable dedupes values keeping the first occurrence's position.
func valueVariable(values []string) []models.MetricFindValue {
	seen := make(map[string]struct{}, len(values))
	out := make([]models.MetricFindValue, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, models.MetricFindValue{Text: v})
	}
	return out
}
