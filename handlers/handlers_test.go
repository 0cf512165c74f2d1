package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dns-stats-datasource/config"
	"dns-stats-datasource/datasource"
	"dns-stats-datasource/logging"
	"dns-stats-datasource/metrics"
	"dns-stats-datasource/models"
)

type stubBackend struct {
	stats    *models.RawStats
	statsErr error
	zones    []models.ZoneRecord
	probe    models.ProbeResult
}

func (s *stubBackend) FetchStats(_ context.Context, q models.Query, _ models.TimeRange) (*models.RawStats, error) {
	if err := models.ValidateForFetch(q); err != nil {
		return nil, err
	}
	return s.stats, s.statsErr
}

func (s *stubBackend) ListZones(context.Context) ([]models.ZoneRecord, error) {
	return s.zones, nil
}

func (s *stubBackend) Probe(context.Context) models.ProbeResult {
	return s.probe
}

func testConf() config.DatasourceConfig {
	return config.DatasourceConfig{
		Backend:    config.BackendAPI,
		APIURL:     "https://api.example.net/v1",
		APIKey:     "s3cret-key",
		AuthScheme: "APIKey",
		Timeout:    30 * time.Second,
	}
}

func newTestApp(t *testing.T, backend datasource.Backend, auth config.AuthConfig) *fiber.App {
	t.Helper()
	m := metrics.New()
	h := New(datasource.New(backend, m), datasource.NewDescriptor(config.BackendAPI), testConf(), m)
	return NewApp(h, auth)
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestQuery(t *testing.T) {
	backend := &stubBackend{stats: &models.RawStats{Requests: map[string]float64{"1699999200": 4}, Total: 4}}
	app := newTestApp(t, backend, config.AuthConfig{})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/ds/query",
		`{"requestId":"Q1","range":{"from":1700000000000,"to":1700003600000},"targets":[{"refId":"A","zone":"example.com"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(logging.HTTPXRequestID))

	var out struct {
		Data []struct {
			Schema struct {
				RefID  string `json:"refId"`
				Fields []struct {
					Name string `json:"name"`
				} `json:"fields"`
			} `json:"schema"`
			Data struct {
				Values [][]float64 `json:"values"`
			} `json:"data"`
		} `json:"data"`
		Key   string `json:"key"`
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Q1", out.Key)
	assert.Equal(t, datasource.StateDone, out.State)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "A", out.Data[0].Schema.RefID)
	require.Len(t, out.Data[0].Data.Values, 2)
	assert.Equal(t, []float64{1699999200000}, out.Data[0].Data.Values[0])
	assert.Equal(t, []float64{4}, out.Data[0].Data.Values[1])
}

func TestQuery_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		stats    error
		body     string
		wantCode int
	}{
		{
			name:     "bad json",
			body:     `{"targets":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown granularity",
			body:     `{"targets":[{"refId":"A","zone":"all","granularity":"7m"}]}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "upstream status",
			stats:    &models.HTTPStatusError{StatusCode: 401, Status: "401 Unauthorized", Message: "invalid key"},
			body:     `{"targets":[{"refId":"A"}]}`,
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "network",
			stats:    &models.NetworkError{Op: "GET statistics", Err: context.DeadlineExceeded},
			body:     `{"targets":[{"refId":"A"}]}`,
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &stubBackend{statsErr: tt.stats}, config.AuthConfig{})

			resp, body := doJSON(t, app, fiber.MethodPost, "/api/ds/query", tt.body)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			var e ErrorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestVariables(t *testing.T) {
	backend := &stubBackend{zones: []models.ZoneRecord{{Name: "a.com"}, {Name: "a.com"}, {Name: "b.com"}}}
	app := newTestApp(t, backend, config.AuthConfig{})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/variables", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"text":"a.com"},{"text":"b.com"}]`, string(body))

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/variables", `{"selector":{"value":"unknown"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestZones(t *testing.T) {
	app := newTestApp(t, &stubBackend{}, config.AuthConfig{})

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/zones", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHealth_AlwaysOK(t *testing.T) {
	backend := &stubBackend{probe: models.ProbeResult{Status: models.ProbeError, Message: "Unauthorized"}}
	app := newTestApp(t, backend, config.AuthConfig{})

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"error","message":"Unauthorized"}`, string(body))
}

func TestSettings_HidesKey(t *testing.T) {
	app := newTestApp(t, &stubBackend{}, config.AuthConfig{})

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "s3cret-key")

	var s Settings
	require.NoError(t, json.Unmarshal(body, &s))
	assert.True(t, s.SecureJSONFields["apiKey"])
	assert.Equal(t, "https://api.example.net/v1", s.JSONData.IdentityURL)

	resp, body = doJSON(t, app, fiber.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "https://api.example.net/v1")
	assert.Contains(t, string(body), "configured")
	assert.NotContains(t, string(body), "s3cret-key")
}

func TestRoutes_FollowDescriptor(t *testing.T) {
	m := metrics.New()
	plugin := datasource.NewDescriptor(config.BackendAPI)
	plugin.Capabilities = []datasource.Capability{datasource.CapabilityQuery}
	app := NewApp(New(datasource.New(&stubBackend{}, m), plugin, testConf(), m), config.AuthConfig{})

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/variables", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/zones", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/plugin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `["query"]`, mustField(t, body, "capabilities"))
}

func mustField(t *testing.T, body []byte, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return string(m[key])
}

func TestBasicAuth(t *testing.T) {
	app := newTestApp(t, &stubBackend{}, config.AuthConfig{User: "admin", Pass: "pw"})

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	req.SetBasicAuth("admin", "pw")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestId_Propagated(t *testing.T) {
	app := newTestApp(t, &stubBackend{}, config.AuthConfig{})

	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	req.Header.Set(logging.HTTPXRequestID, "abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Header.Get(logging.HTTPXRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, &stubBackend{}, config.AuthConfig{})

	doJSON(t, app, fiber.MethodPost, "/api/ds/query", `{"targets":[{"refId":"A"}]}`)
	resp, body := doJSON(t, app, fiber.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "dns_datasource_query_targets_total 1")
	assert.Contains(t, string(body), `dns_datasource_query_batches_total{outcome="success"} 1`)
}
