package client

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/imroc/req/v3"
	"github.com/sirupsen/logrus"

	"dns-stats-datasource/config"
	"dns-stats-datasource/logging"
	"dns-stats-datasource/metrics"
	"dns-stats-datasource/models"
)

const userAgent = "dns-stats-datasource"

type Options struct {
	APIURL      string
	APIKey      string
	AuthScheme  string
	IdentityURL string
	Timeout     time.Duration
	Metrics     *metrics.Metrics
}

func OptionsFromConfig(c config.DatasourceConfig, m *metrics.Metrics) Options {
	return Options{
		APIURL:      c.APIURL,
		APIKey:      c.APIKey,
		AuthScheme:  c.AuthScheme,
		IdentityURL: c.IdentityBaseURL(),
		Timeout:     c.Timeout,
		Metrics:     m,
	}
}

// Client talks to the DNS statistics REST API. Every request carries the
// configured API key; no request is retried.
type Client struct {
	api      *req.Client
	identity *req.Client
	metrics  *metrics.Metrics
}

func New(opts Options) *Client {
	identityURL := opts.IdentityURL
	if identityURL == "" {
		identityURL = opts.APIURL
	}
	return &Client{
		api:      newReqClient(opts.APIURL, opts),
		identity: newReqClient(identityURL, opts),
		metrics:  opts.Metrics,
	}
}

func newReqClient(baseURL string, opts Options) *req.Client {
	c := req.C().
		SetBaseURL(baseURL).
		SetUserAgent(userAgent).
		SetCommonHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.APIKey != "" {
		c.SetCommonHeader("Authorization", authorization(opts.AuthScheme, opts.APIKey))
	}
	return c
}

func authorization(scheme, key string) string {
	if scheme == "" {
		return key
	}
	return scheme + " " + key
}

type request struct {
	endpoint   string
	path       string
	pathParams map[string]string
	query      map[string]string
}

func (r request) op() string {
	return "GET " + r.path
}

// get issues one GET and classifies the outcome into the models error kinds.
func (c *Client) get(ctx context.Context, rc *req.Client, r request) ([]byte, error) {
	start := time.Now()

	rq := rc.R().SetContext(ctx)
	if len(r.pathParams) > 0 {
		rq.SetPathParams(r.pathParams)
	}
	if len(r.query) > 0 {
		rq.SetQueryParams(r.query)
	}

	resp, err := rq.Get(r.path)
	body, err := classify(r.op(), resp, err)

	c.metrics.ObserveUpstream(r.endpoint, time.Since(start), err)
	logging.GetLogger(ctx).WithFields(logrus.Fields{
		"endpoint": r.endpoint,
		"params":   r.query,
		"latency":  time.Since(start),
	}).Debugf("%s done, err: %v", r.op(), err)

	return body, err
}

func classify(op string, resp *req.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, &models.NetworkError{Op: op, Err: err}
	}
	body := resp.Bytes()
	if !resp.IsSuccessState() {
		return nil, &models.HTTPStatusError{
			StatusCode: resp.GetStatusCode(),
			Status:     resp.GetStatus(),
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

// errorMessage pulls a human readable message out of an error body, if any.
func errorMessage(body []byte) string {
	var e models.APIErrorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func isEmptyBody(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
