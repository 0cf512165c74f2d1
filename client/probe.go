package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dns-stats-datasource/models"
)

const (
	iamIdentityPath = "/iam/users/me"
	identityPath    = "/users/me"

	defaultProbeMessage = "Failed to authenticate. Check URL, API key, or network."
)

// Probe checks reachability and credentials against the identity endpoint,
// falling back to the legacy path. It never fails; problems are reported
// in the result.
func (c *Client) Probe(ctx context.Context) (result models.ProbeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.ProbeResult{Status: models.ProbeError, Message: fmt.Sprintf("%s (%v)", defaultProbeMessage, r)}
		}
	}()

	if name, err := c.whoami(ctx, iamIdentityPath); err == nil {
		return models.ProbeResult{Status: models.ProbeSuccess, Message: "Auth OK (IAM): " + name}
	}

	name, err := c.whoami(ctx, identityPath)
	if err != nil {
		return models.ProbeResult{Status: models.ProbeError, Message: probeMessage(err)}
	}
	return models.ProbeResult{Status: models.ProbeSuccess, Message: "Auth OK: " + name}
}

func (c *Client) whoami(ctx context.Context, path string) (string, error) {
	body, err := c.get(ctx, c.identity, request{endpoint: "identity", path: path})
	if err != nil {
		return "", err
	}
	var id models.Identity
	if json.Unmarshal(body, &id) != nil || id.Name == "" {
		return "OK", nil
	}
	return id.Name, nil
}

func probeMessage(err error) string {
	var statusErr *models.HTTPStatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		if text := http.StatusText(statusErr.StatusCode); text != "" {
			return text
		}
		if statusErr.Status != "" {
			return statusErr.Status
		}
	}
	var netErr *models.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Sprintf("%s (%v)", defaultProbeMessage, netErr.Err)
	}
	return defaultProbeMessage
}
