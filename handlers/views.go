package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dns-stats-datasource/config"
)

type SettingsJSONData struct {
	APIURL      string `json:"apiUrl,omitempty"`
	AuthScheme  string `json:"authScheme,omitempty"`
	IdentityURL string `json:"identityUrl,omitempty"`
	Timeout     string `json:"timeout"`
}

// Settings is what the config form may show. Secrets are only reported as
// configured or not.
type Settings struct {
	Backend          string           `json:"backend"`
	JSONData         SettingsJSONData `json:"jsonData"`
	SecureJSONFields map[string]bool  `json:"secureJsonFields"`
}

func (h *Handler) settings() Settings {
	s := Settings{
		Backend: h.conf.Backend,
		JSONData: SettingsJSONData{
			Timeout: h.conf.Timeout.String(),
		},
		SecureJSONFields: map[string]bool{"apiKey": h.conf.APIKey != ""},
	}
	if h.conf.Backend != config.BackendClickHouse {
		s.JSONData.APIURL = h.conf.APIURL
		s.JSONData.AuthScheme = h.conf.AuthScheme
		s.JSONData.IdentityURL = h.conf.IdentityBaseURL()
	}
	return s
}

func (h *Handler) Settings(c *fiber.Ctx) error {
	return c.JSON(h.settings())
}

func (h *Handler) SettingsPage(c *fiber.Ctx) error {
	return c.Render("settings", fiber.Map{
		"Title":    "DNS Statistics Data Source",
		"Plugin":   h.plugin,
		"Settings": h.settings(),
	})
}
