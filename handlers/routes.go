package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"

	"dns-stats-datasource/config"
	"dns-stats-datasource/datasource"
	"dns-stats-datasource/views"
)

// Route is one row of the registration table. A route is mounted only
// when the plugin descriptor lists its capability.
type Route struct {
	Capability datasource.Capability
	Method     string
	Path       string
	Handler    fiber.Handler
}

func (h *Handler) Routes() []Route {
	return []Route{
		{datasource.CapabilityQuery, fiber.MethodPost, "/api/ds/query", h.Query},
		{datasource.CapabilityQuery, fiber.MethodGet, "/api/zones", h.Zones},
		{datasource.CapabilityVariable, fiber.MethodPost, "/api/variables", h.Variables},
		{datasource.CapabilityConfig, fiber.MethodGet, "/api/health", h.Health},
		{datasource.CapabilityConfig, fiber.MethodGet, "/api/settings", h.Settings},
		{datasource.CapabilityConfig, fiber.MethodGet, "/", h.SettingsPage},
	}
}

func NewApp(h *Handler, auth config.AuthConfig) *fiber.App {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")
	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
	})

	app.Use(RequestID())
	app.Use(Logger())
	app.Use(cors.New())
	if auth.Enabled() {
		app.Use(basicauth.New(basicauth.Config{
			Users: map[string]string{
				auth.User: auth.Pass,
			},
			Realm: "DNS Statistics",
		}))
	}

	for _, r := range h.Routes() {
		if h.plugin.Has(r.Capability) {
			app.Add(r.Method, r.Path, r.Handler)
		}
	}
	app.Get("/api/plugin", h.Plugin)
	if h.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(h.metrics.Handler()))
	}

	return app
}
