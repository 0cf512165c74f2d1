package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dns-stats-datasource/config"
	"dns-stats-datasource/datasource"
	"dns-stats-datasource/logging"
	"dns-stats-datasource/metrics"
	"dns-stats-datasource/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	ds      *datasource.DataSource
	plugin  datasource.Descriptor
	conf    config.DatasourceConfig
	metrics *metrics.Metrics
}

func New(ds *datasource.DataSource, plugin datasource.Descriptor, conf config.DatasourceConfig, m *metrics.Metrics) *Handler {
	return &Handler{ds: ds, plugin: plugin, conf: conf, metrics: m}
}

func (h *Handler) writeError(c *fiber.Ctx, code int, err error) error {
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

// statusFor maps a data source error onto the response code. Anything that
// is not the caller's fault came from the statistics backend.
func statusFor(err error) int {
	if models.IsValidation(err) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusBadGateway
}

// parseBody decodes a JSON body into out. An empty body leaves out as is.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func (h *Handler) Query(c *fiber.Ctx) error {
	var req datasource.QueryRequest
	if err := parseBody(c, &req); err != nil {
		return h.writeError(c, fiber.StatusBadRequest, err)
	}

	resp, err := h.ds.Query(c.UserContext(), req)
	if err != nil {
		return h.writeError(c, statusFor(err), err)
	}
	return c.JSON(resp)
}

func (h *Handler) Variables(c *fiber.Ctx) error {
	vq := models.DefaultVariableQuery()
	if err := parseBody(c, &vq); err != nil {
		return h.writeError(c, fiber.StatusBadRequest, err)
	}

	values, err := h.ds.MetricFindQuery(c.UserContext(), vq)
	if err != nil {
		return h.writeError(c, statusFor(err), err)
	}
	return c.JSON(values)
}

func (h *Handler) Zones(c *fiber.Ctx) error {
	zones, err := h.ds.ListZones(c.UserContext())
	if err != nil {
		logging.GetLogger(c.UserContext()).Errorf("list zones: %v", err)
		return h.writeError(c, statusFor(err), err)
	}
	if zones == nil {
		zones = []models.ZoneRecord{}
	}
	return c.JSON(zones)
}

// Health always answers 200; the probe outcome is in the body.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(h.ds.CheckHealth(c.UserContext()))
}

func (h *Handler) Plugin(c *fiber.Ctx) error {
	return c.JSON(h.plugin)
}
