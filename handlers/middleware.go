package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dns-stats-datasource/logging"
)

func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(logging.HTTPXRequestID)
		if requestID == "" {
			requestID = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Set(logging.HTTPXRequestID, requestID)
		c.SetUserContext(logging.WithRequestID(c.UserContext(), requestID))
		return c.Next()
	}
}

func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t := time.Now()
		err := c.Next()
		latency := time.Since(t)

		logging.GetLogger(c.UserContext()).Info("ip: ", c.IP(), " method: ", c.Method(), " path: ",
			c.Path(), " status: ", c.Response().StatusCode(), " latency: ", latency)
		return err
	}
}
