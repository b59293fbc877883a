package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if err != nil || status >= fiber.StatusInternalServerError {
			logged := err
			if internal, ok := c.Locals(localError).(error); ok && logged == nil {
				logged = internal
			}
			ev = log.Error().Err(logged)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user", GetUsername(c)).
			Msg("petición")
		return err
	}
}
