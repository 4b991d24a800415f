package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger logs each HTTP request as one structured zap entry with
// request_id, method, path, status and latency (milliseconds).
// 5xx responses are logged at error level.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("http_request", fields...)
		} else {
			log.Info("http_request", fields...)
		}

		return err
	}
}
