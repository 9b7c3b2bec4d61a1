package middleware

import (
	"time"

	"fastfast-logistics/logger"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
)

// Audit queues a sanitized copy of every API call on the async logger.
func Audit(l *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if l == nil {
			return err
		}

		// error handlers write the response after Next returns
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				logger.Error("Failed to write error response", handlerErr)
			}
			err = nil
		}

		entry := utils.CreateSanitizedLogEntry(c)
		entry.Latency = time.Since(start)
		l.Log(entry)
		return err
	}
}
