package middleware

import (
	"time"

	"github.com/go-compass/compass/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:05
 * @file: access_log.go
 * @description: access log
 */

// AccessLogMiddleware 访问日志
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		cost := time.Since(start)

		log.Infow("access",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"ip", c.IP(),
			"cost", cost.String(),
		)
		return err
	}
}
