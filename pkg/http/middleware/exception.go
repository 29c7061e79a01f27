package middleware

import (
	"fmt"

	"github.com/go-compass/compass/pkg/http"
	"github.com/go-compass/compass/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:22
 * @file: exception.go
 * @description: panic recover
 */

// ExceptionMiddleware 全局异常恢复
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered", "path", c.Path(), "panic", fmt.Sprintf("%v", r))
			err = http.WithRepErr(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
	}()
	return c.Next()
}
