package router

import (
	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/gofiber/fiber/v2"
)

// currentUser 取鉴权中间件写入的当前用户
func currentUser(c *fiber.Ctx) string {
	if v, ok := c.Locals(constant.USER_ID).(string); ok {
		return v
	}
	return ""
}
