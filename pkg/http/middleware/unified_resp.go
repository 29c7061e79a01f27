package middleware

import (
	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/pkg/http"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:10
 * @file: unified_resp.go
 * @description: 统一响应中间件
 */

// UnifiedResponseMiddleware 统一响应中间件
// handler 将结果写入 c.Locals(DETAIL)，无返回体的操作写入 c.Locals(OPERATION)
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		// 已经写过响应体的 handler（如 metrics）直接放行
		if len(c.Response().Body()) > 0 {
			return nil
		}

		if detail := c.Locals(constant.DETAIL); detail != nil {
			return http.WithRepJSON(c, detail)
		}

		if op := c.Locals(constant.OPERATION); op != nil {
			return http.WithRepNotDetail(c)
		}

		return nil
	}
}
