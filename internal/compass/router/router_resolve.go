package router

import (
	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/23
 * @file: router_resolve.go
 * @description: 权限解析路由
 */

func (rt *Router) resolveRouter(r fiber.Router, auth fiber.Handler) {
	// 解析主体对实体的有效权限，缺省主体为当前用户
	r.Get("/resolve/:entityType/:entityId", auth, rt.resolvePermission)
}

// resolvePermission 解析权限
func (rt *Router) resolvePermission(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	entityId := c.Params("entityId")

	subjectType := c.Query("subjectType", model.SubjectUser)
	subjectId := c.Query("subjectId", currentUser(c))

	subject, err := model.ParseSubject(subjectType, subjectId)
	if err != nil {
		log.Errorf("resolve permission failed: %v", err)
		return repErr(c, err)
	}

	result, err := rt.Services.Permission.Resolve(entityType, entityId, subject)
	if err != nil {
		log.Errorf("resolve permission failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}
