package router

import (
	"strconv"

	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/23
 * @file: router_audit.go
 * @description: 审计路由
 */

func (rt *Router) auditRouter(r fiber.Router, auth fiber.Handler) {
	r.Get("/audit/events", auth, rt.queryAuditEvents)
}

// queryAuditEvents 分页查询审计事件
func (rt *Router) queryAuditEvents(c *fiber.Ctx) error {
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))

	req := &model.QueryAuditReq{
		Action:   c.Query("action"),
		ActorId:  c.Query("actorId"),
		PageNum:  pageNum,
		PageSize: pageSize,
	}

	events, total, err := rt.Services.Audit.QueryEvents(req)
	if err != nil {
		log.Errorf("query audit events failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, fiber.Map{
		"total":  total,
		"events": events,
	})
	return nil
}
