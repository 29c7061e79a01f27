package router

import (
	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/http"
	"github.com/go-compass/compass/pkg/log"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/23
 * @file: router_grant.go
 * @description: 授权路由
 */

func (rt *Router) grantRouter(r fiber.Router, auth fiber.Handler) {
	grantGroup := r.Group("/grant")
	{
		// 创建授权
		grantGroup.Post("/create", auth, rt.createGrant)

		// 撤销授权
		grantGroup.Post("/:grantId/revoke", auth, rt.revokeGrant)

		// 实体的活跃授权列表
		grantGroup.Get("/entity/:entityType/:entityId", auth, rt.listGrants)

		// 我名下的活跃授权（直接 + 分组来源）
		grantGroup.Get("/mine", auth, rt.listMyGrants)

		// 撤销创建者权利（不可恢复）
		grantGroup.Post("/creator/:entityType/:entityId/revoke", auth, rt.revokeCreatorRights)
	}
}

// createGrant 创建授权
func (rt *Router) createGrant(c *fiber.Ctx) error {
	var req model.CreateGrantReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create grant failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Grant.CreateGrant(currentUser(c), &req)
	if err != nil {
		log.Errorf("create grant failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// revokeGrant 撤销授权
func (rt *Router) revokeGrant(c *fiber.Ctx) error {
	grantId := c.Params("grantId")
	if grantId == "" {
		return http.WithRepErrMsg(c, http.InvalidParameter.Code, http.InvalidParameter.Msg, c.Path())
	}

	if err := rt.Services.Grant.RevokeGrant(currentUser(c), grantId); err != nil {
		log.Errorf("revoke grant failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// listGrants 实体的活跃授权列表
func (rt *Router) listGrants(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	entityId := c.Params("entityId")

	result, err := rt.Services.Grant.ListGrants(currentUser(c), entityType, entityId)
	if err != nil {
		log.Errorf("list grants failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listMyGrants 我名下的活跃授权
func (rt *Router) listMyGrants(c *fiber.Ctx) error {
	result, err := rt.Services.Grant.ListSubjectGrants(currentUser(c))
	if err != nil {
		log.Errorf("list my grants failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// revokeCreatorRights 撤销创建者权利
func (rt *Router) revokeCreatorRights(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	entityId := c.Params("entityId")

	if err := rt.Services.CreatorRight.RevokeCreatorRights(currentUser(c), entityType, entityId); err != nil {
		log.Errorf("revoke creator rights failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}
