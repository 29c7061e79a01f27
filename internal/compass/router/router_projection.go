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
 * @file: router_projection.go
 * @description: 投影路由
 */

func (rt *Router) projectionRouter(r fiber.Router, auth fiber.Handler) {
	projectionGroup := r.Group("/projection")
	{
		// 分享给我的
		projectionGroup.Get("/shared-with-me", auth, rt.sharedWithMe)

		// 获取投影详情
		projectionGroup.Get("/:projectionId", auth, rt.getProjection)

		// 接收方响应
		projectionGroup.Post("/:projectionId/accept", auth, rt.acceptProjection)
		projectionGroup.Post("/:projectionId/decline", auth, rt.declineProjection)
		projectionGroup.Put("/:projectionId/completion", auth, rt.setProjectionCompletion)

		// 分发方操作
		projectionGroup.Post("/:projectionId/revoke", auth, rt.revokeProjection)
		projectionGroup.Post("/:projectionId/reinvite", auth, rt.reinviteProjection)
	}
}

// sharedWithMe 分享给我的列表
func (rt *Router) sharedWithMe(c *fiber.Ctx) error {
	result, err := rt.Services.Projection.ListSharedWithMe(currentUser(c))
	if err != nil {
		log.Errorf("list shared with me failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// getProjection 获取投影详情
func (rt *Router) getProjection(c *fiber.Ctx) error {
	projectionId := c.Params("projectionId")
	if projectionId == "" {
		return http.WithRepErrMsg(c, http.ProjectionIdIsEmpty.Code, http.ProjectionIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Projection.GetProjection(currentUser(c), projectionId)
	if err != nil {
		log.Errorf("get projection failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// acceptProjection 接受投影
func (rt *Router) acceptProjection(c *fiber.Ctx) error {
	projectionId := c.Params("projectionId")
	if projectionId == "" {
		return http.WithRepErrMsg(c, http.ProjectionIdIsEmpty.Code, http.ProjectionIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Projection.Accept(currentUser(c), projectionId); err != nil {
		log.Errorf("accept projection failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// declineProjection 拒绝投影
func (rt *Router) declineProjection(c *fiber.Ctx) error {
	projectionId := c.Params("projectionId")
	if projectionId == "" {
		return http.WithRepErrMsg(c, http.ProjectionIdIsEmpty.Code, http.ProjectionIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Projection.Decline(currentUser(c), projectionId); err != nil {
		log.Errorf("decline projection failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// setProjectionCompletion 接收者标记自己的完成状态
func (rt *Router) setProjectionCompletion(c *fiber.Ctx) error {
	projectionId := c.Params("projectionId")
	if projectionId == "" {
		return http.WithRepErrMsg(c, http.ProjectionIdIsEmpty.Code, http.ProjectionIdIsEmpty.Msg, c.Path())
	}

	var req model.SetCompletionReq
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.Projection.SetCompletion(currentUser(c), projectionId, req.Completed); err != nil {
		log.Errorf("set projection completion failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// revokeProjection 撤回投影
func (rt *Router) revokeProjection(c *fiber.Ctx) error {
	projectionId := c.Params("projectionId")
	if projectionId == "" {
		return http.WithRepErrMsg(c, http.ProjectionIdIsEmpty.Code, http.ProjectionIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Projection.Revoke(currentUser(c), projectionId); err != nil {
		log.Errorf("revoke projection failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// reinviteProjection 对已拒绝或已撤回的投影重新邀请
func (rt *Router) reinviteProjection(c *fiber.Ctx) error {
	projectionId := c.Params("projectionId")
	if projectionId == "" {
		return http.WithRepErrMsg(c, http.ProjectionIdIsEmpty.Code, http.ProjectionIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Projection.Reinvite(currentUser(c), projectionId); err != nil {
		log.Errorf("reinvite projection failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}
