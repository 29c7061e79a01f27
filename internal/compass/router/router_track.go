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
 * @file: router_track.go
 * @description: Track 路由
 */

func (rt *Router) trackRouter(r fiber.Router, auth fiber.Handler) {
	trackGroup := r.Group("/track")
	{
		// 创建轨道节点
		trackGroup.Post("/create", auth, rt.createTrack)

		// 工作区顶层轨道
		trackGroup.Get("/workspace/:workspaceId", auth, rt.listTracks)

		// 获取轨道详情
		trackGroup.Get("/:trackId", auth, rt.getTrack)

		// 子节点
		trackGroup.Get("/:trackId/children", auth, rt.listTrackChildren)

		// 删除轨道
		trackGroup.Delete("/:trackId", auth, rt.deleteTrack)
	}
}

// createTrack 创建轨道节点
func (rt *Router) createTrack(c *fiber.Ctx) error {
	var req model.CreateTrackReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create track failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Track.CreateTrack(currentUser(c), &req)
	if err != nil {
		log.Errorf("create track failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listTracks 工作区顶层轨道列表
func (rt *Router) listTracks(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Track.ListTracks(workspaceId)
	if err != nil {
		log.Errorf("list tracks failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// getTrack 获取轨道详情
func (rt *Router) getTrack(c *fiber.Ctx) error {
	trackId := c.Params("trackId")
	result, err := rt.Services.Track.GetTrack(trackId)
	if err != nil {
		log.Errorf("get track failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listTrackChildren 轨道子节点列表
func (rt *Router) listTrackChildren(c *fiber.Ctx) error {
	trackId := c.Params("trackId")
	result, err := rt.Services.Track.ListChildren(trackId)
	if err != nil {
		log.Errorf("list track children failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// deleteTrack 删除轨道
func (rt *Router) deleteTrack(c *fiber.Ctx) error {
	trackId := c.Params("trackId")
	if err := rt.Services.Track.DeleteTrack(currentUser(c), trackId); err != nil {
		log.Errorf("delete track failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}
