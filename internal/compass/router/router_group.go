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
 * @time: 2025/10/22
 * @file: router_group.go
 * @description: Group 路由
 */

func (rt *Router) groupRouter(r fiber.Router, auth fiber.Handler) {
	groupGroup := r.Group("/group")
	{
		// 创建分组
		groupGroup.Post("/create", auth, rt.createGroup)

		// 工作区分组列表
		groupGroup.Get("/workspace/:workspaceId", auth, rt.listGroups)

		// 获取分组详情
		groupGroup.Get("/:groupId", auth, rt.getGroup)

		// 分组成员
		groupGroup.Get("/:groupId/members", auth, rt.listGroupMembers)
		groupGroup.Post("/:groupId/member", auth, rt.addGroupMember)
		groupGroup.Delete("/:groupId/member/:userId", auth, rt.removeGroupMember)
	}
}

// createGroup 创建分组
func (rt *Router) createGroup(c *fiber.Ctx) error {
	var req model.CreateGroupReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create group failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Group.CreateGroup(currentUser(c), &req)
	if err != nil {
		log.Errorf("create group failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listGroups 工作区分组列表
func (rt *Router) listGroups(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Group.ListGroups(workspaceId)
	if err != nil {
		log.Errorf("list groups failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// getGroup 获取分组详情
func (rt *Router) getGroup(c *fiber.Ctx) error {
	groupId := c.Params("groupId")
	if groupId == "" {
		return http.WithRepErrMsg(c, http.GroupIdIsEmpty.Code, http.GroupIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Group.GetGroup(groupId)
	if err != nil {
		log.Errorf("get group failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listGroupMembers 分组成员列表
func (rt *Router) listGroupMembers(c *fiber.Ctx) error {
	groupId := c.Params("groupId")
	if groupId == "" {
		return http.WithRepErrMsg(c, http.GroupIdIsEmpty.Code, http.GroupIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Group.ListMembers(groupId)
	if err != nil {
		log.Errorf("list group members failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// addGroupMember 添加分组成员
func (rt *Router) addGroupMember(c *fiber.Ctx) error {
	groupId := c.Params("groupId")
	if groupId == "" {
		return http.WithRepErrMsg(c, http.GroupIdIsEmpty.Code, http.GroupIdIsEmpty.Msg, c.Path())
	}

	var req model.AddGroupMemberReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("add group member failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.Group.AddMember(currentUser(c), groupId, &req); err != nil {
		log.Errorf("add group member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// removeGroupMember 移除分组成员
func (rt *Router) removeGroupMember(c *fiber.Ctx) error {
	groupId := c.Params("groupId")
	userId := c.Params("userId")
	if groupId == "" || userId == "" {
		return http.WithRepErrMsg(c, http.InvalidParameter.Code, http.InvalidParameter.Msg, c.Path())
	}

	if err := rt.Services.Group.RemoveMember(currentUser(c), groupId, userId); err != nil {
		log.Errorf("remove group member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}
