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
 * @file: router_workspace.go
 * @description: Workspace 路由
 */

func (rt *Router) workspaceRouter(r fiber.Router, auth fiber.Handler) {
	workspaceGroup := r.Group("/workspace")
	{
		// 创建工作区
		workspaceGroup.Post("/create", auth, rt.createWorkspace)

		// 我的工作区列表
		workspaceGroup.Get("/list", auth, rt.listWorkspaces)

		// 获取工作区详情
		workspaceGroup.Get("/:workspaceId", auth, rt.getWorkspace)

		// 成员列表
		workspaceGroup.Get("/:workspaceId/members", auth, rt.listWorkspaceMembers)

		// 添加成员
		workspaceGroup.Post("/:workspaceId/member", auth, rt.addWorkspaceMember)

		// 调整成员基础角色
		workspaceGroup.Put("/:workspaceId/member/role", auth, rt.updateWorkspaceMemberRole)

		// 移除成员（owner 操作，级联与退出一致）
		workspaceGroup.Delete("/:workspaceId/member/:userId", auth, rt.removeWorkspaceMember)

		// 退出工作区（级联移除所有分组成员关系）
		workspaceGroup.Post("/:workspaceId/exit", auth, rt.exitWorkspace)
	}
}

// createWorkspace 创建工作区
func (rt *Router) createWorkspace(c *fiber.Ctx) error {
	var req model.CreateWorkspaceReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create workspace failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	result, err := rt.Services.Workspace.CreateWorkspace(currentUser(c), &req)
	if err != nil {
		log.Errorf("create workspace failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// listWorkspaces 我的工作区列表
func (rt *Router) listWorkspaces(c *fiber.Ctx) error {
	result, err := rt.Services.Workspace.ListWorkspaces(currentUser(c))
	if err != nil {
		log.Errorf("list workspaces failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// getWorkspace 获取工作区详情
func (rt *Router) getWorkspace(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Workspace.GetWorkspace(workspaceId)
	if err != nil {
		log.Errorf("get workspace failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// addWorkspaceMember 添加工作区成员
func (rt *Router) addWorkspaceMember(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	var req model.AddWorkspaceMemberReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("add workspace member failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.Workspace.AddMember(currentUser(c), workspaceId, &req); err != nil {
		log.Errorf("add workspace member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// listWorkspaceMembers 成员列表
func (rt *Router) listWorkspaceMembers(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	result, err := rt.Services.Workspace.ListMembers(currentUser(c), workspaceId)
	if err != nil {
		log.Errorf("list workspace members failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// updateWorkspaceMemberRole 调整成员基础角色
func (rt *Router) updateWorkspaceMemberRole(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateWorkspaceMemberReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update workspace member role failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	if err := rt.Services.Workspace.UpdateMemberRole(currentUser(c), workspaceId, &req); err != nil {
		log.Errorf("update workspace member role failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// removeWorkspaceMember 移除成员
func (rt *Router) removeWorkspaceMember(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Workspace.RemoveMember(currentUser(c), workspaceId, c.Params("userId")); err != nil {
		log.Errorf("remove workspace member failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}

// exitWorkspace 退出工作区
func (rt *Router) exitWorkspace(c *fiber.Ctx) error {
	workspaceId := c.Params("workspaceId")
	if workspaceId == "" {
		return http.WithRepErrMsg(c, http.WorkspaceIdIsEmpty.Code, http.WorkspaceIdIsEmpty.Msg, c.Path())
	}

	if err := rt.Services.Workspace.ExitWorkspace(workspaceId, currentUser(c)); err != nil {
		log.Errorf("exit workspace failed: %v", err)
		return repErr(c, err)
	}

	c.Locals(constant.OPERATION, true)
	return nil
}
