package service

import (
	"errors"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/event"
	"github.com/go-compass/compass/pkg/id"
	"github.com/go-compass/compass/pkg/log"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/14
 * @file: service_workspace.go
 * @description: 工作区服务
 */

// WorkspaceService 工作区服务
type WorkspaceService struct {
	ctx  *ctx.Context
	repo *repo.Repositories
	bus  *event.Bus

	// 级联故障注入点，仅测试使用
	cascadeFault func(workspaceId, userId string) error
}

// NewWorkspaceService 创建工作区服务实例
func NewWorkspaceService(c *ctx.Context, repos *repo.Repositories, bus *event.Bus) *WorkspaceService {
	return &WorkspaceService{
		ctx:  c,
		repo: repos,
		bus:  bus,
	}
}

// CreateWorkspace 创建工作区，创建者自动成为 owner 成员
func (ws *WorkspaceService) CreateWorkspace(actorId string, req *model.CreateWorkspaceReq) (*model.Workspace, error) {
	if req.Name == "" {
		return nil, errs.Validation("workspace name is empty")
	}

	workspace := &model.Workspace{
		WorkspaceId: id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		OwnerId:     actorId,
	}

	err := ws.repo.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		member := &model.WorkspaceMember{
			WorkspaceId: workspace.WorkspaceId,
			UserId:      actorId,
			BaseRole:    model.RoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, errs.Internal(err, "create workspace")
	}

	log.Infow("workspace created", "workspaceId", workspace.WorkspaceId, "actor", actorId)
	return workspace, nil
}

// GetWorkspace 获取工作区
func (ws *WorkspaceService) GetWorkspace(workspaceId string) (*model.Workspace, error) {
	workspace, err := ws.repo.Workspace.GetWorkspace(workspaceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("workspace %s not found", workspaceId)
		}
		return nil, errs.Internal(err, "load workspace")
	}
	return workspace, nil
}

// ListWorkspaces 列出用户所在的工作区
func (ws *WorkspaceService) ListWorkspaces(userId string) ([]model.Workspace, error) {
	workspaces, err := ws.repo.Workspace.ListWorkspaces(userId)
	if err != nil {
		return nil, errs.Internal(err, "list workspaces")
	}
	return workspaces, nil
}

// AddMember 添加工作区成员
func (ws *WorkspaceService) AddMember(actorId, workspaceId string, req *model.AddWorkspaceMemberReq) error {
	if !model.IsValidRole(req.BaseRole) {
		return errs.Validation("unknown role %q", req.BaseRole)
	}
	if err := ws.requireWorkspaceRole(workspaceId, actorId, model.RoleOwner); err != nil {
		return err
	}

	member := &model.WorkspaceMember{
		WorkspaceId: workspaceId,
		UserId:      req.UserId,
		BaseRole:    req.BaseRole,
	}
	if err := ws.repo.WorkspaceMember.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("user %s is already a member of workspace %s", req.UserId, workspaceId)
		}
		return errs.Internal(err, "add workspace member")
	}
	return nil
}

// ListMembers 列出工作区成员，成员可见
func (ws *WorkspaceService) ListMembers(actorId, workspaceId string) ([]model.WorkspaceMember, error) {
	if err := ws.requireWorkspaceRole(workspaceId, actorId, model.RoleViewer); err != nil {
		return nil, err
	}
	members, err := ws.repo.WorkspaceMember.ListMembers(workspaceId)
	if err != nil {
		return nil, errs.Internal(err, "list workspace members")
	}
	return members, nil
}

// UpdateMemberRole 调整成员基础角色，仅 owner 可操作
func (ws *WorkspaceService) UpdateMemberRole(actorId, workspaceId string, req *model.UpdateWorkspaceMemberReq) error {
	if !model.IsValidRole(req.BaseRole) {
		return errs.Validation("unknown role %q", req.BaseRole)
	}
	if err := ws.requireWorkspaceRole(workspaceId, actorId, model.RoleOwner); err != nil {
		return err
	}
	if _, err := ws.GetMember(workspaceId, req.UserId); err != nil {
		return err
	}
	if err := ws.repo.WorkspaceMember.UpdateMemberRole(workspaceId, req.UserId, req.BaseRole); err != nil {
		return errs.Internal(err, "update member role")
	}
	log.Infow("workspace member role updated", "workspaceId", workspaceId,
		"userId", req.UserId, "baseRole", req.BaseRole, "actor", actorId)
	return nil
}

// RemoveMember owner 移除成员，级联清理与本人退出一致
func (ws *WorkspaceService) RemoveMember(actorId, workspaceId, userId string) error {
	if err := ws.requireWorkspaceRole(workspaceId, actorId, model.RoleOwner); err != nil {
		return err
	}
	return ws.removeMemberCascade(workspaceId, userId, actorId)
}

// GetMember 获取工作区成员
func (ws *WorkspaceService) GetMember(workspaceId, userId string) (*model.WorkspaceMember, error) {
	member, err := ws.repo.WorkspaceMember.GetMember(workspaceId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user %s is not a member of workspace %s", userId, workspaceId)
		}
		return nil, errs.Internal(err, "load workspace member")
	}
	return member, nil
}

// requireWorkspaceRole 要求用户在工作区内至少具备指定基础角色
func (ws *WorkspaceService) requireWorkspaceRole(workspaceId, userId, minRole string) error {
	member, err := ws.repo.WorkspaceMember.GetMember(workspaceId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Authorization("user %s is not a member of workspace %s", userId, workspaceId)
		}
		return errs.Internal(err, "load workspace member")
	}
	if model.RoleRank(member.BaseRole) < model.RoleRank(minRole) {
		return errs.Authorization("user %s requires %s in workspace %s", userId, minRole, workspaceId)
	}
	return nil
}

// ExitWorkspace 用户退出工作区
// 成员移除与所有组成员关系的级联清理在同一事务内，要么全部生效要么全部回滚
func (ws *WorkspaceService) ExitWorkspace(workspaceId, userId string) error {
	return ws.removeMemberCascade(workspaceId, userId, userId)
}

// removeMemberCascade 移除成员并在同一事务内级联清理其全部组成员关系
func (ws *WorkspaceService) removeMemberCascade(workspaceId, userId, actorId string) error {
	if _, err := ws.GetMember(workspaceId, userId); err != nil {
		return err
	}

	err := ws.repo.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
			Delete(&model.WorkspaceMember{}).Error; err != nil {
			return err
		}
		if err := ws.repo.GroupMember.RemoveAllInWorkspaceTx(tx, workspaceId, userId); err != nil {
			return err
		}
		if ws.cascadeFault != nil {
			if err := ws.cascadeFault(workspaceId, userId); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.Internal(err, "exit workspace cascade")
	}

	log.Infow("workspace member removed", "workspaceId", workspaceId, "userId", userId, "actor", actorId)
	ws.bus.Publish(event.New(event.WorkspaceExit, actorId, map[string]any{
		"workspaceId": workspaceId,
		"userId":      userId,
	}))
	return nil
}
