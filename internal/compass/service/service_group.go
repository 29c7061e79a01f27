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
 * @file: service_group.go
 * @description: 分组服务
 */

// GroupService 分组服务
type GroupService struct {
	ctx  *ctx.Context
	repo *repo.Repositories
	bus  *event.Bus
}

// NewGroupService 创建分组服务实例
func NewGroupService(c *ctx.Context, repos *repo.Repositories, bus *event.Bus) *GroupService {
	return &GroupService{
		ctx:  c,
		repo: repos,
		bus:  bus,
	}
}

// CreateGroup 创建分组，创建者必须是工作区成员
func (gs *GroupService) CreateGroup(actorId string, req *model.CreateGroupReq) (*model.Group, error) {
	if req.Name == "" {
		return nil, errs.Validation("group name is empty")
	}
	if _, err := gs.repo.WorkspaceMember.GetMember(req.WorkspaceId, actorId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Authorization("user %s is not a member of workspace %s", actorId, req.WorkspaceId)
		}
		return nil, errs.Internal(err, "load workspace member")
	}

	group := &model.Group{
		GroupId:     id.GetUUID(),
		WorkspaceId: req.WorkspaceId,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actorId,
	}
	if err := gs.repo.Group.CreateGroup(group); err != nil {
		return nil, errs.Internal(err, "create group")
	}

	log.Infow("group created", "groupId", group.GroupId, "workspaceId", req.WorkspaceId, "actor", actorId)
	return group, nil
}

// GetGroup 获取分组
func (gs *GroupService) GetGroup(groupId string) (*model.Group, error) {
	group, err := gs.repo.Group.GetGroup(groupId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("group %s not found", groupId)
		}
		return nil, errs.Internal(err, "load group")
	}
	return group, nil
}

// ListGroups 列出工作区内的分组
func (gs *GroupService) ListGroups(workspaceId string) ([]model.Group, error) {
	groups, err := gs.repo.Group.ListGroups(workspaceId)
	if err != nil {
		return nil, errs.Internal(err, "list groups")
	}
	return groups, nil
}

// AddMember 添加分组成员
// 用户必须先是分组所在工作区的成员，重复加入按冲突处理
func (gs *GroupService) AddMember(actorId, groupId string, req *model.AddGroupMemberReq) error {
	group, err := gs.GetGroup(groupId)
	if err != nil {
		return err
	}

	if _, err := gs.repo.WorkspaceMember.GetMember(group.WorkspaceId, req.UserId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Validation("user %s is not a member of workspace %s", req.UserId, group.WorkspaceId)
		}
		return errs.Internal(err, "load workspace member")
	}

	member := &model.GroupMember{
		GroupId:     groupId,
		UserId:      req.UserId,
		WorkspaceId: group.WorkspaceId,
		AddedBy:     actorId,
	}
	if err := gs.repo.GroupMember.AddGroupMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("user %s is already a member of group %s", req.UserId, groupId)
		}
		return errs.Internal(err, "add group member")
	}

	gs.bus.Publish(event.New(event.GroupMemberJoin, actorId, map[string]any{
		"groupId": groupId,
		"userId":  req.UserId,
	}))
	return nil
}

// RemoveMember 移除分组成员
func (gs *GroupService) RemoveMember(actorId, groupId, userId string) error {
	if _, err := gs.repo.GroupMember.GetGroupMember(groupId, userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("user %s is not a member of group %s", userId, groupId)
		}
		return errs.Internal(err, "load group member")
	}

	if err := gs.repo.GroupMember.RemoveGroupMember(groupId, userId); err != nil {
		return errs.Internal(err, "remove group member")
	}

	gs.bus.Publish(event.New(event.GroupMemberLeave, actorId, map[string]any{
		"groupId": groupId,
		"userId":  userId,
	}))
	return nil
}

// ListMembers 列出分组成员
func (gs *GroupService) ListMembers(groupId string) ([]model.GroupMember, error) {
	members, err := gs.repo.GroupMember.ListGroupMembers(groupId)
	if err != nil {
		return nil, errs.Internal(err, "list group members")
	}
	return members, nil
}
