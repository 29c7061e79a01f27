package service

import (
	"errors"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/id"
	"github.com/go-compass/compass/pkg/log"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/15
 * @file: service_item.go
 * @description: 可分发条目服务
 */

// ItemService 可分发条目服务
type ItemService struct {
	ctx        *ctx.Context
	repo       *repo.Repositories
	permission *PermissionService
}

// NewItemService 创建条目服务实例
func NewItemService(c *ctx.Context, repos *repo.Repositories, permission *PermissionService) *ItemService {
	return &ItemService{
		ctx:        c,
		repo:       repos,
		permission: permission,
	}
}

// CreateItem 创建条目，需要工作区 editor 基础角色
func (is *ItemService) CreateItem(actorId string, req *model.CreateItemReq) (*model.SharedItem, error) {
	if req.Title == "" {
		return nil, errs.Validation("item title is empty")
	}
	if req.Kind != model.ItemKindTask && req.Kind != model.ItemKindEvent {
		return nil, errs.Validation("unknown item kind %q", req.Kind)
	}

	member, err := is.repo.WorkspaceMember.GetMember(req.WorkspaceId, actorId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Authorization("user %s is not a member of workspace %s", actorId, req.WorkspaceId)
		}
		return nil, errs.Internal(err, "load workspace member")
	}
	if model.RoleRank(member.BaseRole) < model.RoleRank(model.RoleEditor) {
		return nil, errs.Authorization("user %s requires %s in workspace %s", actorId, model.RoleEditor, req.WorkspaceId)
	}

	if req.TrackId != "" {
		track, err := is.repo.Track.GetTrack(req.TrackId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Validation("track %s not found", req.TrackId)
			}
			return nil, errs.Internal(err, "load track")
		}
		if track.WorkspaceId != req.WorkspaceId {
			return nil, errs.Validation("track %s belongs to another workspace", req.TrackId)
		}
	}

	item := &model.SharedItem{
		ItemId:      id.GetUUID(),
		WorkspaceId: req.WorkspaceId,
		TrackId:     req.TrackId,
		Kind:        req.Kind,
		Title:       req.Title,
		Body:        req.Body,
		DueAt:       req.DueAt,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		CreatedBy:   actorId,
		UpdatedBy:   actorId,
	}
	if err := is.repo.Item.CreateItem(item); err != nil {
		return nil, errs.Internal(err, "create item")
	}
	return item, nil
}

// GetItem 获取条目，需要 viewer 权限
func (is *ItemService) GetItem(actorId, itemId string) (*model.SharedItem, error) {
	if err := is.permission.Require(model.EntityItem, itemId, actorId, model.RoleViewer); err != nil {
		return nil, err
	}
	return is.loadItem(itemId)
}

func (is *ItemService) loadItem(itemId string) (*model.SharedItem, error) {
	item, err := is.repo.Item.GetItem(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("item %s not found", itemId)
		}
		return nil, errs.Internal(err, "load item")
	}
	return item, nil
}

// UpdateItem 更新条目，last-write-wins 按编辑时刻仲裁
// 较旧的写入被丢弃，返回当前生效版本及其最后写入者，便于提示 "updated by X at T"
func (is *ItemService) UpdateItem(actorId, itemId string, req *model.UpdateItemReq) (*model.UpdateItemResult, error) {
	if err := is.permission.Require(model.EntityItem, itemId, actorId, model.RoleEditor); err != nil {
		return nil, err
	}
	if req.EditedAt.IsZero() {
		return nil, errs.Validation("editedAt is required")
	}

	updates := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, errs.Validation("item title is empty")
		}
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.DueAt != nil {
		updates["due_at"] = *req.DueAt
	}
	if req.StartAt != nil {
		updates["start_at"] = *req.StartAt
	}
	if req.EndAt != nil {
		updates["end_at"] = *req.EndAt
	}
	if len(updates) == 0 {
		return nil, errs.Validation("no fields to update")
	}

	rows, err := is.repo.Item.UpdateItemLWW(itemId, req.EditedAt, actorId, updates)
	if err != nil {
		return nil, errs.Internal(err, "update item")
	}

	item, err := is.loadItem(itemId)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		log.Infow("stale item write dropped", "itemId", itemId, "actor", actorId,
			"editedAt", req.EditedAt, "currentUpdatedAt", item.UpdatedAt, "currentUpdatedBy", item.UpdatedBy)
		return &model.UpdateItemResult{Applied: false, Item: item}, nil
	}
	return &model.UpdateItemResult{Applied: true, Item: item}, nil
}

// DeleteItem 删除条目，需要 owner 权限
func (is *ItemService) DeleteItem(actorId, itemId string) error {
	if _, err := is.loadItem(itemId); err != nil {
		return err
	}
	if err := is.permission.Require(model.EntityItem, itemId, actorId, model.RoleOwner); err != nil {
		return err
	}
	if err := is.repo.Item.DeleteItem(itemId); err != nil {
		return errs.Internal(err, "delete item")
	}
	return nil
}
