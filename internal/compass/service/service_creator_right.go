package service

import (
	"errors"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/event"
	"github.com/go-compass/compass/pkg/log"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/14
 * @file: service_creator_right.go
 * @description: 创建者权利服务
 */

// CreatorRightService 创建者权利服务
type CreatorRightService struct {
	ctx        *ctx.Context
	repo       *repo.Repositories
	permission *PermissionService
	bus        *event.Bus
}

// NewCreatorRightService 创建服务实例
func NewCreatorRightService(c *ctx.Context, repos *repo.Repositories, permission *PermissionService, bus *event.Bus) *CreatorRightService {
	return &CreatorRightService{
		ctx:        c,
		repo:       repos,
		permission: permission,
		bus:        bus,
	}
}

// RevokeCreatorRights 撤销创建者的默认权利，永久且不可恢复
// 仅实体所在工作区的 owner 基础角色可发起，重复撤销按幂等处理
func (cs *CreatorRightService) RevokeCreatorRights(actorId, entityType, entityId string) error {
	ref, err := cs.permission.locateEntity(entityType, entityId)
	if err != nil {
		return err
	}
	if ref.CreatedBy == "" {
		return errs.Validation("%s %s has no creator", entityType, entityId)
	}

	member, err := cs.repo.WorkspaceMember.GetMember(ref.WorkspaceId, actorId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Authorization("user %s is not a member of workspace %s", actorId, ref.WorkspaceId)
		}
		return errs.Internal(err, "load workspace member")
	}
	if member.BaseRole != model.RoleOwner {
		return errs.Authorization("user %s requires %s base role in workspace %s", actorId, model.RoleOwner, ref.WorkspaceId)
	}

	revocation := &model.CreatorRevocation{
		EntityType: entityType,
		EntityId:   entityId,
		CreatorId:  ref.CreatedBy,
		RevokedBy:  actorId,
	}
	if err := cs.repo.CreatorRevocation.CreateRevocation(revocation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 已撤销，幂等
			return nil
		}
		return errs.Internal(err, "create creator revocation")
	}

	log.Infow("creator rights revoked", "entity", entityType+":"+entityId,
		"creator", ref.CreatedBy, "actor", actorId)
	cs.bus.Publish(event.New(event.CreatorRevoked, actorId, map[string]any{
		"entityType": entityType,
		"entityId":   entityId,
		"creatorId":  ref.CreatedBy,
		"beforeRole": model.RoleEditor,
		"afterRole":  "",
	}))
	return nil
}

// IsRevoked 查询创建者权利是否已撤销
func (cs *CreatorRightService) IsRevoked(entityType, entityId, creatorId string) (bool, error) {
	revoked, err := cs.repo.CreatorRevocation.IsRevoked(entityType, entityId, creatorId)
	if err != nil {
		return false, errs.Internal(err, "load creator revocation")
	}
	return revoked, nil
}
