package service

import (
	"errors"
	"time"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/log"
	"github.com/go-compass/compass/pkg/metrics"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/13
 * @file: service_permission.go
 * @description: 权限解析服务
 */

// PermissionService 权限解析服务
// 解析结果即时计算，不做缓存，撤销立刻生效
type PermissionService struct {
	ctx  *ctx.Context
	repo *repo.Repositories
}

// NewPermissionService 创建权限解析服务实例
func NewPermissionService(c *ctx.Context, repos *repo.Repositories) *PermissionService {
	return &PermissionService{
		ctx:  c,
		repo: repos,
	}
}

// entityRef 实体定位结果
type entityRef struct {
	WorkspaceId string
	CreatedBy   string
}

// locateEntity 定位实体所在工作区与创建者
func (ps *PermissionService) locateEntity(entityType, entityId string) (*entityRef, error) {
	switch entityType {
	case model.EntityTrack:
		track, err := ps.repo.Track.GetTrack(entityId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("track %s not found", entityId)
			}
			return nil, err
		}
		return &entityRef{WorkspaceId: track.WorkspaceId, CreatedBy: track.CreatedBy}, nil
	case model.EntityItem:
		item, err := ps.repo.Item.GetItem(entityId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFound("item %s not found", entityId)
			}
			return nil, err
		}
		return &entityRef{WorkspaceId: item.WorkspaceId, CreatedBy: item.CreatedBy}, nil
	default:
		return nil, errs.Validation("unknown entity type %q", entityType)
	}
}

// Resolve 解析主体对实体的有效权限
// 权限计算逻辑：MAX(基础角色, 创建者角色, 授权角色)，来源故障一律降级为无权限
func (ps *PermissionService) Resolve(entityType, entityId string, subject model.Subject) (model.Permission, error) {
	start := time.Now()
	perm, err := ps.resolve(entityType, entityId, subject)
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			metrics.ResolveFailClosed.Inc()
			log.Errorw("permission resolution failed closed",
				"entityType", entityType, "entityId", entityId,
				"subject", subject.String(), "error", err)
		}
		return model.NoAccess, err
	}

	metrics.ResolveTotal.WithLabelValues(roleLabel(perm.Role)).Inc()
	return perm, nil
}

func roleLabel(role string) string {
	if role == "" {
		return "none"
	}
	return role
}

func (ps *PermissionService) resolve(entityType, entityId string, subject model.Subject) (model.Permission, error) {
	ref, err := ps.locateEntity(entityType, entityId)
	if err != nil {
		if errs.KindOf(err) == errs.KindInternal {
			return model.NoAccess, errs.Internal(err, "locate entity")
		}
		return model.NoAccess, err
	}

	switch subject.Type {
	case model.SubjectUser:
		return ps.resolveUser(entityType, entityId, ref, subject.Id)
	case model.SubjectGroup:
		return ps.resolveGroup(entityType, entityId, ref, subject.Id)
	case model.SubjectTeam:
		return model.NoAccess, errs.Validation("subject type %q is reserved and not yet supported", subject.Type)
	default:
		return model.NoAccess, errs.Validation("unknown subject type %q", subject.Type)
	}
}

// resolveUser 解析用户主体
func (ps *PermissionService) resolveUser(entityType, entityId string, ref *entityRef, userId string) (model.Permission, error) {
	// 1. 基础角色：非工作区成员无任何权限
	member, err := ps.repo.WorkspaceMember.GetMember(ref.WorkspaceId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NoAccess, nil
		}
		return model.NoAccess, errs.Internal(err, "load workspace member")
	}
	best := member.BaseRole

	// 2. 创建者角色：未被撤销时视同 editor
	if ref.CreatedBy == userId {
		revoked, err := ps.repo.CreatorRevocation.IsRevoked(entityType, entityId, userId)
		if err != nil {
			return model.NoAccess, errs.Internal(err, "load creator revocation")
		}
		if !revoked {
			best = model.MaxRole(best, model.RoleEditor)
		}
	}

	// 3. 直接授权
	grant, err := ps.repo.EntityGrant.GetActiveGrant(entityType, entityId, model.SubjectUser, userId)
	if err == nil {
		best = model.MaxRole(best, grant.Role)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NoAccess, errs.Internal(err, "load direct grant")
	}

	// 4. 组授权：取用户所在组里最强的授权
	memberships, err := ps.repo.GroupMember.ListUserGroups(ref.WorkspaceId, userId)
	if err != nil {
		return model.NoAccess, errs.Internal(err, "load group memberships")
	}
	if len(memberships) > 0 {
		groupIds := make([]string, 0, len(memberships))
		for _, m := range memberships {
			groupIds = append(groupIds, m.GroupId)
		}
		grants, err := ps.repo.EntityGrant.ListActiveGrantsForSubjects(entityType, entityId, model.SubjectGroup, groupIds)
		if err != nil {
			return model.NoAccess, errs.Internal(err, "load group grants")
		}
		for _, g := range grants {
			best = model.MaxRole(best, g.Role)
		}
	}

	return model.PermissionOf(best), nil
}

// resolveGroup 解析组主体，只看组自身的活跃授权
func (ps *PermissionService) resolveGroup(entityType, entityId string, ref *entityRef, groupId string) (model.Permission, error) {
	group, err := ps.repo.Group.GetGroup(groupId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NoAccess, nil
		}
		return model.NoAccess, errs.Internal(err, "load group")
	}
	if group.WorkspaceId != ref.WorkspaceId {
		// 跨工作区不可见
		return model.NoAccess, nil
	}

	grant, err := ps.repo.EntityGrant.GetActiveGrant(entityType, entityId, model.SubjectGroup, groupId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NoAccess, nil
		}
		return model.NoAccess, errs.Internal(err, "load group grant")
	}
	return model.PermissionOf(grant.Role), nil
}

// Require 要求用户对实体至少具备指定角色
func (ps *PermissionService) Require(entityType, entityId, userId, minRole string) error {
	perm, err := ps.Resolve(entityType, entityId, model.Subject{Type: model.SubjectUser, Id: userId})
	if err != nil {
		return err
	}
	if model.RoleRank(perm.Role) < model.RoleRank(minRole) {
		return errs.Authorization("user %s requires %s on %s %s", userId, minRole, entityType, entityId)
	}
	return nil
}
