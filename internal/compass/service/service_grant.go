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
 * @file: service_grant.go
 * @description: 实体授权服务
 */

// GrantService 实体授权服务
type GrantService struct {
	ctx        *ctx.Context
	repo       *repo.Repositories
	permission *PermissionService
	bus        *event.Bus
}

// NewGrantService 创建授权服务实例
func NewGrantService(c *ctx.Context, repos *repo.Repositories, permission *PermissionService, bus *event.Bus) *GrantService {
	return &GrantService{
		ctx:        c,
		repo:       repos,
		permission: permission,
		bus:        bus,
	}
}

// CreateGrant 创建授权
// 1. 校验角色与主体
// 2. 授权人必须对实体具备 owner 权限
// 3. 主体必须属于实体所在工作区
// 4. 同一主体已有活跃授权则冲突，返回已有记录
func (gs *GrantService) CreateGrant(actorId string, req *model.CreateGrantReq) (*model.EntityGrant, error) {
	if !model.IsValidRole(req.Role) {
		return nil, errs.Validation("unknown role %q", req.Role)
	}
	subject, err := model.ParseSubject(req.SubjectType, req.SubjectId)
	if err != nil {
		return nil, errs.Validation("%v", err)
	}

	if err := gs.permission.Require(req.EntityType, req.EntityId, actorId, model.RoleOwner); err != nil {
		return nil, err
	}

	ref, err := gs.permission.locateEntity(req.EntityType, req.EntityId)
	if err != nil {
		return nil, err
	}
	if err := gs.checkSubjectInWorkspace(ref.WorkspaceId, subject); err != nil {
		return nil, err
	}

	grant := &model.EntityGrant{
		GrantId:     id.GetUUID(),
		WorkspaceId: ref.WorkspaceId,
		EntityType:  req.EntityType,
		EntityId:    req.EntityId,
		SubjectType: subject.Type,
		SubjectId:   subject.Id,
		Role:        req.Role,
		IsActive:    model.ActiveFlag(),
		GrantedBy:   actorId,
	}

	if err := gs.repo.EntityGrant.CreateGrant(grant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, gerr := gs.repo.EntityGrant.GetActiveGrant(req.EntityType, req.EntityId, subject.Type, subject.Id)
			if gerr != nil {
				return nil, errs.Conflict("subject %s already has an active grant", subject.String())
			}
			return nil, errs.ConflictWith(existing, "subject %s already has an active grant, revoke it first", subject.String())
		}
		return nil, errs.Internal(err, "create grant")
	}

	log.Infow("grant created", "grantId", grant.GrantId, "entity", req.EntityType+":"+req.EntityId,
		"subject", subject.String(), "role", req.Role, "actor", actorId)
	// 审计事件带前后快照；创建时若存在活跃授权早已冲突返回，before 恒为空
	gs.bus.Publish(event.New(event.GrantCreated, actorId, map[string]any{
		"grantId":     grant.GrantId,
		"entityType":  grant.EntityType,
		"entityId":    grant.EntityId,
		"subjectType": grant.SubjectType,
		"subjectId":   grant.SubjectId,
		"beforeRole":  "",
		"afterRole":   grant.Role,
	}))

	return grant, nil
}

// checkSubjectInWorkspace 校验主体属于工作区
func (gs *GrantService) checkSubjectInWorkspace(workspaceId string, subject model.Subject) error {
	switch subject.Type {
	case model.SubjectUser:
		_, err := gs.repo.WorkspaceMember.GetMember(workspaceId, subject.Id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Validation("user %s is not a member of workspace %s", subject.Id, workspaceId)
			}
			return errs.Internal(err, "load workspace member")
		}
	case model.SubjectGroup:
		group, err := gs.repo.Group.GetGroup(subject.Id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Validation("group %s not found", subject.Id)
			}
			return errs.Internal(err, "load group")
		}
		if group.WorkspaceId != workspaceId {
			return errs.Validation("group %s does not belong to workspace %s", subject.Id, workspaceId)
		}
	}
	return nil
}

// RevokeGrant 撤销授权，撤销立即生效且不可恢复
// 已撤销的授权再次撤销按幂等处理
func (gs *GrantService) RevokeGrant(actorId, grantId string) error {
	grant, err := gs.repo.EntityGrant.GetGrant(grantId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("grant %s not found", grantId)
		}
		return errs.Internal(err, "load grant")
	}

	if err := gs.permission.Require(grant.EntityType, grant.EntityId, actorId, model.RoleOwner); err != nil {
		return err
	}

	rows, err := gs.repo.EntityGrant.RevokeGrant(grantId, actorId)
	if err != nil {
		return errs.Internal(err, "revoke grant")
	}
	if rows == 0 {
		// 已撤销，幂等
		return nil
	}

	log.Infow("grant revoked", "grantId", grantId, "actor", actorId)
	gs.bus.Publish(event.New(event.GrantRevoked, actorId, map[string]any{
		"grantId":     grantId,
		"entityType":  grant.EntityType,
		"entityId":    grant.EntityId,
		"subjectType": grant.SubjectType,
		"subjectId":   grant.SubjectId,
		"beforeRole":  grant.Role,
		"afterRole":   "",
	}))
	return nil
}

// ListGrants 列出实体的活跃授权
func (gs *GrantService) ListGrants(actorId, entityType, entityId string) ([]model.EntityGrant, error) {
	if err := gs.permission.Require(entityType, entityId, actorId, model.RoleViewer); err != nil {
		return nil, err
	}
	grants, err := gs.repo.EntityGrant.ListActiveGrantsForEntity(entityType, entityId)
	if err != nil {
		return nil, errs.Internal(err, "list grants")
	}
	return grants, nil
}

// ListSubjectGrants 列出用户名下的全部活跃授权（"我能访问什么"）
// 含直接授权与经由所属分组获得的授权，分组来源保留在 SubjectType/SubjectId 上
func (gs *GrantService) ListSubjectGrants(userId string) ([]model.EntityGrant, error) {
	grants, err := gs.repo.EntityGrant.ListActiveGrantsBySubject(model.SubjectUser, userId)
	if err != nil {
		return nil, errs.Internal(err, "list subject grants")
	}

	memberships, err := gs.repo.GroupMember.ListAllUserGroups(userId)
	if err != nil {
		return nil, errs.Internal(err, "list user groups")
	}
	if len(memberships) > 0 {
		groupIds := make([]string, 0, len(memberships))
		for _, m := range memberships {
			groupIds = append(groupIds, m.GroupId)
		}
		groupGrants, err := gs.repo.EntityGrant.ListActiveGrantsBySubjects(model.SubjectGroup, groupIds)
		if err != nil {
			return nil, errs.Internal(err, "list group grants")
		}
		grants = append(grants, groupGrants...)
	}
	return grants, nil
}
