package service

import (
	"errors"
	"time"

	"github.com/go-compass/compass/internal/compass/constant"
	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/event"
	"github.com/go-compass/compass/pkg/id"
	"github.com/go-compass/compass/pkg/log"
	"github.com/go-compass/compass/pkg/metrics"
	"github.com/go-compass/compass/pkg/statemachine"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/16
 * @file: service_distribution.go
 * @description: 分发服务
 */

// DistributionService 分发服务
// 幂等：对同一条目重复分发不会产生重复投影，已响应的接收者不被打扰
type DistributionService struct {
	ctx        *ctx.Context
	repo       *repo.Repositories
	permission *PermissionService
	bus        *event.Bus
}

// NewDistributionService 创建分发服务实例
func NewDistributionService(c *ctx.Context, repos *repo.Repositories, permission *PermissionService, bus *event.Bus) *DistributionService {
	return &DistributionService{
		ctx:        c,
		repo:       repos,
		permission: permission,
		bus:        bus,
	}
}

// Distribute 将条目分发给主体，逐个接收者返回结果
// 组主体按分发时刻的成员快照展开，之后加入组的用户不会追溯收到投影；
// 正确性由 (source_item_id, target_subject_id) 唯一索引保证，redis 锁只用于减少无谓冲突
func (ds *DistributionService) Distribute(actorId, itemId string, req *model.DistributeReq) ([]model.DistributeOutcome, error) {
	item, err := ds.loadItem(itemId)
	if err != nil {
		return nil, err
	}
	if err := ds.permission.Require(model.EntityItem, itemId, actorId, model.RoleOwner); err != nil {
		return nil, err
	}

	subject, err := model.ParseSubject(req.SubjectType, req.SubjectId)
	if err != nil {
		return nil, errs.Validation("%v", err)
	}

	targets, err := ds.expandSubject(item, subject)
	if err != nil {
		return nil, err
	}

	// 授予的能力受分发者自身权限封顶，投影永不超过分发者
	actorPerm, err := ds.permission.Resolve(model.EntityItem, itemId,
		model.Subject{Type: model.SubjectUser, Id: actorId})
	if err != nil {
		return nil, err
	}
	grant := projectionGrant{
		canEdit:     req.CanEdit && actorPerm.CanEdit,
		canComplete: req.CanComplete && actorPerm.CanView,
	}
	if subject.Type == model.SubjectGroup {
		grant.sourceGroupId = subject.Id
	}

	if ds.ctx.Cache != nil {
		lockKey := constant.DistributeLockKeyPrefix + itemId
		ok, err := ds.ctx.Cache.SetNX(ds.ctx.GetCtx(), lockKey, actorId, 30*time.Second).Result()
		if err != nil {
			log.Warnw("distribute lock unavailable, proceeding unlocked", "itemId", itemId, "error", err)
		} else if ok {
			defer func() {
				ds.ctx.Cache.Del(ds.ctx.GetCtx(), lockKey)
			}()
		}
	}

	outcomes := make([]model.DistributeOutcome, 0, len(targets))
	for _, userId := range targets {
		outcome := ds.distributeToUser(actorId, item, userId, grant)
		metrics.DistributeOutcomes.WithLabelValues(outcome.Outcome).Inc()
		outcomes = append(outcomes, outcome)
	}

	log.Infow("item distributed", "itemId", itemId, "subject", subject.String(),
		"targets", len(targets), "actor", actorId)
	return outcomes, nil
}

// expandSubject 展开主体为接收用户列表
func (ds *DistributionService) expandSubject(item *model.SharedItem, subject model.Subject) ([]string, error) {
	switch subject.Type {
	case model.SubjectUser:
		return []string{subject.Id}, nil
	case model.SubjectGroup:
		group, err := ds.repo.Group.GetGroup(subject.Id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Validation("group %s not found", subject.Id)
			}
			return nil, errs.Internal(err, "load group")
		}
		if group.WorkspaceId != item.WorkspaceId {
			return nil, errs.Validation("group %s does not belong to workspace %s", subject.Id, item.WorkspaceId)
		}
		members, err := ds.repo.GroupMember.ListGroupMembers(subject.Id)
		if err != nil {
			return nil, errs.Internal(err, "list group members")
		}
		targets := make([]string, 0, len(members))
		for _, m := range members {
			targets = append(targets, m.UserId)
		}
		return targets, nil
	default:
		return nil, errs.Validation("unknown subject type %q", subject.Type)
	}
}

// projectionGrant 本次分发授予的能力与来源组
type projectionGrant struct {
	canEdit       bool
	canComplete   bool
	sourceGroupId string
}

// distributeToUser 向单个用户分发
// 任何状态的已有投影一律跳过：重复分发不会悄悄重置接收者先前的表态，
// 恢复已拒绝/已撤回的投影只能走显式的 Reinvite
func (ds *DistributionService) distributeToUser(actorId string, item *model.SharedItem, userId string, grant projectionGrant) model.DistributeOutcome {
	// 接收资格：必须仍是工作区成员
	if _, err := ds.repo.WorkspaceMember.GetMember(item.WorkspaceId, userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DistributeOutcome{
				UserId:  userId,
				Outcome: model.OutcomeInvalid,
				Reason:  "not a workspace member",
			}
		}
		return model.DistributeOutcome{UserId: userId, Outcome: model.OutcomeInvalid, Reason: "eligibility check failed"}
	}

	existing, err := ds.repo.Projection.GetByItemAndSubject(item.ItemId, userId)
	if err == nil {
		return model.DistributeOutcome{
			UserId:       userId,
			Outcome:      model.OutcomeSkipped,
			ProjectionId: existing.ProjectionId,
			Reason:       "projection already " + existing.Status,
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DistributeOutcome{UserId: userId, Outcome: model.OutcomeInvalid, Reason: "projection lookup failed"}
	}

	now := time.Now()
	projection := &model.Projection{
		ProjectionId:    id.GetUUID(),
		SourceItemId:    item.ItemId,
		TargetSubjectId: userId,
		WorkspaceId:     item.WorkspaceId,
		SourceGroupId:   grant.sourceGroupId,
		Status:          string(statemachine.ProjectionPending),
		StatusChangedAt: &now,
		CanEdit:         grant.canEdit,
		CanComplete:     grant.canComplete,
		DistributedBy:   actorId,
	}
	if err := ds.repo.Projection.CreateProjection(projection); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发分发，后到者让位
			return model.DistributeOutcome{UserId: userId, Outcome: model.OutcomeSkipped, Reason: "concurrent distribution"}
		}
		return model.DistributeOutcome{UserId: userId, Outcome: model.OutcomeInvalid, Reason: "projection create failed"}
	}

	ds.bus.Publish(event.New(event.ProjectionCreated, actorId, map[string]any{
		"projectionId": projection.ProjectionId,
		"itemId":       item.ItemId,
		"targetUserId": userId,
		"fromStatus":   "",
		"toStatus":     string(statemachine.ProjectionPending),
	}))
	return model.DistributeOutcome{UserId: userId, Outcome: model.OutcomeCreated, ProjectionId: projection.ProjectionId}
}

func (ds *DistributionService) loadItem(itemId string) (*model.SharedItem, error) {
	item, err := ds.repo.Item.GetItem(itemId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("item %s not found", itemId)
		}
		return nil, errs.Internal(err, "load item")
	}
	return item, nil
}
