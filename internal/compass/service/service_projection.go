package service

import (
	"errors"
	"time"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/event"
	"github.com/go-compass/compass/pkg/log"
	"github.com/go-compass/compass/pkg/metrics"
	"github.com/go-compass/compass/pkg/statemachine"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/16
 * @file: service_projection.go
 * @description: 投影服务
 */

// ProjectionService 投影服务
// 状态迁移由状态机约束，落库用乐观更新防并发双迁
type ProjectionService struct {
	ctx        *ctx.Context
	repo       *repo.Repositories
	permission *PermissionService
	bus        *event.Bus
	fsm        *statemachine.StateMachine[statemachine.ProjectionStatus]
}

// NewProjectionService 创建投影服务实例
func NewProjectionService(c *ctx.Context, repos *repo.Repositories, permission *PermissionService, bus *event.Bus) *ProjectionService {
	return &ProjectionService{
		ctx:        c,
		repo:       repos,
		permission: permission,
		bus:        bus,
		fsm:        statemachine.NewProjectionStateMachine(),
	}
}

func (ps *ProjectionService) loadProjection(projectionId string) (*model.Projection, error) {
	projection, err := ps.repo.Projection.GetProjection(projectionId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("projection %s not found", projectionId)
		}
		return nil, errs.Internal(err, "load projection")
	}
	return projection, nil
}

// transition 校验并执行状态迁移
func (ps *ProjectionService) transition(projection *model.Projection, to statemachine.ProjectionStatus, updates map[string]any) error {
	from := projection.ProjStatus()
	if !ps.fsm.CanTransition(from, to) {
		return errs.Conflict("projection %s cannot move from %s to %s", projection.ProjectionId, from, to)
	}
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status_changed_at"] = time.Now()
	rows, err := ps.repo.Projection.TransitionStatus(projection.ProjectionId, string(from), string(to), updates)
	if err != nil {
		return errs.Internal(err, "transition projection")
	}
	if rows == 0 {
		return errs.Conflict("projection %s was modified concurrently", projection.ProjectionId)
	}
	metrics.ProjectionTransitions.WithLabelValues(string(from), string(to)).Inc()
	return nil
}

// Accept 接收者接受投影，仅 pending 可接受
func (ps *ProjectionService) Accept(actorId, projectionId string) error {
	projection, err := ps.loadProjection(projectionId)
	if err != nil {
		return err
	}
	if projection.TargetSubjectId != actorId {
		return errs.Authorization("user %s is not the recipient of projection %s", actorId, projectionId)
	}

	from := projection.ProjStatus()
	now := time.Now()
	if err := ps.transition(projection, statemachine.ProjectionAccepted, map[string]any{
		"responded_at": &now,
	}); err != nil {
		return err
	}

	log.Infow("projection accepted", "projectionId", projectionId, "actor", actorId)
	ps.bus.Publish(event.New(event.ProjectionAccept, actorId, map[string]any{
		"projectionId": projectionId,
		"itemId":       projection.SourceItemId,
		"fromStatus":   string(from),
		"toStatus":     string(statemachine.ProjectionAccepted),
	}))
	return nil
}

// Decline 接收者拒绝投影，仅 pending 可拒绝
func (ps *ProjectionService) Decline(actorId, projectionId string) error {
	projection, err := ps.loadProjection(projectionId)
	if err != nil {
		return err
	}
	if projection.TargetSubjectId != actorId {
		return errs.Authorization("user %s is not the recipient of projection %s", actorId, projectionId)
	}

	from := projection.ProjStatus()
	now := time.Now()
	if err := ps.transition(projection, statemachine.ProjectionDeclined, map[string]any{
		"responded_at": &now,
	}); err != nil {
		return err
	}

	log.Infow("projection declined", "projectionId", projectionId, "actor", actorId)
	ps.bus.Publish(event.New(event.ProjectionDecline, actorId, map[string]any{
		"projectionId": projectionId,
		"itemId":       projection.SourceItemId,
		"fromStatus":   string(from),
		"toStatus":     string(statemachine.ProjectionDeclined),
	}))
	return nil
}

// Revoke 分发方撤回投影，pending/accepted 均可撤，重复撤回按幂等处理
func (ps *ProjectionService) Revoke(actorId, projectionId string) error {
	projection, err := ps.loadProjection(projectionId)
	if err != nil {
		return err
	}
	if err := ps.permission.Require(model.EntityItem, projection.SourceItemId, actorId, model.RoleOwner); err != nil {
		return err
	}

	if projection.ProjStatus() == statemachine.ProjectionRevoked {
		return nil
	}

	from := projection.ProjStatus()
	now := time.Now()
	if err := ps.transition(projection, statemachine.ProjectionRevoked, map[string]any{
		"revoked_by": actorId,
		"revoked_at": &now,
	}); err != nil {
		return err
	}

	log.Infow("projection revoked", "projectionId", projectionId, "actor", actorId)
	ps.bus.Publish(event.New(event.ProjectionRevoked, actorId, map[string]any{
		"projectionId": projectionId,
		"itemId":       projection.SourceItemId,
		"fromStatus":   string(from),
		"toStatus":     string(statemachine.ProjectionRevoked),
	}))
	return nil
}

// Reinvite 分发方对已拒绝或已撤回的投影重新发起邀请，回到 pending
// 重置先前表态的唯一入口，普通重复分发永远不会走到这里
func (ps *ProjectionService) Reinvite(actorId, projectionId string) error {
	projection, err := ps.loadProjection(projectionId)
	if err != nil {
		return err
	}
	if err := ps.permission.Require(model.EntityItem, projection.SourceItemId, actorId, model.RoleOwner); err != nil {
		return err
	}
	if !projection.ProjStatus().IsClosed() {
		return errs.Conflict("projection %s is not declined or revoked", projectionId)
	}

	from := projection.ProjStatus()
	if err := ps.transition(projection, statemachine.ProjectionPending, map[string]any{
		"distributed_by": actorId,
		"responded_at":   nil,
		"revoked_by":     "",
		"revoked_at":     nil,
	}); err != nil {
		return err
	}

	ps.bus.Publish(event.New(event.ProjectionCreated, actorId, map[string]any{
		"projectionId": projectionId,
		"itemId":       projection.SourceItemId,
		"reinvite":     true,
		"fromStatus":   string(from),
		"toStatus":     string(statemachine.ProjectionPending),
	}))
	return nil
}

// SetCompletion 接收者标记自己的完成状态
// 完成状态是接收者私有的视图字段，只落在投影行上，绝不回写源条目
func (ps *ProjectionService) SetCompletion(actorId, projectionId string, completed bool) error {
	projection, err := ps.loadProjection(projectionId)
	if err != nil {
		return err
	}
	if projection.TargetSubjectId != actorId {
		return errs.Authorization("user %s is not the recipient of projection %s", actorId, projectionId)
	}
	if projection.ProjStatus() != statemachine.ProjectionAccepted {
		return errs.Conflict("projection %s is not accepted", projectionId)
	}
	if !projection.CanComplete {
		return errs.Authorization("projection %s does not grant completion", projectionId)
	}

	if err := ps.repo.Projection.SetCompletion(projectionId, completed); err != nil {
		return errs.Internal(err, "set projection completion")
	}
	return nil
}

// GetProjection 获取投影，接收者或条目 owner 可见
func (ps *ProjectionService) GetProjection(actorId, projectionId string) (*model.Projection, error) {
	projection, err := ps.loadProjection(projectionId)
	if err != nil {
		return nil, err
	}
	if projection.TargetSubjectId != actorId {
		if err := ps.permission.Require(model.EntityItem, projection.SourceItemId, actorId, model.RoleOwner); err != nil {
			return nil, err
		}
	}
	return projection, nil
}

// ListByItem 列出条目的所有投影，需要条目 owner 权限
func (ps *ProjectionService) ListByItem(actorId, itemId string) ([]model.Projection, error) {
	if err := ps.permission.Require(model.EntityItem, itemId, actorId, model.RoleOwner); err != nil {
		return nil, err
	}
	projections, err := ps.repo.Projection.ListByItem(itemId)
	if err != nil {
		return nil, errs.Internal(err, "list projections")
	}
	return projections, nil
}

// ListSharedWithMe 接收方视角的投影列表
// pending 只露投影不露内容，accepted 附带条目与按查看者即时解析的权限；
// 投影本身授予 viewer 下限，can_edit 投影抬到 editor，解析出更强角色时以强者为准
func (ps *ProjectionService) ListSharedWithMe(userId string) ([]model.ProjectionView, error) {
	projections, err := ps.repo.Projection.ListBySubject(userId, []string{
		string(statemachine.ProjectionPending),
		string(statemachine.ProjectionAccepted),
	})
	if err != nil {
		return nil, errs.Internal(err, "list projections")
	}

	views := make([]model.ProjectionView, 0, len(projections))
	for _, p := range projections {
		view := model.ProjectionView{Projection: p}
		if p.ProjStatus() == statemachine.ProjectionAccepted {
			// 共享字段永远从唯一的源条目即时读取，投影不存副本
			item, err := ps.repo.Item.GetItem(p.SourceItemId)
			if err == nil {
				view.Item = item
			}
			resolved, _ := ps.permission.Resolve(model.EntityItem, p.SourceItemId,
				model.Subject{Type: model.SubjectUser, Id: userId})
			floor := model.RoleViewer
			if p.CanEdit {
				floor = model.RoleEditor
			}
			view.Permission = model.PermissionOf(model.MaxRole(resolved.Role, floor))
		}
		views = append(views, view)
	}
	return views, nil
}
