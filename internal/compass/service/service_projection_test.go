package service

import (
	"strings"
	"testing"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/statemachine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// distributeOne 给单个用户分发并返回投影 id
func (e *testEnv) distributeOne(actor, itemId, userId string) string {
	e.t.Helper()
	outcomes, err := e.services.Distribution.Distribute(actor, itemId, &model.DistributeReq{
		SubjectType: model.SubjectUser,
		SubjectId:   userId,
	})
	require.NoError(e.t, err)
	require.Len(e.t, outcomes, 1)
	require.Equal(e.t, model.OutcomeCreated, outcomes[0].Outcome)
	return outcomes[0].ProjectionId
}

// 仅接收者本人可以接受，且只有 pending 可接受
func TestProjectionAccept(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	pid := e.distributeOne("owner", item.ItemId, "u1")

	err := e.services.Projection.Accept("owner", pid)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	require.NoError(t, e.services.Projection.Accept("u1", pid))

	projection, err := e.services.Projection.GetProjection("u1", pid)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ProjectionAccepted, projection.ProjStatus())
	assert.NotNil(t, projection.RespondedAt)

	// 重复接受冲突
	err = e.services.Projection.Accept("u1", pid)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

// 拒绝后不可再接受，分发方可重新邀请
func TestProjectionDeclineAndReinvite(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	pid := e.distributeOne("owner", item.ItemId, "u1")

	require.NoError(t, e.services.Projection.Decline("u1", pid))

	err := e.services.Projection.Accept("u1", pid)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	// 重新邀请只有分发方可以发起
	err = e.services.Projection.Reinvite("u1", pid)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	require.NoError(t, e.services.Projection.Reinvite("owner", pid))

	projection, err := e.services.Projection.GetProjection("u1", pid)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ProjectionPending, projection.ProjStatus())
	assert.Nil(t, projection.RespondedAt)

	// 回到 pending 后可以正常接受
	require.NoError(t, e.services.Projection.Accept("u1", pid))

	// 未处于 declined 状态时重新邀请冲突
	err = e.services.Projection.Reinvite("owner", pid)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

// 撤回：pending/accepted 均可撤，重复撤回幂等，撤回终局不可被接收者改写
func TestProjectionRevoke(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	e.addMember("owner", ws.WorkspaceId, "u2", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	p1 := e.distributeOne("owner", item.ItemId, "u1")
	p2 := e.distributeOne("owner", item.ItemId, "u2")

	// pending 直接撤回
	require.NoError(t, e.services.Projection.Revoke("owner", p1))

	// accepted 撤回
	require.NoError(t, e.services.Projection.Accept("u2", p2))
	require.NoError(t, e.services.Projection.Revoke("owner", p2))

	// 重复撤回幂等
	require.NoError(t, e.services.Projection.Revoke("owner", p2))

	projection, err := e.services.Projection.GetProjection("owner", p2)
	require.NoError(t, err)
	assert.Equal(t, statemachine.ProjectionRevoked, projection.ProjStatus())
	assert.Equal(t, "owner", projection.RevokedBy)
	assert.NotNil(t, projection.RevokedAt)

	// 撤回后接收者无法再表态
	err = e.services.Projection.Accept("u1", p1)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	// 非 owner 无权撤回
	err = e.services.Projection.Revoke("u1", p1)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

// 接收方列表：pending 不露条目内容，accepted 附带条目与权限
func TestListSharedWithMe(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item1 := e.seedItem("owner", ws.WorkspaceId)
	item2 := e.seedItem("owner", ws.WorkspaceId)

	p1 := e.distributeOne("owner", item1.ItemId, "u1")
	e.distributeOne("owner", item2.ItemId, "u1")

	require.NoError(t, e.services.Projection.Accept("u1", p1))

	views, err := e.services.Projection.ListSharedWithMe("u1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	byItem := make(map[string]model.ProjectionView, len(views))
	for _, v := range views {
		byItem[v.Projection.SourceItemId] = v
	}

	accepted := byItem[item1.ItemId]
	require.NotNil(t, accepted.Item)
	assert.Equal(t, item1.ItemId, accepted.Item.ItemId)
	assert.True(t, accepted.Permission.CanView)
	assert.Equal(t, model.RoleViewer, accepted.Permission.Role)

	pending := byItem[item2.ItemId]
	assert.Nil(t, pending.Item)
	assert.False(t, pending.Permission.CanView)

	// 附加 editor 授权时 accepted 权限随之提升
	e.grantTo("owner", model.EntityItem, item1.ItemId, model.SubjectUser, "u1", model.RoleEditor)
	views, err = e.services.Projection.ListSharedWithMe("u1")
	require.NoError(t, err)
	for _, v := range views {
		if v.Projection.SourceItemId == item1.ItemId {
			assert.Equal(t, model.RoleEditor, v.Permission.Role)
		}
	}

	// 撤回后从接收方列表消失
	require.NoError(t, e.services.Projection.Revoke("owner", p1))
	views, err = e.services.Projection.ListSharedWithMe("u1")
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

// 完成状态是接收者私有的投影字段，不回写源条目
func TestProjectionCompletion(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	e.addMember("owner", ws.WorkspaceId, "u2", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	outcomes, err := e.services.Distribution.Distribute("owner", item.ItemId, &model.DistributeReq{
		SubjectType: model.SubjectUser,
		SubjectId:   "u1",
		CanEdit:     true,
		CanComplete: true,
	})
	require.NoError(t, err)
	pid := outcomes[0].ProjectionId

	// 接受前不能标记完成
	err = e.services.Projection.SetCompletion("u1", pid, true)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	require.NoError(t, e.services.Projection.Accept("u1", pid))

	// 仅接收者本人可标记
	err = e.services.Projection.SetCompletion("owner", pid, true)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	require.NoError(t, e.services.Projection.SetCompletion("u1", pid, true))

	projection, err := e.services.Projection.GetProjection("u1", pid)
	require.NoError(t, err)
	assert.True(t, projection.Completed)

	// can_edit 投影把接收方权限抬到 editor
	views, err := e.services.Projection.ListSharedWithMe("u1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, model.RoleEditor, views[0].Permission.Role)
	assert.True(t, views[0].Permission.CanEdit)

	// 未授予 can_complete 的投影不可标记
	outcomes, err = e.services.Distribution.Distribute("owner", item.ItemId, &model.DistributeReq{
		SubjectType: model.SubjectUser,
		SubjectId:   "u2",
	})
	require.NoError(t, err)
	p2 := outcomes[0].ProjectionId
	require.NoError(t, e.services.Projection.Accept("u2", p2))

	err = e.services.Projection.SetCompletion("u2", p2, true)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

// 可见性：接收者与条目 owner 可见，其余人不可见
func TestProjectionVisibility(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	e.addMember("owner", ws.WorkspaceId, "u2", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	pid := e.distributeOne("owner", item.ItemId, "u1")

	_, err := e.services.Projection.GetProjection("u2", pid)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	_, err = e.services.Projection.ListByItem("u1", item.ItemId)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	_, err = e.services.Projection.GetProjection("owner", "missing")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

// 投影状态变化的审计事件携带迁移前后状态
func TestProjectionAuditStatusTrail(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	projectionId := e.distributeOne("owner", item.ItemId, "u1")

	require.NoError(t, e.services.Projection.Accept("u1", projectionId))
	require.NoError(t, e.services.Projection.Revoke("owner", projectionId))
	e.waitAudit()

	created, _, err := e.services.Audit.QueryEvents(&model.QueryAuditReq{Action: "projection.create"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Contains(t, created[0].Payload, `"fromStatus":""`)
	assert.Contains(t, created[0].Payload, `"toStatus":"PENDING"`)

	accepted, _, err := e.services.Audit.QueryEvents(&model.QueryAuditReq{Action: "projection.accept"})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "u1", accepted[0].ActorId)
	assert.Contains(t, accepted[0].Payload, `"fromStatus":"PENDING"`)
	assert.Contains(t, accepted[0].Payload, `"toStatus":"ACCEPTED"`)

	revoked, _, err := e.services.Audit.QueryEvents(&model.QueryAuditReq{Action: "projection.revoke"})
	require.NoError(t, err)
	require.Len(t, revoked, 1)
	assert.Contains(t, revoked[0].Payload, `"fromStatus":"ACCEPTED"`)
	assert.Contains(t, revoked[0].Payload, `"toStatus":"REVOKED"`)

	// 重新邀请作为 projection.create 记录，带 reinvite 标记与 REVOKED→PENDING 快照
	require.NoError(t, e.services.Projection.Reinvite("owner", projectionId))
	e.waitAudit()

	created, _, err = e.services.Audit.QueryEvents(&model.QueryAuditReq{Action: "projection.create"})
	require.NoError(t, err)
	require.Len(t, created, 2)
	var reinvited bool
	for _, ev := range created {
		if strings.Contains(ev.Payload, `"reinvite":true`) {
			reinvited = true
			assert.Contains(t, ev.Payload, `"fromStatus":"REVOKED"`)
			assert.Contains(t, ev.Payload, `"toStatus":"PENDING"`)
		}
	}
	assert.True(t, reinvited)
}
