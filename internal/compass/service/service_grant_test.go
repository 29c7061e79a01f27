package service

import (
	"errors"
	"testing"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 同一主体重复授权冲突，响应携带已有授权
func TestCreateGrantDuplicateConflict(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	first := e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectUser, "u1", model.RoleViewer)

	_, err := e.services.Grant.CreateGrant("owner", &model.CreateGrantReq{
		EntityType:  model.EntityItem,
		EntityId:    item.ItemId,
		SubjectType: model.SubjectUser,
		SubjectId:   "u1",
		Role:        model.RoleEditor,
	})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	var e2 *errs.Error
	require.True(t, errors.As(err, &e2))
	existing, ok := e2.Existing.(*model.EntityGrant)
	require.True(t, ok)
	assert.Equal(t, first.GrantId, existing.GrantId)
}

// 撤销后可以重新授权，历史记录保留
func TestRevokeThenRecreateGrant(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	first := e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectUser, "u1", model.RoleViewer)
	require.NoError(t, e.services.Grant.RevokeGrant("owner", first.GrantId))

	// 重复撤销幂等
	require.NoError(t, e.services.Grant.RevokeGrant("owner", first.GrantId))

	second := e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectUser, "u1", model.RoleEditor)
	assert.NotEqual(t, first.GrantId, second.GrantId)

	perm := e.resolveUser(model.EntityItem, item.ItemId, "u1")
	assert.Equal(t, model.RoleEditor, perm.Role)

	// 历史行仍在
	old, err := e.repos.EntityGrant.GetGrant(first.GrantId)
	require.NoError(t, err)
	assert.False(t, old.Active())
	assert.Equal(t, "owner", old.RevokedBy)
	assert.NotNil(t, old.RevokedAt)
}

// 授权人必须对实体持有 owner 权限
func TestCreateGrantRequiresOwner(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "editor-user", model.RoleEditor)
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	_, err := e.services.Grant.CreateGrant("editor-user", &model.CreateGrantReq{
		EntityType:  model.EntityItem,
		EntityId:    item.ItemId,
		SubjectType: model.SubjectUser,
		SubjectId:   "u1",
		Role:        model.RoleViewer,
	})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

// 主体必须属于实体所在工作区
func TestCreateGrantSubjectMustBeMember(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	item := e.seedItem("owner", ws.WorkspaceId)

	_, err := e.services.Grant.CreateGrant("owner", &model.CreateGrantReq{
		EntityType:  model.EntityItem,
		EntityId:    item.ItemId,
		SubjectType: model.SubjectUser,
		SubjectId:   "outsider",
		Role:        model.RoleViewer,
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// team 主体预留
	_, err = e.services.Grant.CreateGrant("owner", &model.CreateGrantReq{
		EntityType:  model.EntityItem,
		EntityId:    item.ItemId,
		SubjectType: model.SubjectTeam,
		SubjectId:   "team-1",
		Role:        model.RoleViewer,
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = e.services.Grant.CreateGrant("owner", &model.CreateGrantReq{
		EntityType:  model.EntityItem,
		EntityId:    item.ItemId,
		SubjectType: model.SubjectUser,
		SubjectId:   "u1",
		Role:        "superuser",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

// 撤销直接授权不影响同主体经组获得的权限
func TestRevokeDirectGrantKeepsGroupGrant(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	group := e.seedGroup("owner", ws.WorkspaceId, "u1")

	direct := e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectUser, "u1", model.RoleOwner)
	e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectGroup, group.GroupId, model.RoleEditor)

	require.NoError(t, e.services.Grant.RevokeGrant("owner", direct.GrantId))

	perm := e.resolveUser(model.EntityItem, item.ItemId, "u1")
	assert.Equal(t, model.RoleEditor, perm.Role)
}

// 授权操作写入审计流
func TestGrantAuditTrail(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	grant := e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectUser, "u1", model.RoleViewer)
	require.NoError(t, e.services.Grant.RevokeGrant("owner", grant.GrantId))
	e.waitAudit()

	created, total, err := e.services.Audit.QueryEvents(&model.QueryAuditReq{Action: "grant.create"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, created, 1)
	assert.Equal(t, "owner", created[0].ActorId)
	assert.Contains(t, created[0].Payload, grant.GrantId)
	// 事件载荷带前后角色快照
	assert.Contains(t, created[0].Payload, `"afterRole":"`+model.RoleViewer+`"`)
	assert.Contains(t, created[0].Payload, `"beforeRole":""`)

	revoked, total, err := e.services.Audit.QueryEvents(&model.QueryAuditReq{Action: "grant.revoke"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, revoked, 1)
	assert.Contains(t, revoked[0].Payload, `"beforeRole":"`+model.RoleViewer+`"`)
	assert.Contains(t, revoked[0].Payload, `"afterRole":""`)
	assert.Contains(t, revoked[0].Payload, `"subjectId":"u1"`)
}

// "我能访问什么"：直接授权与分组来源授权都可见，撤销后消失
func TestListSubjectGrants(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	track := e.seedTrack("owner", ws.WorkspaceId)
	group := e.seedGroup("owner", ws.WorkspaceId, "u1")

	direct := e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectUser, "u1", model.RoleEditor)
	e.grantTo("owner", model.EntityTrack, track.TrackId, model.SubjectGroup, group.GroupId, model.RoleViewer)

	grants, err := e.services.Grant.ListSubjectGrants("u1")
	require.NoError(t, err)
	require.Len(t, grants, 2)

	bySubjectType := map[string]string{}
	for _, g := range grants {
		bySubjectType[g.SubjectType] = g.EntityId
	}
	assert.Equal(t, item.ItemId, bySubjectType[model.SubjectUser])
	assert.Equal(t, track.TrackId, bySubjectType[model.SubjectGroup])

	require.NoError(t, e.services.Grant.RevokeGrant("owner", direct.GrantId))

	grants, err = e.services.Grant.ListSubjectGrants("u1")
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, model.SubjectGroup, grants[0].SubjectType)

	// 未加入任何工作区的用户名下为空
	grants, err = e.services.Grant.ListSubjectGrants("nobody")
	require.NoError(t, err)
	assert.Empty(t, grants)
}
