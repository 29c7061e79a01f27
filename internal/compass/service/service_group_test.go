package service

import (
	"testing"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 加入分组前必须先是工作区成员，重复加入冲突
func TestGroupAddMemberValidation(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	group := e.seedGroup("owner", ws.WorkspaceId)

	err := e.services.Group.AddMember("owner", group.GroupId, &model.AddGroupMemberReq{UserId: "outsider"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	require.NoError(t, e.services.Group.AddMember("owner", group.GroupId, &model.AddGroupMemberReq{UserId: "u1"}))

	err = e.services.Group.AddMember("owner", group.GroupId, &model.AddGroupMemberReq{UserId: "u1"})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

// 非工作区成员不能创建分组
func TestGroupCreateRequiresMembership(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	_, err := e.services.Group.CreateGroup("outsider", &model.CreateGroupReq{
		WorkspaceId: ws.WorkspaceId,
		Name:        "g",
	})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

// 移除分组成员后其经组授权立即失效
func TestGroupRemoveMemberDropsGroupGrant(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)
	group := e.seedGroup("owner", ws.WorkspaceId, "u1")

	e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectGroup, group.GroupId, model.RoleEditor)
	assert.Equal(t, model.RoleEditor, e.resolveUser(model.EntityItem, item.ItemId, "u1").Role)

	require.NoError(t, e.services.Group.RemoveMember("owner", group.GroupId, "u1"))
	assert.Equal(t, model.RoleViewer, e.resolveUser(model.EntityItem, item.ItemId, "u1").Role)

	err := e.services.Group.RemoveMember("owner", group.GroupId, "u1")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

// 退出工作区级联移除全部组成员关系，权限归零
func TestExitWorkspaceCascade(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleEditor)
	item := e.seedItem("owner", ws.WorkspaceId)
	g1 := e.seedGroup("owner", ws.WorkspaceId, "u1")
	g2 := e.seedGroup("owner", ws.WorkspaceId, "u1")

	e.grantTo("owner", model.EntityItem, item.ItemId, model.SubjectGroup, g1.GroupId, model.RoleOwner)

	exited := false
	e.bus.Subscribe(event.WorkspaceExit, func(ev event.Event) {
		exited = true
	})

	require.NoError(t, e.services.Workspace.ExitWorkspace(ws.WorkspaceId, "u1"))
	assert.True(t, exited)

	// 成员与组成员关系全部移除
	_, err := e.services.Workspace.GetMember(ws.WorkspaceId, "u1")
	assert.True(t, errs.IsNotFound(err))
	for _, g := range []*model.Group{g1, g2} {
		members, err := e.services.Group.ListMembers(g.GroupId)
		require.NoError(t, err)
		assert.Empty(t, members)
	}

	// 不再是成员即无任何权限
	assert.Equal(t, model.NoAccess, e.resolveUser(model.EntityItem, item.ItemId, "u1"))
}

// 级联中途失败时整个退出操作回滚
func TestExitWorkspaceCascadeAtomicity(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	group := e.seedGroup("owner", ws.WorkspaceId, "u1")

	e.services.Workspace.cascadeFault = func(workspaceId, userId string) error {
		return assert.AnError
	}

	err := e.services.Workspace.ExitWorkspace(ws.WorkspaceId, "u1")
	require.Error(t, err)

	// 回滚后成员关系原样保留
	member, err := e.services.Workspace.GetMember(ws.WorkspaceId, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, member.BaseRole)

	members, err := e.services.Group.ListMembers(group.GroupId)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "u1", members[0].UserId)

	// 排除故障后重试成功
	e.services.Workspace.cascadeFault = nil
	require.NoError(t, e.services.Workspace.ExitWorkspace(ws.WorkspaceId, "u1"))
}

// 非成员退出工作区返回 not found
func TestExitWorkspaceNotMember(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	err := e.services.Workspace.ExitWorkspace(ws.WorkspaceId, "stranger")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

// 仅 owner 可以添加工作区成员
func TestWorkspaceAddMemberRequiresOwner(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "editor-user", model.RoleEditor)

	err := e.services.Workspace.AddMember("editor-user", ws.WorkspaceId, &model.AddWorkspaceMemberReq{
		UserId:   "u2",
		BaseRole: model.RoleViewer,
	})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	err = e.services.Workspace.AddMember("owner", ws.WorkspaceId, &model.AddWorkspaceMemberReq{
		UserId:   "editor-user",
		BaseRole: model.RoleViewer,
	})
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

// 成员列表对成员可见，非成员不可见
func TestWorkspaceListMembers(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)

	members, err := e.services.Workspace.ListMembers("u1", ws.WorkspaceId)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = e.services.Workspace.ListMembers("stranger", ws.WorkspaceId)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))
}

// 仅 owner 可调整成员基础角色，变更在下一次解析立即可见
func TestWorkspaceUpdateMemberRole(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	err := e.services.Workspace.UpdateMemberRole("u1", ws.WorkspaceId, &model.UpdateWorkspaceMemberReq{
		UserId:   "u1",
		BaseRole: model.RoleEditor,
	})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	err = e.services.Workspace.UpdateMemberRole("owner", ws.WorkspaceId, &model.UpdateWorkspaceMemberReq{
		UserId:   "u1",
		BaseRole: "superuser",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	err = e.services.Workspace.UpdateMemberRole("owner", ws.WorkspaceId, &model.UpdateWorkspaceMemberReq{
		UserId:   "ghost",
		BaseRole: model.RoleEditor,
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, e.services.Workspace.UpdateMemberRole("owner", ws.WorkspaceId, &model.UpdateWorkspaceMemberReq{
		UserId:   "u1",
		BaseRole: model.RoleEditor,
	}))
	perm := e.resolveUser(model.EntityItem, item.ItemId, "u1")
	assert.Equal(t, model.RoleEditor, perm.Role)
}

// owner 移除成员走与退出一致的级联，组成员关系一并清理
func TestWorkspaceRemoveMemberCascade(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "u1", model.RoleViewer)
	group := e.seedGroup("owner", ws.WorkspaceId, "u1")

	err := e.services.Workspace.RemoveMember("u1", ws.WorkspaceId, "owner")
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	require.NoError(t, e.services.Workspace.RemoveMember("owner", ws.WorkspaceId, "u1"))

	_, err = e.services.Workspace.GetMember(ws.WorkspaceId, "u1")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	groupMembers, err := e.repos.GroupMember.ListGroupMembers(group.GroupId)
	require.NoError(t, err)
	assert.Empty(t, groupMembers)

	// 再次移除同一成员报 NotFound
	err = e.services.Workspace.RemoveMember("owner", ws.WorkspaceId, "u1")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
