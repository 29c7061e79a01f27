package service

import (
	"testing"
	"time"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// 创建条目需要工作区 editor 基础角色
func TestCreateItemRequiresEditor(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "viewer-user", model.RoleViewer)

	_, err := e.services.Item.CreateItem("viewer-user", &model.CreateItemReq{
		WorkspaceId: ws.WorkspaceId,
		Kind:        model.ItemKindTask,
		Title:       "t",
	})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	_, err = e.services.Item.CreateItem("owner", &model.CreateItemReq{
		WorkspaceId: ws.WorkspaceId,
		Kind:        "note",
		Title:       "t",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// 挂靠其他工作区的轨道被拒绝
	other := e.seedWorkspace("other-owner")
	track := e.seedTrack("other-owner", other.WorkspaceId)
	_, err = e.services.Item.CreateItem("owner", &model.CreateItemReq{
		WorkspaceId: ws.WorkspaceId,
		TrackId:     track.TrackId,
		Kind:        model.ItemKindTask,
		Title:       "t",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

// 查看需要 viewer 权限，删除需要 owner 权限
func TestItemAccessControl(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "editor-user", model.RoleEditor)
	item := e.seedItem("owner", ws.WorkspaceId)

	_, err := e.services.Item.GetItem("stranger", item.ItemId)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	got, err := e.services.Item.GetItem("editor-user", item.ItemId)
	require.NoError(t, err)
	assert.Equal(t, item.ItemId, got.ItemId)

	err = e.services.Item.DeleteItem("editor-user", item.ItemId)
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	require.NoError(t, e.services.Item.DeleteItem("owner", item.ItemId))

	err = e.services.Item.DeleteItem("owner", item.ItemId)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

// last-write-wins：较旧的编辑被丢弃，返回当前生效版本
func TestUpdateItemLastWriteWins(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "e1", model.RoleEditor)
	e.addMember("owner", ws.WorkspaceId, "e2", model.RoleEditor)
	item := e.seedItem("owner", ws.WorkspaceId)

	base := time.Now().Add(time.Minute)

	result, err := e.services.Item.UpdateItem("e1", item.ItemId, &model.UpdateItemReq{
		Title:    strPtr("newer title"),
		EditedAt: base.Add(10 * time.Second),
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, "newer title", result.Item.Title)
	assert.Equal(t, "e1", result.Item.UpdatedBy)

	// e2 的编辑时间更早，写入被丢弃，拿到当前版本用于提示
	result, err = e.services.Item.UpdateItem("e2", item.ItemId, &model.UpdateItemReq{
		Title:    strPtr("older title"),
		EditedAt: base.Add(5 * time.Second),
	})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, "newer title", result.Item.Title)
	assert.Equal(t, "e1", result.Item.UpdatedBy)

	// 更新的编辑正常覆盖
	result, err = e.services.Item.UpdateItem("e2", item.ItemId, &model.UpdateItemReq{
		Body:     strPtr("fresh body"),
		EditedAt: base.Add(20 * time.Second),
	})
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, "fresh body", result.Item.Body)
	assert.Equal(t, "e2", result.Item.UpdatedBy)
}

// 更新参数校验
func TestUpdateItemValidation(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	e.addMember("owner", ws.WorkspaceId, "viewer-user", model.RoleViewer)
	item := e.seedItem("owner", ws.WorkspaceId)

	_, err := e.services.Item.UpdateItem("viewer-user", item.ItemId, &model.UpdateItemReq{
		Title:    strPtr("x"),
		EditedAt: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsAuthorization(err))

	_, err = e.services.Item.UpdateItem("owner", item.ItemId, &model.UpdateItemReq{
		Title: strPtr("x"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = e.services.Item.UpdateItem("owner", item.ItemId, &model.UpdateItemReq{
		EditedAt: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

// 轨道层级约束：track → subtrack → entry
func TestTrackHierarchy(t *testing.T) {
	e := newTestEnv(t)

	ws := e.seedWorkspace("owner")
	track := e.seedTrack("owner", ws.WorkspaceId)

	sub, err := e.services.Track.CreateTrack("owner", &model.CreateTrackReq{
		WorkspaceId: ws.WorkspaceId,
		ParentId:    track.TrackId,
		Kind:        model.TrackKindSubtrack,
		Title:       "sub",
	})
	require.NoError(t, err)

	entry, err := e.services.Track.CreateTrack("owner", &model.CreateTrackReq{
		WorkspaceId: ws.WorkspaceId,
		ParentId:    sub.TrackId,
		Kind:        model.TrackKindEntry,
		Title:       "entry",
	})
	require.NoError(t, err)

	// entry 不能再有子节点
	_, err = e.services.Track.CreateTrack("owner", &model.CreateTrackReq{
		WorkspaceId: ws.WorkspaceId,
		ParentId:    entry.TrackId,
		Kind:        model.TrackKindEntry,
		Title:       "nested",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// 层级跳跃被拒绝
	_, err = e.services.Track.CreateTrack("owner", &model.CreateTrackReq{
		WorkspaceId: ws.WorkspaceId,
		ParentId:    track.TrackId,
		Kind:        model.TrackKindEntry,
		Title:       "skip",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	children, err := e.services.Track.ListChildren(track.TrackId)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, sub.TrackId, children[0].TrackId)
}
