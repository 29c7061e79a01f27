package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/database"
	"github.com/go-compass/compass/pkg/event"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// testEnv 基于内存 sqlite 的服务测试环境
type testEnv struct {
	t        *testing.T
	ctx      *ctx.Context
	repos    *repo.Repositories
	services *Services
	bus      *event.Bus
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 单连接，避免每个连接各开一个内存库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.Group{},
		&model.GroupMember{},
		&model.EntityGrant{},
		&model.CreatorRevocation{},
		&model.Track{},
		&model.SharedItem{},
		&model.Projection{},
		&model.AuditEvent{},
	))

	c := ctx.NewContext(context.Background(), db, nil, nil)
	repos := repo.NewRepositories(database.NewGormDB(db))
	bus := event.NewBus()
	services := NewServices(c, repos, bus)

	return &testEnv{
		t:        t,
		ctx:      c,
		repos:    repos,
		services: services,
		bus:      bus,
	}
}

// seedWorkspace 创建工作区，owner 自动成为 owner 成员
func (e *testEnv) seedWorkspace(owner string) *model.Workspace {
	e.t.Helper()
	workspace, err := e.services.Workspace.CreateWorkspace(owner, &model.CreateWorkspaceReq{Name: "test workspace"})
	require.NoError(e.t, err)
	return workspace
}

// addMember owner 将用户加入工作区
func (e *testEnv) addMember(owner, workspaceId, userId, baseRole string) {
	e.t.Helper()
	err := e.services.Workspace.AddMember(owner, workspaceId, &model.AddWorkspaceMemberReq{
		UserId:   userId,
		BaseRole: baseRole,
	})
	require.NoError(e.t, err)
}

// seedGroup 创建分组并加入成员
func (e *testEnv) seedGroup(owner, workspaceId string, members ...string) *model.Group {
	e.t.Helper()
	group, err := e.services.Group.CreateGroup(owner, &model.CreateGroupReq{
		WorkspaceId: workspaceId,
		Name:        "test group",
	})
	require.NoError(e.t, err)
	for _, m := range members {
		require.NoError(e.t, e.services.Group.AddMember(owner, group.GroupId, &model.AddGroupMemberReq{UserId: m}))
	}
	return group
}

// seedItem 创建任务条目
func (e *testEnv) seedItem(creator, workspaceId string) *model.SharedItem {
	e.t.Helper()
	item, err := e.services.Item.CreateItem(creator, &model.CreateItemReq{
		WorkspaceId: workspaceId,
		Kind:        model.ItemKindTask,
		Title:       "test task",
		Body:        "body",
	})
	require.NoError(e.t, err)
	return item
}

// seedTrack 创建顶层轨道
func (e *testEnv) seedTrack(creator, workspaceId string) *model.Track {
	e.t.Helper()
	track, err := e.services.Track.CreateTrack(creator, &model.CreateTrackReq{
		WorkspaceId: workspaceId,
		Kind:        model.TrackKindTrack,
		Title:       "test track",
	})
	require.NoError(e.t, err)
	return track
}

// grantTo 创建授权
func (e *testEnv) grantTo(actor, entityType, entityId, subjectType, subjectId, role string) *model.EntityGrant {
	e.t.Helper()
	grant, err := e.services.Grant.CreateGrant(actor, &model.CreateGrantReq{
		EntityType:  entityType,
		EntityId:    entityId,
		SubjectType: subjectType,
		SubjectId:   subjectId,
		Role:        role,
	})
	require.NoError(e.t, err)
	return grant
}

// resolveUser 解析用户权限
func (e *testEnv) resolveUser(entityType, entityId, userId string) model.Permission {
	e.t.Helper()
	perm, err := e.services.Permission.Resolve(entityType, entityId,
		model.Subject{Type: model.SubjectUser, Id: userId})
	require.NoError(e.t, err)
	return perm
}

// waitAudit 留给异步落盘的余量（当前实现同步，保留语义）
func (e *testEnv) waitAudit() {
	time.Sleep(time.Millisecond)
}
