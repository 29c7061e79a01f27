package service

import (
	"errors"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/id"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/15
 * @file: service_track.go
 * @description: 轨道服务
 */

// TrackService 轨道服务，track/subtrack/entry 三层树
type TrackService struct {
	ctx        *ctx.Context
	repo       *repo.Repositories
	permission *PermissionService
}

// NewTrackService 创建轨道服务实例
func NewTrackService(c *ctx.Context, repos *repo.Repositories, permission *PermissionService) *TrackService {
	return &TrackService{
		ctx:        c,
		repo:       repos,
		permission: permission,
	}
}

// 父子层级约束
var trackChildKind = map[string]string{
	model.TrackKindTrack:    model.TrackKindSubtrack,
	model.TrackKindSubtrack: model.TrackKindEntry,
}

// CreateTrack 创建轨道节点
// 顶层 track 需要工作区 editor 基础角色，子节点需要父轨道 editor 权限
func (ts *TrackService) CreateTrack(actorId string, req *model.CreateTrackReq) (*model.Track, error) {
	if req.Title == "" {
		return nil, errs.Validation("track title is empty")
	}

	if req.ParentId == "" {
		if req.Kind != model.TrackKindTrack {
			return nil, errs.Validation("top level node must be kind %q", model.TrackKindTrack)
		}
		member, err := ts.repo.WorkspaceMember.GetMember(req.WorkspaceId, actorId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Authorization("user %s is not a member of workspace %s", actorId, req.WorkspaceId)
			}
			return nil, errs.Internal(err, "load workspace member")
		}
		if model.RoleRank(member.BaseRole) < model.RoleRank(model.RoleEditor) {
			return nil, errs.Authorization("user %s requires %s in workspace %s", actorId, model.RoleEditor, req.WorkspaceId)
		}
	} else {
		parent, err := ts.GetTrack(req.ParentId)
		if err != nil {
			return nil, err
		}
		if trackChildKind[parent.Kind] != req.Kind {
			return nil, errs.Validation("node of kind %q cannot contain %q", parent.Kind, req.Kind)
		}
		if parent.WorkspaceId != req.WorkspaceId {
			return nil, errs.Validation("parent track belongs to another workspace")
		}
		if err := ts.permission.Require(model.EntityTrack, req.ParentId, actorId, model.RoleEditor); err != nil {
			return nil, err
		}
	}

	track := &model.Track{
		TrackId:     id.GetUUID(),
		WorkspaceId: req.WorkspaceId,
		ParentId:    req.ParentId,
		Kind:        req.Kind,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   actorId,
	}
	if err := ts.repo.Track.CreateTrack(track); err != nil {
		return nil, errs.Internal(err, "create track")
	}
	return track, nil
}

// GetTrack 获取轨道
func (ts *TrackService) GetTrack(trackId string) (*model.Track, error) {
	track, err := ts.repo.Track.GetTrack(trackId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("track %s not found", trackId)
		}
		return nil, errs.Internal(err, "load track")
	}
	return track, nil
}

// ListTracks 列出工作区的顶层轨道
func (ts *TrackService) ListTracks(workspaceId string) ([]model.Track, error) {
	tracks, err := ts.repo.Track.ListTracks(workspaceId)
	if err != nil {
		return nil, errs.Internal(err, "list tracks")
	}
	return tracks, nil
}

// ListChildren 列出轨道的直接子节点
func (ts *TrackService) ListChildren(parentId string) ([]model.Track, error) {
	tracks, err := ts.repo.Track.ListChildren(parentId)
	if err != nil {
		return nil, errs.Internal(err, "list track children")
	}
	return tracks, nil
}

// DeleteTrack 删除轨道，需要 owner 权限
func (ts *TrackService) DeleteTrack(actorId, trackId string) error {
	if _, err := ts.GetTrack(trackId); err != nil {
		return err
	}
	if err := ts.permission.Require(model.EntityTrack, trackId, actorId, model.RoleOwner); err != nil {
		return err
	}
	if err := ts.repo.Track.DeleteTrack(trackId); err != nil {
		return errs.Internal(err, "delete track")
	}
	return nil
}
