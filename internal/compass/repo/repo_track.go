// Copyright 2025 Compass Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repo

import (
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/database"
)

type ITrackRepository interface {
	GetTrack(trackId string) (*model.Track, error)
	ListTracks(workspaceId string) ([]model.Track, error)
	ListChildren(parentId string) ([]model.Track, error)
	CreateTrack(track *model.Track) error
	DeleteTrack(trackId string) error
}

type TrackRepo struct {
	database.IDatabase
}

func NewTrackRepo(db database.IDatabase) ITrackRepository {
	return &TrackRepo{IDatabase: db}
}

// GetTrack 获取轨道
func (r *TrackRepo) GetTrack(trackId string) (*model.Track, error) {
	var track model.Track
	err := r.Database().Where("track_id = ?", trackId).First(&track).Error
	return &track, err
}

// ListTracks 列出工作区内的顶层轨道
func (r *TrackRepo) ListTracks(workspaceId string) ([]model.Track, error) {
	var tracks []model.Track
	err := r.Database().Where("workspace_id = ? AND parent_id = ''", workspaceId).
		Find(&tracks).Error
	return tracks, err
}

// ListChildren 列出轨道的直接子节点
func (r *TrackRepo) ListChildren(parentId string) ([]model.Track, error) {
	var tracks []model.Track
	err := r.Database().Where("parent_id = ?", parentId).Find(&tracks).Error
	return tracks, err
}

// CreateTrack 创建轨道
func (r *TrackRepo) CreateTrack(track *model.Track) error {
	return r.Database().Create(track).Error
}

// DeleteTrack 删除轨道
func (r *TrackRepo) DeleteTrack(trackId string) error {
	return r.Database().Where("track_id = ?", trackId).Delete(&model.Track{}).Error
}
