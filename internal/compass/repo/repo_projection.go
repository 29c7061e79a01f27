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

type IProjectionRepository interface {
	GetProjection(projectionId string) (*model.Projection, error)
	GetByItemAndSubject(sourceItemId, targetSubjectId string) (*model.Projection, error)
	ListByItem(sourceItemId string) ([]model.Projection, error)
	ListBySubject(targetSubjectId string, statuses []string) ([]model.Projection, error)
	CreateProjection(projection *model.Projection) error
	TransitionStatus(projectionId, from, to string, updates map[string]any) (int64, error)
	SetCompletion(projectionId string, completed bool) error
}

type ProjectionRepo struct {
	database.IDatabase
}

func NewProjectionRepo(db database.IDatabase) IProjectionRepository {
	return &ProjectionRepo{IDatabase: db}
}

// GetProjection 获取投影
func (r *ProjectionRepo) GetProjection(projectionId string) (*model.Projection, error) {
	var projection model.Projection
	err := r.Database().Where("projection_id = ?", projectionId).First(&projection).Error
	return &projection, err
}

// GetByItemAndSubject 按条目与接收者获取投影
func (r *ProjectionRepo) GetByItemAndSubject(sourceItemId, targetSubjectId string) (*model.Projection, error) {
	var projection model.Projection
	err := r.Database().
		Where("source_item_id = ? AND target_subject_id = ?", sourceItemId, targetSubjectId).
		First(&projection).Error
	return &projection, err
}

// ListByItem 列出条目的所有投影
func (r *ProjectionRepo) ListByItem(sourceItemId string) ([]model.Projection, error) {
	var projections []model.Projection
	err := r.Database().Where("source_item_id = ?", sourceItemId).Find(&projections).Error
	return projections, err
}

// ListBySubject 列出接收者的投影，statuses 为空则不过滤
func (r *ProjectionRepo) ListBySubject(targetSubjectId string, statuses []string) ([]model.Projection, error) {
	var projections []model.Projection
	tx := r.Database().Where("target_subject_id = ?", targetSubjectId)
	if len(statuses) > 0 {
		tx = tx.Where("status IN ?", statuses)
	}
	err := tx.Find(&projections).Error
	return projections, err
}

// CreateProjection 创建投影，并发分发的后到者返回 gorm.ErrDuplicatedKey
func (r *ProjectionRepo) CreateProjection(projection *model.Projection) error {
	return r.Database().Create(projection).Error
}

// SetCompletion 更新接收者自己的完成标记
func (r *ProjectionRepo) SetCompletion(projectionId string, completed bool) error {
	return r.Database().Model(&model.Projection{}).
		Where("projection_id = ?", projectionId).
		Update("completed", completed).Error
}

// TransitionStatus 乐观状态迁移，WHERE 带上 from 状态防并发双迁
// 返回受影响行数，0 表示状态已被并发修改
func (r *ProjectionRepo) TransitionStatus(projectionId, from, to string, updates map[string]any) (int64, error) {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["status"] = to
	result := r.Database().Model(&model.Projection{}).
		Where("projection_id = ? AND status = ?", projectionId, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}
