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
	"time"

	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/pkg/database"
)

type IEntityGrantRepository interface {
	GetGrant(grantId string) (*model.EntityGrant, error)
	GetActiveGrant(entityType, entityId, subjectType, subjectId string) (*model.EntityGrant, error)
	ListActiveGrantsForEntity(entityType, entityId string) ([]model.EntityGrant, error)
	ListActiveGrantsForSubjects(entityType, entityId string, subjectType string, subjectIds []string) ([]model.EntityGrant, error)
	ListActiveGrantsBySubject(subjectType, subjectId string) ([]model.EntityGrant, error)
	ListActiveGrantsBySubjects(subjectType string, subjectIds []string) ([]model.EntityGrant, error)
	CreateGrant(grant *model.EntityGrant) error
	RevokeGrant(grantId, revokedBy string) (int64, error)
}

type EntityGrantRepo struct {
	database.IDatabase
}

func NewEntityGrantRepo(db database.IDatabase) IEntityGrantRepository {
	return &EntityGrantRepo{IDatabase: db}
}

// GetGrant 按授权 ID 获取记录
func (r *EntityGrantRepo) GetGrant(grantId string) (*model.EntityGrant, error) {
	var grant model.EntityGrant
	err := r.Database().Where("grant_id = ?", grantId).First(&grant).Error
	return &grant, err
}

// GetActiveGrant 获取实体对主体的活跃授权
func (r *EntityGrantRepo) GetActiveGrant(entityType, entityId, subjectType, subjectId string) (*model.EntityGrant, error) {
	var grant model.EntityGrant
	err := r.Database().
		Where("entity_type = ? AND entity_id = ? AND subject_type = ? AND subject_id = ? AND is_active = 1",
			entityType, entityId, subjectType, subjectId).
		First(&grant).Error
	return &grant, err
}

// ListActiveGrantsForEntity 列出实体的所有活跃授权
func (r *EntityGrantRepo) ListActiveGrantsForEntity(entityType, entityId string) ([]model.EntityGrant, error) {
	var grants []model.EntityGrant
	err := r.Database().
		Where("entity_type = ? AND entity_id = ? AND is_active = 1", entityType, entityId).
		Find(&grants).Error
	return grants, err
}

// ListActiveGrantsForSubjects 列出实体对一批主体的活跃授权（解析时批量取组授权）
func (r *EntityGrantRepo) ListActiveGrantsForSubjects(entityType, entityId string, subjectType string, subjectIds []string) ([]model.EntityGrant, error) {
	if len(subjectIds) == 0 {
		return nil, nil
	}
	var grants []model.EntityGrant
	err := r.Database().
		Where("entity_type = ? AND entity_id = ? AND subject_type = ? AND subject_id IN ? AND is_active = 1",
			entityType, entityId, subjectType, subjectIds).
		Find(&grants).Error
	return grants, err
}

// ListActiveGrantsBySubject 列出主体名下的所有活跃授权（"我能访问什么"视角）
func (r *EntityGrantRepo) ListActiveGrantsBySubject(subjectType, subjectId string) ([]model.EntityGrant, error) {
	var grants []model.EntityGrant
	err := r.Database().
		Where("subject_type = ? AND subject_id = ? AND is_active = 1", subjectType, subjectId).
		Find(&grants).Error
	return grants, err
}

// ListActiveGrantsBySubjects 列出一批主体名下的所有活跃授权
func (r *EntityGrantRepo) ListActiveGrantsBySubjects(subjectType string, subjectIds []string) ([]model.EntityGrant, error) {
	if len(subjectIds) == 0 {
		return nil, nil
	}
	var grants []model.EntityGrant
	err := r.Database().
		Where("subject_type = ? AND subject_id IN ? AND is_active = 1", subjectType, subjectIds).
		Find(&grants).Error
	return grants, err
}

// CreateGrant 创建授权，活跃授权重复时返回 gorm.ErrDuplicatedKey
func (r *EntityGrantRepo) CreateGrant(grant *model.EntityGrant) error {
	return r.Database().Create(grant).Error
}

// RevokeGrant 撤销授权，is_active 置 NULL 释放唯一索引
// 返回受影响行数，0 表示授权不存在或已撤销
func (r *EntityGrantRepo) RevokeGrant(grantId, revokedBy string) (int64, error) {
	now := time.Now()
	result := r.Database().Model(&model.EntityGrant{}).
		Where("grant_id = ? AND is_active = 1", grantId).
		Updates(map[string]any{
			"is_active":  nil,
			"revoked_by": revokedBy,
			"revoked_at": &now,
		})
	return result.RowsAffected, result.Error
}
