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

type IItemRepository interface {
	GetItem(itemId string) (*model.SharedItem, error)
	ListItems(workspaceId string) ([]model.SharedItem, error)
	CreateItem(item *model.SharedItem) error
	UpdateItemLWW(itemId string, editedAt time.Time, editedBy string, updates map[string]any) (int64, error)
	DeleteItem(itemId string) error
}

type ItemRepo struct {
	database.IDatabase
}

func NewItemRepo(db database.IDatabase) IItemRepository {
	return &ItemRepo{IDatabase: db}
}

// GetItem 获取条目
func (r *ItemRepo) GetItem(itemId string) (*model.SharedItem, error) {
	var item model.SharedItem
	err := r.Database().Where("item_id = ?", itemId).First(&item).Error
	return &item, err
}

// ListItems 列出工作区内的条目
func (r *ItemRepo) ListItems(workspaceId string) ([]model.SharedItem, error) {
	var items []model.SharedItem
	err := r.Database().Where("workspace_id = ?", workspaceId).Find(&items).Error
	return items, err
}

// CreateItem 创建条目
func (r *ItemRepo) CreateItem(item *model.SharedItem) error {
	return r.Database().Create(item).Error
}

// UpdateItemLWW 带时间戳仲裁的条件更新
// 只有编辑时刻不早于存量 updated_at 时才落盘，返回受影响行数，0 表示本次写入更旧被丢弃
func (r *ItemRepo) UpdateItemLWW(itemId string, editedAt time.Time, editedBy string, updates map[string]any) (int64, error) {
	updates["updated_by"] = editedBy
	updates["updated_at"] = editedAt
	result := r.Database().Model(&model.SharedItem{}).
		Where("item_id = ? AND updated_at <= ?", itemId, editedAt).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// DeleteItem 删除条目
func (r *ItemRepo) DeleteItem(itemId string) error {
	return r.Database().Where("item_id = ?", itemId).Delete(&model.SharedItem{}).Error
}
