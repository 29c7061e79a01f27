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

type IGroupRepository interface {
	GetGroup(groupId string) (*model.Group, error)
	ListGroups(workspaceId string) ([]model.Group, error)
	CreateGroup(group *model.Group) error
	DeleteGroup(groupId string) error
}

type GroupRepo struct {
	database.IDatabase
}

func NewGroupRepo(db database.IDatabase) IGroupRepository {
	return &GroupRepo{IDatabase: db}
}

// GetGroup 获取分组
func (r *GroupRepo) GetGroup(groupId string) (*model.Group, error) {
	var group model.Group
	err := r.Database().Where("group_id = ?", groupId).First(&group).Error
	return &group, err
}

// ListGroups 列出工作区内的分组
func (r *GroupRepo) ListGroups(workspaceId string) ([]model.Group, error) {
	var groups []model.Group
	err := r.Database().Where("workspace_id = ?", workspaceId).Find(&groups).Error
	return groups, err
}

// CreateGroup 创建分组
func (r *GroupRepo) CreateGroup(group *model.Group) error {
	return r.Database().Create(group).Error
}

// DeleteGroup 删除分组
func (r *GroupRepo) DeleteGroup(groupId string) error {
	return r.Database().Where("group_id = ?", groupId).Delete(&model.Group{}).Error
}
