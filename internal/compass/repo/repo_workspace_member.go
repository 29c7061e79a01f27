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

type IWorkspaceMemberRepository interface {
	GetMember(workspaceId, userId string) (*model.WorkspaceMember, error)
	ListMembers(workspaceId string) ([]model.WorkspaceMember, error)
	AddMember(member *model.WorkspaceMember) error
	UpdateMemberRole(workspaceId, userId, baseRole string) error
	RemoveMember(workspaceId, userId string) error
}

type WorkspaceMemberRepo struct {
	database.IDatabase
}

func NewWorkspaceMemberRepo(db database.IDatabase) IWorkspaceMemberRepository {
	return &WorkspaceMemberRepo{IDatabase: db}
}

// GetMember 获取工作区成员，未加入返回 gorm.ErrRecordNotFound
func (r *WorkspaceMemberRepo) GetMember(workspaceId, userId string) (*model.WorkspaceMember, error) {
	var member model.WorkspaceMember
	err := r.Database().Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
		First(&member).Error
	return &member, err
}

// ListMembers 列出工作区成员
func (r *WorkspaceMemberRepo) ListMembers(workspaceId string) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	err := r.Database().Where("workspace_id = ?", workspaceId).Find(&members).Error
	return members, err
}

// AddMember 添加工作区成员
func (r *WorkspaceMemberRepo) AddMember(member *model.WorkspaceMember) error {
	return r.Database().Create(member).Error
}

// UpdateMemberRole 更新成员基础角色
func (r *WorkspaceMemberRepo) UpdateMemberRole(workspaceId, userId, baseRole string) error {
	return r.Database().Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
		Update("base_role", baseRole).Error
}

// RemoveMember 移除工作区成员
func (r *WorkspaceMemberRepo) RemoveMember(workspaceId, userId string) error {
	return r.Database().Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
		Delete(&model.WorkspaceMember{}).Error
}
