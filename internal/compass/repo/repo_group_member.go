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
	"gorm.io/gorm"
)

type IGroupMemberRepository interface {
	GetGroupMember(groupId, userId string) (*model.GroupMember, error)
	ListGroupMembers(groupId string) ([]model.GroupMember, error)
	ListUserGroups(workspaceId, userId string) ([]model.GroupMember, error)
	ListAllUserGroups(userId string) ([]model.GroupMember, error)
	AddGroupMember(member *model.GroupMember) error
	RemoveGroupMember(groupId, userId string) error
	RemoveAllInWorkspaceTx(tx *gorm.DB, workspaceId, userId string) error
}

type GroupMemberRepo struct {
	database.IDatabase
}

func NewGroupMemberRepo(db database.IDatabase) IGroupMemberRepository {
	return &GroupMemberRepo{IDatabase: db}
}

// GetGroupMember 获取分组成员
func (r *GroupMemberRepo) GetGroupMember(groupId, userId string) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.Database().Where("group_id = ? AND user_id = ?", groupId, userId).
		First(&member).Error
	return &member, err
}

// ListGroupMembers 列出分组成员
func (r *GroupMemberRepo) ListGroupMembers(groupId string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.Database().Where("group_id = ?", groupId).Find(&members).Error
	return members, err
}

// ListUserGroups 列出用户在工作区内加入的分组
func (r *GroupMemberRepo) ListUserGroups(workspaceId, userId string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.Database().Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
		Find(&members).Error
	return members, err
}

// ListAllUserGroups 列出用户在全部工作区内加入的分组
func (r *GroupMemberRepo) ListAllUserGroups(userId string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.Database().Where("user_id = ?", userId).Find(&members).Error
	return members, err
}

// AddGroupMember 添加分组成员
func (r *GroupMemberRepo) AddGroupMember(member *model.GroupMember) error {
	return r.Database().Create(member).Error
}

// RemoveGroupMember 移除分组成员
func (r *GroupMemberRepo) RemoveGroupMember(groupId, userId string) error {
	return r.Database().Where("group_id = ? AND user_id = ?", groupId, userId).
		Delete(&model.GroupMember{}).Error
}

// RemoveAllInWorkspaceTx 在事务内移除用户在工作区内的所有分组成员关系
// 退出工作区的级联路径，必须与成员移除同事务
func (r *GroupMemberRepo) RemoveAllInWorkspaceTx(tx *gorm.DB, workspaceId, userId string) error {
	return tx.Where("workspace_id = ? AND user_id = ?", workspaceId, userId).
		Delete(&model.GroupMember{}).Error
}
