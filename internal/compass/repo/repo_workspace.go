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

type IWorkspaceRepository interface {
	GetWorkspace(workspaceId string) (*model.Workspace, error)
	ListWorkspaces(userId string) ([]model.Workspace, error)
	CreateWorkspace(workspace *model.Workspace) error
	UpdateWorkspace(workspaceId string, updates map[string]any) error
	DeleteWorkspace(workspaceId string) error
}

type WorkspaceRepo struct {
	database.IDatabase
}

func NewWorkspaceRepo(db database.IDatabase) IWorkspaceRepository {
	return &WorkspaceRepo{IDatabase: db}
}

// GetWorkspace 获取工作区
func (r *WorkspaceRepo) GetWorkspace(workspaceId string) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.Database().Where("workspace_id = ?", workspaceId).First(&workspace).Error
	return &workspace, err
}

// ListWorkspaces 列出用户所在的工作区
func (r *WorkspaceRepo) ListWorkspaces(userId string) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.Database().
		Joins("JOIN t_workspace_member ON t_workspace_member.workspace_id = t_workspace.workspace_id").
		Where("t_workspace_member.user_id = ?", userId).
		Find(&workspaces).Error
	return workspaces, err
}

// CreateWorkspace 创建工作区
func (r *WorkspaceRepo) CreateWorkspace(workspace *model.Workspace) error {
	return r.Database().Create(workspace).Error
}

// UpdateWorkspace 更新工作区
func (r *WorkspaceRepo) UpdateWorkspace(workspaceId string, updates map[string]any) error {
	return r.Database().Model(&model.Workspace{}).
		Where("workspace_id = ?", workspaceId).
		Updates(updates).Error
}

// DeleteWorkspace 删除工作区
func (r *WorkspaceRepo) DeleteWorkspace(workspaceId string) error {
	return r.Database().Where("workspace_id = ?", workspaceId).
		Delete(&model.Workspace{}).Error
}
