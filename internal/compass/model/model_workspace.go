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

package model

// Workspace 工作区，权限与分组的边界
type Workspace struct {
	BaseModel
	WorkspaceId string `gorm:"column:workspace_id;not null;uniqueIndex" json:"workspaceId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	OwnerId     string `gorm:"column:owner_id;not null;index" json:"ownerId"`
}

func (w *Workspace) TableName() string {
	return "t_workspace"
}

// CreateWorkspaceReq request for creating workspace
type CreateWorkspaceReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateWorkspaceReq request for updating workspace
type UpdateWorkspaceReq struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
