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

// WorkspaceMember 工作区成员，base_role 为成员在工作区内的基础角色
type WorkspaceMember struct {
	BaseModel
	WorkspaceId string `gorm:"column:workspace_id;not null;index:idx_workspace_user,unique" json:"workspaceId"`
	UserId      string `gorm:"column:user_id;not null;index:idx_workspace_user,unique;index:idx_wm_user" json:"userId"`
	BaseRole    string `gorm:"column:base_role;not null;type:varchar(32)" json:"baseRole"` // owner/editor/viewer
}

func (WorkspaceMember) TableName() string {
	return "t_workspace_member"
}

// AddWorkspaceMemberReq request for adding workspace member
type AddWorkspaceMemberReq struct {
	UserId   string `json:"userId"`
	BaseRole string `json:"baseRole"`
}

// UpdateWorkspaceMemberReq request for changing a member's base role
type UpdateWorkspaceMemberReq struct {
	UserId   string `json:"userId"`
	BaseRole string `json:"baseRole"`
}
