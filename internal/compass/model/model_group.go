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

// Group 工作区内的用户分组，授权与分发的目标
type Group struct {
	BaseModel
	GroupId     string `gorm:"column:group_id;not null;uniqueIndex" json:"groupId"`
	WorkspaceId string `gorm:"column:workspace_id;not null;index" json:"workspaceId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	CreatedBy   string `gorm:"column:created_by;not null" json:"createdBy"`
}

func (g *Group) TableName() string {
	return "t_group"
}

// CreateGroupReq request for creating group
type CreateGroupReq struct {
	WorkspaceId string `json:"workspaceId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
