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

// GroupMember 分组成员
// workspace_id 冗余自 t_group，退出工作区级联移除时按此列批量定位
type GroupMember struct {
	BaseModel
	GroupId     string `gorm:"column:group_id;not null;index:idx_group_user,unique" json:"groupId"`
	UserId      string `gorm:"column:user_id;not null;index:idx_group_user,unique;index:idx_gm_user" json:"userId"`
	WorkspaceId string `gorm:"column:workspace_id;not null;index:idx_gm_workspace_user" json:"workspaceId"`
	AddedBy     string `gorm:"column:added_by;not null" json:"addedBy"`
}

func (GroupMember) TableName() string {
	return "t_group_member"
}

// AddGroupMemberReq request for adding group member
type AddGroupMemberReq struct {
	UserId string `json:"userId"`
}
