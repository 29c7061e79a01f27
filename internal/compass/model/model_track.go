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

// 轨道类型
const (
	TrackKindTrack    = "track"    // 顶层轨道
	TrackKindSubtrack = "subtrack" // 子轨道
	TrackKindEntry    = "entry"    // 路线图条目
)

// Track 结构化实体，track/subtrack/entry 三层树
type Track struct {
	BaseModel
	TrackId     string `gorm:"column:track_id;not null;uniqueIndex" json:"trackId"`
	WorkspaceId string `gorm:"column:workspace_id;not null;index" json:"workspaceId"`
	ParentId    string `gorm:"column:parent_id;index" json:"parentId"` // 顶层为空
	Kind        string `gorm:"column:kind;not null;type:varchar(32)" json:"kind"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description" json:"description"`
	CreatedBy   string `gorm:"column:created_by;not null;index" json:"createdBy"`
}

func (t *Track) TableName() string {
	return "t_track"
}

// CreateTrackReq request for creating track
type CreateTrackReq struct {
	WorkspaceId string `json:"workspaceId"`
	ParentId    string `json:"parentId"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
