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

import "time"

// 可分发条目类型
const (
	ItemKindTask  = "task"
	ItemKindEvent = "event"
)

// SharedItem 可分发条目（任务、日历事件）
// updated_by/updated_at 承载 last-write-wins 冲突仲裁
type SharedItem struct {
	BaseModel
	ItemId      string     `gorm:"column:item_id;not null;uniqueIndex" json:"itemId"`
	WorkspaceId string     `gorm:"column:workspace_id;not null;index" json:"workspaceId"`
	TrackId     string     `gorm:"column:track_id;index" json:"trackId"` // 可挂靠轨道
	Kind        string     `gorm:"column:kind;not null;type:varchar(32)" json:"kind"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Body        string     `gorm:"column:body;type:text" json:"body"`
	DueAt       *time.Time `gorm:"column:due_at" json:"dueAt,omitempty"`    // task
	StartAt     *time.Time `gorm:"column:start_at" json:"startAt,omitempty"` // event
	EndAt       *time.Time `gorm:"column:end_at" json:"endAt,omitempty"`     // event
	CreatedBy   string     `gorm:"column:created_by;not null;index" json:"createdBy"`
	UpdatedBy   string     `gorm:"column:updated_by;not null" json:"updatedBy"`
}

func (i *SharedItem) TableName() string {
	return "t_shared_item"
}

// CreateItemReq request for creating shared item
type CreateItemReq struct {
	WorkspaceId string     `json:"workspaceId"`
	TrackId     string     `json:"trackId"`
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	StartAt     *time.Time `json:"startAt,omitempty"`
	EndAt       *time.Time `json:"endAt,omitempty"`
}

// UpdateItemReq request for updating shared item
// EditedAt 为编辑发起时刻，last-write-wins 按此仲裁
type UpdateItemReq struct {
	Title    *string    `json:"title,omitempty"`
	Body     *string    `json:"body,omitempty"`
	DueAt    *time.Time `json:"dueAt,omitempty"`
	StartAt  *time.Time `json:"startAt,omitempty"`
	EndAt    *time.Time `json:"endAt,omitempty"`
	EditedAt time.Time  `json:"editedAt"`
}

// UpdateItemResult 更新结果
// Applied 为 false 表示本次写入因时间戳更旧被丢弃，Item 为当前生效版本
type UpdateItemResult struct {
	Applied bool        `json:"applied"`
	Item    *SharedItem `json:"item"`
}
