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

// 可授权实体类型
const (
	EntityTrack = "track" // 轨道（含子轨道与条目的容器层级）
	EntityItem  = "item"  // 可分发条目（任务、日历事件）
)

// EntityGrant 实体授权记录
// is_active 用 NULL 技巧保证唯一性：活跃授权恒为 1，撤销后置 NULL，
// 唯一索引只约束活跃行，同一主体对同一实体最多一条活跃授权，历史行随意
type EntityGrant struct {
	BaseModel
	GrantId     string     `gorm:"column:grant_id;not null;uniqueIndex" json:"grantId"`
	WorkspaceId string     `gorm:"column:workspace_id;not null;index" json:"workspaceId"`
	EntityType  string     `gorm:"column:entity_type;not null;type:varchar(32);index:idx_grant_active,unique" json:"entityType"`
	EntityId    string     `gorm:"column:entity_id;not null;index:idx_grant_active,unique" json:"entityId"`
	SubjectType string     `gorm:"column:subject_type;not null;type:varchar(32);index:idx_grant_active,unique" json:"subjectType"`
	SubjectId   string     `gorm:"column:subject_id;not null;index:idx_grant_active,unique;index:idx_grant_subject" json:"subjectId"`
	Role        string     `gorm:"column:role;not null;type:varchar(32)" json:"role"`
	IsActive    *int8      `gorm:"column:is_active;index:idx_grant_active,unique" json:"isActive"` // 1=active, NULL=revoked
	GrantedBy   string     `gorm:"column:granted_by;not null" json:"grantedBy"`
	RevokedBy   string     `gorm:"column:revoked_by" json:"revokedBy,omitempty"`
	RevokedAt   *time.Time `gorm:"column:revoked_at" json:"revokedAt,omitempty"`
}

func (EntityGrant) TableName() string {
	return "t_entity_grant"
}

// Active 判断授权是否仍然生效
func (g *EntityGrant) Active() bool {
	return g.IsActive != nil && *g.IsActive == 1
}

// ActiveFlag 活跃标记值
func ActiveFlag() *int8 {
	v := int8(1)
	return &v
}

// CreateGrantReq request for creating grant
type CreateGrantReq struct {
	EntityType  string `json:"entityType"`
	EntityId    string `json:"entityId"`
	SubjectType string `json:"subjectType"`
	SubjectId   string `json:"subjectId"`
	Role        string `json:"role"`
}
