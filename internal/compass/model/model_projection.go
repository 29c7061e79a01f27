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

import (
	"time"

	"github.com/go-compass/compass/pkg/statemachine"
)

// Projection 条目到接收者的投影
// (source_item_id, target_subject_id) 唯一，一对主体终生一行，状态机管生命周期；
// 并发分发时后到者撞唯一索引，按 skipped 处理
type Projection struct {
	BaseModel
	ProjectionId    string     `gorm:"column:projection_id;not null;uniqueIndex" json:"projectionId"`
	SourceItemId    string     `gorm:"column:source_item_id;not null;index:idx_proj_item_subject,unique" json:"sourceItemId"`
	TargetSubjectId string     `gorm:"column:target_subject_id;not null;index:idx_proj_item_subject,unique;index:idx_proj_subject" json:"targetSubjectId"`
	WorkspaceId     string     `gorm:"column:workspace_id;not null;index" json:"workspaceId"`
	SourceGroupId   string     `gorm:"column:source_group_id" json:"sourceGroupId,omitempty"` // 经组分发时记录来源组
	Status          string     `gorm:"column:status;not null;type:varchar(32);index" json:"status"`
	StatusChangedAt *time.Time `gorm:"column:status_changed_at" json:"statusChangedAt,omitempty"`
	CanEdit         bool       `gorm:"column:can_edit;not null;default:false" json:"canEdit"`
	CanComplete     bool       `gorm:"column:can_complete;not null;default:false" json:"canComplete"`
	Completed       bool       `gorm:"column:completed;not null;default:false" json:"completed"` // 接收者各自的完成状态，不回写源条目
	DistributedBy   string     `gorm:"column:distributed_by;not null" json:"distributedBy"`
	RespondedAt     *time.Time `gorm:"column:responded_at" json:"respondedAt,omitempty"`
	RevokedBy       string     `gorm:"column:revoked_by" json:"revokedBy,omitempty"`
	RevokedAt       *time.Time `gorm:"column:revoked_at" json:"revokedAt,omitempty"`
}

func (p *Projection) TableName() string {
	return "t_projection"
}

// ProjStatus 返回状态机类型的状态
func (p *Projection) ProjStatus() statemachine.ProjectionStatus {
	return statemachine.ProjectionStatus(p.Status)
}

// 分发结果
const (
	OutcomeCreated = "created" // 新建投影
	OutcomeSkipped = "skipped" // 已存在活跃或已响应的投影
	OutcomeInvalid = "invalid" // 主体不再具备接收资格
)

// DistributeReq request for distributing an item
// CanEdit/CanComplete 是授予接收者的能力，受分发者自身权限封顶
type DistributeReq struct {
	SubjectType string `json:"subjectType"` // user/group
	SubjectId   string `json:"subjectId"`
	CanEdit     bool   `json:"canEdit"`
	CanComplete bool   `json:"canComplete"`
}

// SetCompletionReq request for marking per-viewer completion
type SetCompletionReq struct {
	Completed bool `json:"completed"`
}

// DistributeOutcome 单个接收者的分发结果
type DistributeOutcome struct {
	UserId       string `json:"userId"`
	Outcome      string `json:"outcome"`
	ProjectionId string `json:"projectionId,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// ProjectionView 接收方视角的投影，权限字段按查看者即时解析
type ProjectionView struct {
	Projection Projection  `json:"projection"`
	Item       *SharedItem `json:"item,omitempty"` // pending 阶段不暴露内容
	Permission Permission  `json:"permission"`
}
