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

// AuditEvent 审计事件，只增不改
type AuditEvent struct {
	BaseModel
	EventId string `gorm:"column:event_id;not null;uniqueIndex" json:"eventId"`
	Action  string `gorm:"column:action;not null;type:varchar(64);index" json:"action"`
	ActorId string `gorm:"column:actor_id;not null;index" json:"actorId"`
	Payload string `gorm:"column:payload;type:text" json:"payload"` // json
}

func (AuditEvent) TableName() string {
	return "t_audit_event"
}

// QueryAuditReq request for querying audit events
type QueryAuditReq struct {
	Action   string `json:"action"`
	ActorId  string `json:"actorId"`
	PageNum  int    `json:"pageNum"`
	PageSize int    `json:"pageSize"`
}
