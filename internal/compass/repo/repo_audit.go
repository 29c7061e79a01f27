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

type IAuditRepository interface {
	CreateEvent(event *model.AuditEvent) error
	QueryEvents(req *model.QueryAuditReq) ([]model.AuditEvent, int64, error)
}

type AuditRepo struct {
	database.IDatabase
}

func NewAuditRepo(db database.IDatabase) IAuditRepository {
	return &AuditRepo{IDatabase: db}
}

// CreateEvent 写入审计事件
func (r *AuditRepo) CreateEvent(event *model.AuditEvent) error {
	return r.Database().Create(event).Error
}

// QueryEvents 分页查询审计事件，按时间倒序
func (r *AuditRepo) QueryEvents(req *model.QueryAuditReq) ([]model.AuditEvent, int64, error) {
	tx := r.Database().Model(&model.AuditEvent{})
	if req.Action != "" {
		tx = tx.Where("action = ?", req.Action)
	}
	if req.ActorId != "" {
		tx = tx.Where("actor_id = ?", req.ActorId)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageNum := req.PageNum
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	var events []model.AuditEvent
	err := tx.Order("id DESC").
		Offset((pageNum - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	return events, total, err
}
