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

type ICreatorRevocationRepository interface {
	IsRevoked(entityType, entityId, creatorId string) (bool, error)
	CreateRevocation(revocation *model.CreatorRevocation) error
}

type CreatorRevocationRepo struct {
	database.IDatabase
}

func NewCreatorRevocationRepo(db database.IDatabase) ICreatorRevocationRepository {
	return &CreatorRevocationRepo{IDatabase: db}
}

// IsRevoked 判断创建者权利是否已被撤销
func (r *CreatorRevocationRepo) IsRevoked(entityType, entityId, creatorId string) (bool, error) {
	var count int64
	err := r.Database().Model(&model.CreatorRevocation{}).
		Where("entity_type = ? AND entity_id = ? AND creator_id = ?", entityType, entityId, creatorId).
		Count(&count).Error
	return count > 0, err
}

// CreateRevocation 记录撤销，重复撤销撞唯一索引由调用方按幂等处理
func (r *CreatorRevocationRepo) CreateRevocation(revocation *model.CreatorRevocation) error {
	return r.Database().Create(revocation).Error
}
