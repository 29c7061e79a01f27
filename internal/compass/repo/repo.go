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
	"github.com/go-compass/compass/pkg/database"
	"gorm.io/gorm"
)

// Repositories 统一管理所有 repository
type Repositories struct {
	Workspace         IWorkspaceRepository
	WorkspaceMember   IWorkspaceMemberRepository
	Group             IGroupRepository
	GroupMember       IGroupMemberRepository
	EntityGrant       IEntityGrantRepository
	CreatorRevocation ICreatorRevocationRepository
	Track             ITrackRepository
	Item              IItemRepository
	Projection        IProjectionRepository
	Audit             IAuditRepository
}

// NewRepositories 初始化所有 repository
func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Workspace:         NewWorkspaceRepo(db),
		WorkspaceMember:   NewWorkspaceMemberRepo(db),
		Group:             NewGroupRepo(db),
		GroupMember:       NewGroupMemberRepo(db),
		EntityGrant:       NewEntityGrantRepo(db),
		CreatorRevocation: NewCreatorRevocationRepo(db),
		Track:             NewTrackRepo(db),
		Item:              NewItemRepo(db),
		Projection:        NewProjectionRepo(db),
		Audit:             NewAuditRepo(db),
	}
}

// GetDB 返回数据库实例（供事务使用）
func (r *Repositories) GetDB() *gorm.DB {
	return r.Workspace.(*WorkspaceRepo).Database()
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
