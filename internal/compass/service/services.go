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

package service

import (
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/event"
)

// Services 统一管理所有 service
type Services struct {
	Permission   *PermissionService
	Workspace    *WorkspaceService
	Group        *GroupService
	Grant        *GrantService
	CreatorRight *CreatorRightService
	Track        *TrackService
	Item         *ItemService
	Distribution *DistributionService
	Projection   *ProjectionService
	Audit        *AuditService
}

// NewServices 初始化所有 service，审计订阅挂到事件总线
func NewServices(c *ctx.Context, repos *repo.Repositories, bus *event.Bus) *Services {
	permission := NewPermissionService(c, repos)
	audit := NewAuditService(c, repos, bus)

	return &Services{
		Permission:   permission,
		Workspace:    NewWorkspaceService(c, repos, bus),
		Group:        NewGroupService(c, repos, bus),
		Grant:        NewGrantService(c, repos, permission, bus),
		CreatorRight: NewCreatorRightService(c, repos, permission, bus),
		Track:        NewTrackService(c, repos, permission),
		Item:         NewItemService(c, repos, permission),
		Distribution: NewDistributionService(c, repos, permission, bus),
		Projection:   NewProjectionService(c, repos, permission, bus),
		Audit:        audit,
	}
}
