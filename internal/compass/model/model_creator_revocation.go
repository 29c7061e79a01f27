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

// CreatorRevocation 创建者权利撤销记录
// 创建者默认对其创建的实体持有 editor 等级权利，撤销后永久失效，不可恢复
type CreatorRevocation struct {
	BaseModel
	EntityType string `gorm:"column:entity_type;not null;type:varchar(32);index:idx_creator_rev,unique" json:"entityType"`
	EntityId   string `gorm:"column:entity_id;not null;index:idx_creator_rev,unique" json:"entityId"`
	CreatorId  string `gorm:"column:creator_id;not null;index:idx_creator_rev,unique" json:"creatorId"`
	RevokedBy  string `gorm:"column:revoked_by;not null" json:"revokedBy"`
}

func (CreatorRevocation) TableName() string {
	return "t_creator_revocation"
}
