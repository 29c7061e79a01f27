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

// 工作区角色，固定三级，不支持自定义
const (
	RoleOwner  = "owner"  // 完全控制，可授权
	RoleEditor = "editor" // 可编辑内容
	RoleViewer = "viewer" // 只读
)

// roleRank 角色强度，越大越强
var roleRank = map[string]int{
	RoleViewer: 1,
	RoleEditor: 2,
	RoleOwner:  3,
}

// IsValidRole 判断角色是否合法
func IsValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// RoleRank 返回角色强度，未知角色为 0
func RoleRank(role string) int {
	return roleRank[role]
}

// MaxRole 返回两个角色中较强的一个，空串视为无权限
func MaxRole(a, b string) string {
	if roleRank[a] >= roleRank[b] {
		return a
	}
	return b
}

// Permission 解析结果，role 为空表示无权限
type Permission struct {
	Role      string `json:"role"`
	CanView   bool   `json:"canView"`
	CanEdit   bool   `json:"canEdit"`
	CanManage bool   `json:"canManage"`
}

// NoAccess 无权限结果
var NoAccess = Permission{}

// 角色到能力的固定映射
var rolePermissions = map[string]Permission{
	RoleViewer: {Role: RoleViewer, CanView: true},
	RoleEditor: {Role: RoleEditor, CanView: true, CanEdit: true},
	RoleOwner:  {Role: RoleOwner, CanView: true, CanEdit: true, CanManage: true},
}

// PermissionOf 角色对应的能力集，未知角色返回 NoAccess
func PermissionOf(role string) Permission {
	if p, ok := rolePermissions[role]; ok {
		return p
	}
	return NoAccess
}
