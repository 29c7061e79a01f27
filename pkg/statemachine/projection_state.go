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

package statemachine

type ProjectionStatus string

const (
	ProjectionPending  ProjectionStatus = "PENDING"
	ProjectionAccepted ProjectionStatus = "ACCEPTED"
	ProjectionDeclined ProjectionStatus = "DECLINED"
	ProjectionRevoked  ProjectionStatus = "REVOKED"
)

// IsActive 判断投影是否对接收方可见
func (ps ProjectionStatus) IsActive() bool {
	return ps == ProjectionPending || ps == ProjectionAccepted
}

// IsClosed 判断是否为关闭状态（可重新邀请）
func (ps ProjectionStatus) IsClosed() bool {
	return ps == ProjectionDeclined || ps == ProjectionRevoked
}

// NewProjectionStateMachine 创建投影状态机
// DECLINED/REVOKED 是终态，只有显式重新邀请可以回到 PENDING
func NewProjectionStateMachine() *StateMachine[ProjectionStatus] {
	sm := NewWithState(ProjectionPending)

	sm.Allow(ProjectionPending, ProjectionAccepted, ProjectionDeclined, ProjectionRevoked).
		Allow(ProjectionAccepted, ProjectionRevoked).
		Allow(ProjectionDeclined, ProjectionPending). // 重新邀请
		Allow(ProjectionRevoked, ProjectionPending)   // 重新邀请

	return sm
}
