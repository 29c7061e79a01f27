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

import "fmt"

// 授权主体类型
const (
	SubjectUser  = "user"
	SubjectGroup = "group"
	SubjectTeam  = "team" // 预留，当前拒绝
)

// Subject 授权主体
type Subject struct {
	Type string `json:"type"`
	Id   string `json:"id"`
}

func (s Subject) String() string {
	return s.Type + ":" + s.Id
}

// ParseSubject 校验主体，team 类型预留未开放
func ParseSubject(subjectType, subjectId string) (Subject, error) {
	if subjectId == "" {
		return Subject{}, fmt.Errorf("subject id is empty")
	}
	switch subjectType {
	case SubjectUser, SubjectGroup:
		return Subject{Type: subjectType, Id: subjectId}, nil
	case SubjectTeam:
		return Subject{}, fmt.Errorf("subject type %q is reserved and not yet supported", subjectType)
	default:
		return Subject{}, fmt.Errorf("unknown subject type %q", subjectType)
	}
}
