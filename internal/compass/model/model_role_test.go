package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxRole(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"owner beats editor", RoleOwner, RoleEditor, RoleOwner},
		{"editor beats viewer", RoleViewer, RoleEditor, RoleEditor},
		{"same role", RoleViewer, RoleViewer, RoleViewer},
		{"empty loses", "", RoleViewer, RoleViewer},
		{"both empty", "", "", ""},
		{"unknown loses", "admin", RoleViewer, RoleViewer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxRole(tt.a, tt.b))
		})
	}
}

func TestPermissionOf(t *testing.T) {
	owner := PermissionOf(RoleOwner)
	assert.True(t, owner.CanView)
	assert.True(t, owner.CanEdit)
	assert.True(t, owner.CanManage)

	editor := PermissionOf(RoleEditor)
	assert.True(t, editor.CanView)
	assert.True(t, editor.CanEdit)
	assert.False(t, editor.CanManage)

	viewer := PermissionOf(RoleViewer)
	assert.True(t, viewer.CanView)
	assert.False(t, viewer.CanEdit)

	assert.Equal(t, NoAccess, PermissionOf(""))
	assert.Equal(t, NoAccess, PermissionOf("superuser"))
}

func TestParseSubject(t *testing.T) {
	s, err := ParseSubject(SubjectUser, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "user:u1", s.String())

	_, err = ParseSubject(SubjectTeam, "t1")
	assert.Error(t, err)

	_, err = ParseSubject("robot", "r1")
	assert.Error(t, err)

	_, err = ParseSubject(SubjectUser, "")
	assert.Error(t, err)
}
