package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/students/model"
)

func TestCanView(t *testing.T) {
	parent := uuid.New()
	other := uuid.New()
	child := &model.StudentModel{StudentID: uuid.New(), StudentParentID: &parent}
	orphan := &model.StudentModel{StudentID: uuid.New()}

	tests := []struct {
		name string
		role string
		user *uuid.UUID
		st   *model.StudentModel
		want bool
	}{
		{"admin", constants.RoleAdmin, &other, child, true},
		{"directeur", constants.RoleDirector, &other, orphan, true},
		{"professeur", constants.RoleTeacher, &other, child, true},
		{"own child", constants.RoleParent, &parent, child, true},
		{"other child", constants.RoleParent, &other, child, false},
		{"no parent link", constants.RoleParent, &parent, orphan, false},
		{"guest", "", nil, child, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.role, tt.user, tt.st))
		})
	}
}
