package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/features/academics/grades/model"
)

func TestSheetPrefill(t *testing.T) {
	graded, fresh := uuid.New(), uuid.New()
	comment := "Bon travail"
	s := &Sheet{Existing: map[string]model.GradeModel{
		graded.String(): {GradeStudentID: graded, GradeValue: 14.5, GradeComment: &comment},
	}}

	assert.Equal(t, "14.5", s.Value(graded))
	assert.Equal(t, "Bon travail", s.Comment(graded))
	assert.Equal(t, "", s.Value(fresh))
	assert.Equal(t, "", s.Comment(fresh))
}
