package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/academics/attendance/dto"
	"schoolku_backend/internals/features/academics/attendance/model"
	helper "schoolku_backend/internals/helpers"
)

func TestSheetDefaultsToPresent(t *testing.T) {
	late, fresh := uuid.New(), uuid.New()
	s := &Sheet{Existing: map[string]model.AttendanceModel{
		late.String(): {AttendanceStudentID: late, AttendanceStatus: constants.AttendanceLate},
	}}

	assert.Equal(t, constants.AttendanceLate, s.Status(late))
	assert.Equal(t, constants.AttendancePresent, s.Status(fresh))
	assert.Empty(t, s.Comment(late))
}

func TestEntryRows(t *testing.T) {
	a := dto.StudentLabel{ID: uuid.New(), Name: "Alain"}
	b := dto.StudentLabel{ID: uuid.New(), Name: "Béatrice"}
	c := dto.StudentLabel{ID: uuid.New(), Name: "Claire"}
	labels := []dto.StudentLabel{a, b, c}
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	subject := uuid.New()

	t.Run("all valid rows replace the whole class", func(t *testing.T) {
		form := map[string]string{dto.StatusKey(a.ID): constants.AttendanceAbsent}
		rows, err := entryRows(labels, func(k string) string { return form[k] }, &subject, nil, date)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, constants.AttendanceAbsent, rows[0].AttendanceStatus)
		assert.Equal(t, constants.AttendancePresent, rows[1].AttendanceStatus)
		assert.Equal(t, &subject, rows[2].AttendanceSubjectID)
		assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, rowStudentIDs(rows))
	})

	t.Run("unknown status rejects the whole entry", func(t *testing.T) {
		form := map[string]string{
			dto.StatusKey(a.ID): constants.AttendanceAbsent,
			dto.StatusKey(c.ID): "vacances",
		}
		rows, err := entryRows(labels, func(k string) string { return form[k] }, &subject, nil, date)
		assert.Nil(t, rows)
		assert.Empty(t, rowStudentIDs(rows))

		ve, ok := helper.IsValidationError(err)
		require.True(t, ok)
		require.Len(t, ve.Fields, 1)
		assert.Contains(t, helper.Messages(err), "Claire")
		assert.Contains(t, helper.Messages(err), "vacances")
	})
}
