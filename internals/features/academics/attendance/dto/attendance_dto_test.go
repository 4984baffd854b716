package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/constants"
)

func TestParseEntries(t *testing.T) {
	a := StudentLabel{ID: uuid.New(), Name: "A"}
	b := StudentLabel{ID: uuid.New(), Name: "B"}
	c := StudentLabel{ID: uuid.New(), Name: "C"}
	form := map[string]string{
		StatusKey(a.ID):  "absent",
		CommentKey(a.ID): "malade",
		StatusKey(c.ID):  "vacances",
	}
	entries, errs := ParseEntries([]StudentLabel{a, b, c}, func(k string) string { return form[k] })

	require.Len(t, entries, 2)
	assert.Equal(t, constants.AttendanceAbsent, entries[0].Status)
	require.NotNil(t, entries[0].Comment)
	assert.Equal(t, "malade", *entries[0].Comment)
	assert.Equal(t, constants.AttendancePresent, entries[1].Status)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "vacances")
}
