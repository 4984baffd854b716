package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntries(t *testing.T) {
	a := StudentLabel{ID: uuid.New(), Name: "Jean Pierre"}
	b := StudentLabel{ID: uuid.New(), Name: "Marie Joseph"}
	c := StudentLabel{ID: uuid.New(), Name: "Paul Louis"}
	d := StudentLabel{ID: uuid.New(), Name: "Anne Noël"}

	form := map[string]string{
		ValueKey(a.ID):   "15,5",
		CommentKey(a.ID): "  Bon travail ",
		ValueKey(b.ID):   "",
		ValueKey(c.ID):   "abc",
		ValueKey(d.ID):   "-2",
	}
	entries, errs := ParseEntries([]StudentLabel{a, b, c, d}, func(k string) string { return form[k] })

	require.Len(t, entries, 1)
	assert.Equal(t, a.ID, entries[0].StudentID)
	assert.InDelta(t, 15.5, entries[0].Value, 1e-9)
	require.NotNil(t, entries[0].Comment)
	assert.Equal(t, "Bon travail", *entries[0].Comment)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Paul Louis")
	assert.Contains(t, errs[1], "négative")
}

func TestParseEntries_AboveDenominatorAccepted(t *testing.T) {
	a := StudentLabel{ID: uuid.New(), Name: "A"}
	entries, errs := ParseEntries([]StudentLabel{a}, func(k string) string {
		if k == ValueKey(a.ID) {
			return "22"
		}
		return ""
	})
	assert.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Comment)
}

func TestEntryFormDefaultsOutOf(t *testing.T) {
	f := EntryForm{Category: " examen "}
	f.Normalize()
	assert.Equal(t, 20.0, f.OutOf)
	assert.Equal(t, "examen", f.Category)
}
