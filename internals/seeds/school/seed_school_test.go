package school

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDemoData(t *testing.T) {
	d, err := Load("../data/school.json")
	require.NoError(t, err)
	assert.NotEmpty(t, d.Users)
	assert.NotEmpty(t, d.Classes)
	assert.NotEmpty(t, d.Subjects)
	assert.NotEmpty(t, d.Students)

	emails := map[string]bool{}
	for _, u := range d.Users {
		emails[u.Email] = true
	}
	classes := map[string]bool{}
	for _, c := range d.Classes {
		classes[c.Name+"|"+c.AcademicYear] = true
	}
	for _, s := range d.Students {
		assert.True(t, classes[s.Class+"|"+s.AcademicYear], "kelas %s", s.Class)
		if s.Parent != "" {
			assert.True(t, emails[s.Parent], "parent %s", s.Parent)
		}
	}
	for _, tc := range d.Teachings {
		assert.True(t, emails[tc.Teacher], "professeur %s", tc.Teacher)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("../data/absent.json")
	assert.Error(t, err)
}
