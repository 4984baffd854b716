package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tabler interface{ TableName() string }

func TestModelsHaveUniqueTables(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Models() {
		tb, ok := m.(tabler)
		if !assert.True(t, ok, "%T tanpa TableName", m) {
			continue
		}
		name := tb.TableName()
		assert.False(t, seen[name], "tabel %s ganda", name)
		seen[name] = true
	}
	assert.Len(t, seen, 23)
}
