package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReference(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^INS-2026-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref := NewReference(now)
		assert.Regexp(t, re, ref)
		assert.LessOrEqual(t, len(ref), 20)
		seen[ref] = true
	}
	assert.Greater(t, len(seen), 45)
}
