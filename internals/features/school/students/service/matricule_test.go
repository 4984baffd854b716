package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMatricule(t *testing.T) {
	assert.Equal(t, "ECL-2024-0007", FormatMatricule("ecl", 2024, 7))
	assert.Equal(t, "ECL-2024-12345", FormatMatricule("ECL", 2024, 12345))
}

func TestMatriculeSeq(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"ECL-2024-0007", 7, true},
		{"ecl-2024-0012", 12, true},
		{"ECL-2023-0100", 0, false},
		{"ABC-2024-0001", 0, false},
		{"ECL-2024-XX01", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := MatriculeSeq(tt.in, "ECL", 2024)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNextSeq(t *testing.T) {
	assert.Equal(t, 1, NextSeq(nil, "ECL", 2024))
	existing := []string{"ECL-2024-0003", "ECL-2024-0010", "ECL-2023-0099", "MANUEL-1"}
	assert.Equal(t, 11, NextSeq(existing, "ECL", 2024))
}
