package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/school/students/model"
)

// FormatMatricule → ECL-2024-0007
func FormatMatricule(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", strings.ToUpper(prefix), year, seq)
}

// MatriculeSeq mengambil nomor urut dari matricule berformat PREFIX-YEAR-NNNN.
func MatriculeSeq(matricule, prefix string, year int) (int, bool) {
	head := fmt.Sprintf("%s-%d-", strings.ToUpper(prefix), year)
	if !strings.HasPrefix(strings.ToUpper(matricule), head) {
		return 0, false
	}
	n, err := strconv.Atoi(matricule[len(head):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextSeq: max(seq) + 1 dari daftar matricule yang sudah ada.
func NextSeq(existing []string, prefix string, year int) int {
	top := 0
	for _, m := range existing {
		if n, ok := MatriculeSeq(m, prefix, year); ok && n > top {
			top = n
		}
	}
	return top + 1
}

// NextMatricule membaca matricule tahun berjalan lalu memberi nomor berikutnya.
// Dipanggil di dalam transaksi pembuatan élève; unique index tetap penjaga terakhir.
func NextMatricule(ctx context.Context, tx *gorm.DB, year int) (string, error) {
	prefix := configs.MatriculePrefix
	if prefix == "" {
		prefix = "ECL"
	}
	var existing []string
	if err := tx.WithContext(ctx).Model(&model.StudentModel{}).
		Where("student_matricule LIKE ?", fmt.Sprintf("%s-%d-%%", strings.ToUpper(prefix), year)).
		Pluck("student_matricule", &existing).Error; err != nil {
		return "", errors.Wrap(err, "load matricules")
	}
	return FormatMatricule(prefix, year, NextSeq(existing, prefix, year)), nil
}
