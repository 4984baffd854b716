package helper

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify: "Fête de l'École 2025" → "fete-de-l-ecole-2025". Fallback "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = reNonAlnum.ReplaceAllString(b.String(), "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	if s == "" {
		return "item"
	}
	return s
}

// UniqueSlug menambah suffix -2, -3, ... sampai slug belum dipakai di table.column.
// exclude (boleh nil) = baris yang sedang di-update.
func UniqueSlug(ctx context.Context, db *gorm.DB, table, column, base string, exclude *uuid.UUID, idColumn string) (string, error) {
	slug := base
	for i := 2; i < 200; i++ {
		q := db.WithContext(ctx).Table(table).Where(fmt.Sprintf("LOWER(%s) = ?", column), strings.ToLower(slug))
		if exclude != nil {
			q = q.Where(fmt.Sprintf("%s <> ?", idColumn), *exclude)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
