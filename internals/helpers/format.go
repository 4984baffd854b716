package helper

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

var frMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return frMonths[m-1]
}

// FormatDate dd/mm/yyyy; nil/zero → "-".
func FormatDate(v any) string {
	t, ok := asTime(v)
	if !ok {
		return "-"
	}
	return t.Format("02/01/2006")
}

func FormatDateTime(v any) string {
	t, ok := asTime(v)
	if !ok {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}

// InputDate untuk value <input type="date">.
func InputDate(v any) string {
	t, ok := asTime(v)
	if !ok {
		return ""
	}
	return t.Format(DateLayout)
}

func InputDateTime(v any) string {
	t, ok := asTime(v)
	if !ok {
		return ""
	}
	return t.Format(DateTimeLayout)
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}

// FormatMoney 1234.5 → "1 234,50".
func FormatMoney(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)
	cents := int64(math.Round(amount * 100))
	intPart := cents / 100
	frac := cents % 100

	s := fmt.Sprintf("%d", intPart)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	out := fmt.Sprintf("%s,%02d", b.String(), frac)
	if neg {
		out = "-" + out
	}
	return out
}

// FormatScore 14.666 → "14.67".
func FormatScore(v float64) string {
	return fmt.Sprintf("%.2f", math.Round(v*100)/100)
}

// FileSize dalam B/KB/MB/GB.
func FileSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	case n < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/(1024*1024*1024))
	}
}

// Nl2br untuk konten multi-baris di template.
func Nl2br(s string) template.HTML {
	esc := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(esc, "\n", "<br>"))
}

func idString(v any) string {
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return ""
		}
		return t.String()
	case *uuid.UUID:
		if t == nil || *t == uuid.Nil {
			return ""
		}
		return t.String()
	case string:
		return t
	}
	return ""
}

// TemplateFuncs didaftarkan ke engine html.
func TemplateFuncs() map[string]any {
	return map[string]any{
		"date":      FormatDate,
		"datetime":  FormatDateTime,
		"inputDate": InputDate,
		"inputDT":   InputDateTime,
		"money":     FormatMoney,
		"score":     FormatScore,
		"filesize":  FileSize,
		"nl2br":     Nl2br,
		"month":     MonthName,
		"pct":       func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"add":       func(a, b int) int { return a + b },
		"sameID":    func(a, b any) bool { x := idString(a); return x != "" && x == idString(b) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"hasRole": func(role string, roles ...string) bool {
			for _, r := range roles {
				if r == role {
					return true
				}
			}
			return false
		},
		"in":        constants.In,
		"label":     constants.Label,
		"roleLabel": constants.RoleLabel,
		"attLabel":  constants.AttendanceLabel,
		"fileIcon":  constants.FileIcon,
		"seq": func(from, to int) []int {
			if to < from {
				return nil
			}
			out := make([]int, 0, to-from+1)
			for i := from; i <= to; i++ {
				out = append(out, i)
			}
			return out
		},
	}
}
