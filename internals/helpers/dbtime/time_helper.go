// Package dbtime: zona waktu sekolah untuk "hari ini", "bulan ini", dll.
package dbtime

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultTimezone = "America/Port-au-Prince"

var (
	locOnce sync.Once
	loc     *time.Location
)

// SchoolLocation dari SCHOOL_TZ, fallback America/Port-au-Prince, lalu UTC.
func SchoolLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("SCHOOL_TZ"))
		if name == "" {
			name = defaultTimezone
		}
		l, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[WARN] SCHOOL_TZ %q tidak valid (%v), pakai UTC", name, err)
			l = time.UTC
		}
		loc = l
	})
	return loc
}

func Now() time.Time { return time.Now().In(SchoolLocation()) }

// Today: jam 00:00 hari ini (zona sekolah).
func Today() time.Time { return StartOfDay(Now()) }

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthRange: [awal bulan, awal bulan berikutnya).
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// DaysBetween membulatkan ke hari kalender.
func DaysBetween(from, to time.Time) int {
	a := StartOfDay(from)
	b := StartOfDay(to.In(from.Location()))
	return int(b.Sub(a).Hours() / 24)
}
