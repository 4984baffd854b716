package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	paymentService "schoolku_backend/internals/features/finance/payments/service"
	"schoolku_backend/internals/helpers/dbtime"
)

type ClassHeadcount struct {
	ClassID   string `gorm:"column:class_id"`
	ClassName string `gorm:"column:class_name"`
	Capacity  int    `gorm:"column:class_capacity"`
	Students  int64  `gorm:"column:students"`
}

// FillRate dalam persen; kapasitas 0 → 0.
func (h ClassHeadcount) FillRate() float64 {
	if h.Capacity <= 0 {
		return 0
	}
	return float64(h.Students) * 100 / float64(h.Capacity)
}

type Statistics struct {
	Students      int64
	Classes       int64
	Teachers      int64
	Subjects      int64
	PerClass      []ClassHeadcount
	Boys          int64
	Girls         int64
	MonthPaid     float64
	MonthPayments int64
}

func countTable(ctx context.Context, db *gorm.DB, table, where string, args ...any) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	err := q.Count(&n).Error
	return n, errors.Wrap(err, "count "+table)
}

// LoadStatistics: angka ringkas + sebaran per kelas / jenis kelamin + paiements bulan berjalan.
func LoadStatistics(ctx context.Context, db *gorm.DB, now time.Time) (*Statistics, error) {
	var s Statistics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.Students, err = countTable(gctx, db, "students", "student_is_active = TRUE")
		return err
	})
	g.Go(func() (err error) {
		s.Classes, err = countTable(gctx, db, "classes", "")
		return err
	})
	g.Go(func() (err error) {
		s.Teachers, err = countTable(gctx, db, "users", "role = ? AND is_active = TRUE", constants.RoleTeacher)
		return err
	})
	g.Go(func() (err error) {
		s.Subjects, err = countTable(gctx, db, "subjects", "")
		return err
	})
	g.Go(func() error {
		err := db.WithContext(gctx).Table("classes c").
			Select("c.class_id, c.class_name, c.class_capacity, COUNT(s.student_id) AS students").
			Joins("LEFT JOIN students s ON s.student_class_id = c.class_id AND s.student_is_active = TRUE").
			Group("c.class_id, c.class_name, c.class_capacity").
			Order("c.class_name").Scan(&s.PerClass).Error
		return errors.Wrap(err, "students per class")
	})
	g.Go(func() error {
		var rows []struct {
			Gender string `gorm:"column:student_gender"`
			N      int64  `gorm:"column:n"`
		}
		if err := db.WithContext(gctx).Table("students").
			Select("student_gender, COUNT(*) AS n").
			Where("student_is_active = TRUE").
			Group("student_gender").Scan(&rows).Error; err != nil {
			return errors.Wrap(err, "gender split")
		}
		for _, r := range rows {
			switch r.Gender {
			case "M":
				s.Boys = r.N
			case "F":
				s.Girls = r.N
			}
		}
		return nil
	})
	g.Go(func() (err error) {
		from, to := dbtime.MonthRange(now)
		s.MonthPaid, s.MonthPayments, err = paymentService.PaidBetween(gctx, db, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}
