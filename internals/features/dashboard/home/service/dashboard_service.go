package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	attendanceService "schoolku_backend/internals/features/academics/attendance/service"
	announcementModel "schoolku_backend/internals/features/communication/announcements/model"
	announcementService "schoolku_backend/internals/features/communication/announcements/service"
	eventModel "schoolku_backend/internals/features/communication/events/model"
	eventService "schoolku_backend/internals/features/communication/events/service"
	complaintService "schoolku_backend/internals/features/home/complaints/service"
	contactService "schoolku_backend/internals/features/home/contacts/service"
	reportService "schoolku_backend/internals/features/reports/report/service"
	admissionService "schoolku_backend/internals/features/school/admissions/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
	studentService "schoolku_backend/internals/features/school/students/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

const (
	dashAnnouncements = 5
	dashEvents        = 5
)

// StaffCounters: angka yang hanya dilihat direction.
type StaffCounters struct {
	Stats             *reportService.Statistics
	PendingAdmissions int64
	UnreadContacts    int64
	OpenComplaints    int64
	AbsentToday       int64
}

type Dashboard struct {
	Role          string
	Announcements []announcementModel.AnnouncementModel
	Events        []eventModel.EventModel
	Staff         *StaffCounters
	Classes       []classModel.ClassModel
	Children      []studentModel.StudentModel
}

// Load menyusun dashboard sesuai role; blok yang tidak relevan dibiarkan kosong.
func Load(ctx context.Context, db *gorm.DB, role string, userID *uuid.UUID, now time.Time) (*Dashboard, error) {
	d := &Dashboard{Role: role}
	today := dbtime.StartOfDay(now)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Announcements, _, err = announcementService.List(gctx, db,
			announcementService.ListFilter{Role: role, ActiveOnly: true}, today,
			helper.Params{Page: 1, PerPage: dashAnnouncements})
		return err
	})
	g.Go(func() (err error) {
		d.Events, err = eventService.Upcoming(gctx, db, now, dashEvents)
		return err
	})

	switch {
	case constants.HasRole(role, constants.StaffRoles...):
		sc := &StaffCounters{}
		d.Staff = sc
		g.Go(func() (err error) {
			sc.Stats, err = reportService.LoadStatistics(gctx, db, now)
			return err
		})
		g.Go(func() error {
			counts, err := admissionService.CountByStatus(gctx, db)
			sc.PendingAdmissions = counts[constants.AdmissionPending]
			return err
		})
		g.Go(func() (err error) {
			sc.UnreadContacts, err = contactService.CountUnread(gctx, db)
			return err
		})
		g.Go(func() error {
			counts, err := complaintService.CountByStatus(gctx, db)
			sc.OpenComplaints = counts[constants.ComplaintPending] + counts[constants.ComplaintOngoing]
			return err
		})
		g.Go(func() (err error) {
			sc.AbsentToday, err = attendanceService.CountOn(gctx, db, today, constants.AttendanceAbsent)
			return err
		})
	case role == constants.RoleTeacher:
		g.Go(func() (err error) {
			d.Classes, err = classService.OptionsFor(gctx, db, role, userID)
			return err
		})
	case role == constants.RoleParent && userID != nil:
		g.Go(func() (err error) {
			d.Children, err = studentService.ChildrenOf(gctx, db, *userID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
