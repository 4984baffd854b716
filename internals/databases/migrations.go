package database

import (
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	gradeModel "schoolku_backend/internals/features/academics/grades/model"
	attendanceModel "schoolku_backend/internals/features/academics/attendance/model"
	archiveModel "schoolku_backend/internals/features/archives/archive/model"
	announcementModel "schoolku_backend/internals/features/communication/announcements/model"
	documentModel "schoolku_backend/internals/features/communication/documents/model"
	eventModel "schoolku_backend/internals/features/communication/events/model"
	feeModel "schoolku_backend/internals/features/finance/fees/model"
	paymentModel "schoolku_backend/internals/features/finance/payments/model"
	resultModel "schoolku_backend/internals/features/home/admission_results/model"
	articleModel "schoolku_backend/internals/features/home/articles/model"
	complaintModel "schoolku_backend/internals/features/home/complaints/model"
	contactModel "schoolku_backend/internals/features/home/contacts/model"
	newsModel "schoolku_backend/internals/features/home/news/model"
	newsletterModel "schoolku_backend/internals/features/home/newsletters/model"
	admissionModel "schoolku_backend/internals/features/school/admissions/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

// Models: urutan mengikuti foreign key (users → classes → students → ...).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&classModel.ClassModel{},
		&subjectModel.SubjectModel{},
		&subjectModel.TeachingModel{},
		&studentModel.StudentModel{},
		&gradeModel.GradeModel{},
		&attendanceModel.AttendanceModel{},
		&feeModel.FeeModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentNotificationModel{},
		&eventModel.EventModel{},
		&announcementModel.AnnouncementModel{},
		&announcementModel.WhatsAppRecipientModel{},
		&documentModel.DocumentModel{},
		&admissionModel.AdmissionModel{},
		&archiveModel.ArchiveFolderModel{},
		&archiveModel.ArchiveFileModel{},
		&articleModel.ArticleModel{},
		&newsModel.NewsModel{},
		&newsletterModel.SubscriberModel{},
		&contactModel.ContactModel{},
		&complaintModel.ComplaintModel{},
		&resultModel.AdmissionResultModel{},
	}
}

// Migrate: ekstensi pgcrypto (gen_random_uuid) lalu AutoMigrate semua tabel.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return errors.Wrap(err, "create extension pgcrypto")
	}
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return errors.Wrapf(err, "migrate %T", m)
		}
	}
	log.Printf("[INFO] migrasi selesai (%d tabel)", len(Models()))
	return nil
}
