package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "schoolku_backend/internals/features/academics/attendance/route"
	gradeRoute "schoolku_backend/internals/features/academics/grades/route"
	archiveRoute "schoolku_backend/internals/features/archives/archive/route"
	announcementRoute "schoolku_backend/internals/features/communication/announcements/route"
	announcementService "schoolku_backend/internals/features/communication/announcements/service"
	documentRoute "schoolku_backend/internals/features/communication/documents/route"
	eventRoute "schoolku_backend/internals/features/communication/events/route"
	dashboardRoute "schoolku_backend/internals/features/dashboard/home/route"
	feeRoute "schoolku_backend/internals/features/finance/fees/route"
	paymentRoute "schoolku_backend/internals/features/finance/payments/route"
	resultRoute "schoolku_backend/internals/features/home/admission_results/route"
	articleRoute "schoolku_backend/internals/features/home/articles/route"
	complaintRoute "schoolku_backend/internals/features/home/complaints/route"
	contactRoute "schoolku_backend/internals/features/home/contacts/route"
	newsRoute "schoolku_backend/internals/features/home/news/route"
	newsletterRoute "schoolku_backend/internals/features/home/newsletters/route"
	siteRoute "schoolku_backend/internals/features/home/site/route"
	reportRoute "schoolku_backend/internals/features/reports/report/route"
	admissionRoute "schoolku_backend/internals/features/school/admissions/route"
	classRoute "schoolku_backend/internals/features/school/classes/route"
	studentRoute "schoolku_backend/internals/features/school/students/route"
	subjectRoute "schoolku_backend/internals/features/school/subjects/route"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	userRoute "schoolku_backend/internals/features/users/user/route"
	"schoolku_backend/internals/helpers/mailer"
	"schoolku_backend/internals/helpers/storage"
	"schoolku_backend/internals/middlewares"
)

var startTime time.Time

// Deps: dependency bersama yang dibuat sekali di main.
type Deps struct {
	DB       *gorm.DB
	Store    storage.Store
	Mailer   mailer.Sender
	Notifier *announcementService.Notifier
	Metrics  *middlewares.Metrics
	// StorageRoot: root disk lokal, public/ disajikan di /media/public.
	StorageRoot string
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	db := d.DB

	BaseRoutes(app, d)

	log.Println("[INFO] mounting site publik...")
	siteRoute.SiteRoutes(app, db, d.Store)
	articleRoute.ArticleRoutes(app, db, d.Store)
	newsRoute.NewsRoutes(app, db)
	contactRoute.ContactRoutes(app, db)
	complaintRoute.ComplaintRoutes(app, db, d.Store)
	newsletterRoute.NewsletterRoutes(app, db, d.Mailer)
	resultRoute.AdmissionResultRoutes(app, db)
	admissionRoute.AdmissionRoutes(app, db)

	log.Println("[INFO] mounting auth & utilisateurs...")
	authRoute.AuthRoutes(app, db)
	userRoute.UserAdminRoutes(app, db)
	dashboardRoute.DashboardRoutes(app, db)

	log.Println("[INFO] mounting scolarité...")
	classRoute.ClassRoutes(app, db)
	subjectRoute.SubjectRoutes(app, db)
	studentRoute.StudentRoutes(app, db, d.Store)
	gradeRoute.GradeRoutes(app, db)
	attendanceRoute.AttendanceRoutes(app, db)

	log.Println("[INFO] mounting finances...")
	feeRoute.FeeRoutes(app, db)
	paymentRoute.PaymentRoutes(app, db)

	log.Println("[INFO] mounting communication & archives...")
	eventRoute.EventRoutes(app, db)
	announcementRoute.AnnouncementRoutes(app, db, d.Notifier)
	documentRoute.DocumentRoutes(app, db, d.Store)
	archiveRoute.ArchiveRoutes(app, db, d.Store)
	reportRoute.ReportRoutes(app, db)

	log.Println("[INFO] mounting /api...")
	api := app.Group("/api")
	subjectRoute.SubjectAPIRoutes(api, db)
	studentRoute.StudentAPIRoutes(api, db, d.Store)
	paymentRoute.PaymentAPIRoutes(api, db)
	eventRoute.EventAPIRoutes(api, db)
	announcementRoute.AnnouncementAPIRoutes(api, db, d.Notifier)
	newsRoute.NewsAPIRoutes(api, db)
	newsletterRoute.NewsletterAPIRoutes(api, db, d.Mailer)
	reportRoute.ReportAPIRoutes(api, db)
}
