package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/admissions/dto"
	"schoolku_backend/internals/features/school/admissions/model"
	classService "schoolku_backend/internals/features/school/classes/service"
	studentService "schoolku_backend/internals/features/school/students/service"
	authService "schoolku_backend/internals/features/users/auth/service"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

// NewReference: "INS-2026-1A2B3C".
func NewReference(now time.Time) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("INS-%d-%s", now.Year(), strings.ToUpper(raw[:6]))
}

type ListFilter struct {
	Status string
	Search string
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.AdmissionRow, int64, error) {
	q := db.WithContext(ctx).Table("admissions a").
		Joins("LEFT JOIN classes c ON c.class_id = a.admission_class_id")
	if constants.In(f.Status, constants.AdmissionStatuses) {
		q = q.Where("a.admission_status = ?", f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("a.admission_last_name ILIKE ? OR a.admission_first_name ILIKE ? OR a.admission_reference ILIKE ? OR a.admission_parent_email ILIKE ?",
			like, like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count admissions")
	}
	order := p.OrderClause(map[string]string{
		"created_at": "a.admission_created_at",
		"name":       "a.admission_last_name",
		"status":     "a.admission_status",
	}, "created_at")

	var rows []model.AdmissionRow
	err := q.Select("a.*, c.class_name").Order(order).
		Limit(p.Limit()).Offset(p.Offset()).Scan(&rows).Error
	return rows, total, errors.Wrap(err, "list admissions")
}

func CountByStatus(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	if err := db.WithContext(ctx).Model(&model.AdmissionModel{}).
		Select("admission_status AS status, COUNT(*) AS total").
		Group("admission_status").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count admissions by status")
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AdmissionModel, error) {
	var m model.AdmissionModel
	if err := db.WithContext(ctx).First(&m, "admission_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Inscription")
	}
	return &m, nil
}

func GetByReference(ctx context.Context, db *gorm.DB, ref string) (*model.AdmissionModel, error) {
	var m model.AdmissionModel
	err := db.WithContext(ctx).
		First(&m, "admission_reference = ?", strings.ToUpper(strings.TrimSpace(ref))).Error
	if err != nil {
		return nil, helper.DBError(err, "Inscription")
	}
	return &m, nil
}

// Submit: formulir publik. Status awal en_attente.
func Submit(ctx context.Context, db *gorm.DB, form dto.AdmissionForm) (*model.AdmissionModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	classID, _ := uuid.Parse(form.ClassID)
	if _, err := classService.Get(ctx, db, classID); err != nil {
		return nil, helper.NewValidationError("La classe choisie n'existe pas.")
	}

	now := dbtime.Now()
	var m *model.AdmissionModel
	for attempt := 0; attempt < 3; attempt++ {
		m = form.ToModel(NewReference(now))
		m.AdmissionStatus = constants.AdmissionPending
		err := db.WithContext(ctx).Create(m).Error
		if err == nil {
			return m, nil
		}
		if !helper.IsDuplicateKey(err) {
			return nil, errors.Wrap(err, "create admission")
		}
	}
	return nil, errors.New("impossible de générer une référence unique")
}

func Review(ctx context.Context, db *gorm.DB, id uuid.UUID, actor *uuid.UUID, form dto.ReviewForm) (*model.AdmissionModel, error) {
	form.Status = strings.TrimSpace(form.Status)
	form.Comment = strings.TrimSpace(form.Comment)
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if m.AdmissionStatus == constants.AdmissionCompleted {
		return nil, helper.NewValidationError("Cette inscription a déjà été convertie en élève.")
	}
	now := dbtime.Now()
	m.AdmissionStatus = form.Status
	m.AdmissionComment = helper.TrimPtr(form.Comment)
	m.AdmissionReviewedBy = actor
	m.AdmissionReviewedAt = &now
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "review admission")
	}
	return m, nil
}

type ConvertResult struct {
	Admission *model.AdmissionModel
	StudentID uuid.UUID
	Matricule string
	Parent    *userModel.UserModel
	// Password terisi hanya jika akun parent baru dibuat.
	Password string
}

// Convert: inscription approuvee → élève. Parent dibuat bila email belum
// terdaftar. Semua dalam satu transaksi.
func Convert(ctx context.Context, db *gorm.DB, id uuid.UUID, actor *uuid.UUID) (*ConvertResult, error) {
	res := &ConvertResult{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.AdmissionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "admission_id = ?", id).Error; err != nil {
			return helper.DBError(err, "Inscription")
		}
		if m.AdmissionStatus != constants.AdmissionApproved {
			return helper.NewValidationError("Seule une inscription approuvée peut être convertie.")
		}

		parent, password, err := findOrCreateParent(ctx, tx, &m)
		if err != nil {
			return err
		}
		if parent.Role != constants.RoleParent {
			return helper.NewValidationError("L'email du parent appartient à un compte du personnel.")
		}

		form := dto.ToStudentForm(&m, parent.ID)
		if err := helper.ValidateStruct(&form); err != nil {
			return err
		}
		st, err := studentService.CreateTx(ctx, tx, form)
		if err != nil {
			return err
		}

		now := dbtime.Now()
		m.AdmissionStatus = constants.AdmissionCompleted
		m.AdmissionStudentID = &st.StudentID
		m.AdmissionReviewedBy = actor
		m.AdmissionReviewedAt = &now
		if err := tx.Save(&m).Error; err != nil {
			return errors.Wrap(err, "complete admission")
		}

		res.Admission = &m
		res.StudentID = st.StudentID
		res.Matricule = st.StudentMatricule
		res.Parent = parent
		res.Password = password
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func findOrCreateParent(ctx context.Context, tx *gorm.DB, m *model.AdmissionModel) (*userModel.UserModel, string, error) {
	var u userModel.UserModel
	err := tx.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(m.AdmissionParentEmail)).First(&u).Error
	if err == nil {
		return &u, "", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", errors.Wrap(err, "find parent")
	}

	password := authService.RandomPassword(10)
	hash, err := authService.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	phone := m.AdmissionParentPhone
	u = userModel.UserModel{
		FullName: m.AdmissionParentName,
		Email:    strings.ToLower(m.AdmissionParentEmail),
		Password: hash,
		Role:     constants.RoleParent,
		Phone:    &phone,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, "", errors.Wrap(err, "create parent")
	}
	return &u, password, nil
}

func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("admission_id = ?", id).Delete(&model.AdmissionModel{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete admission")
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Inscription introuvable")
	}
	return nil
}
