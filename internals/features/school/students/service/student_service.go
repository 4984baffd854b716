package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classModel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/students/dto"
	"schoolku_backend/internals/features/school/students/model"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
	"schoolku_backend/internals/helpers/storage"
)

const photoDir = storage.PublicPrefix + "students"

type ListFilter struct {
	ClassID  *uuid.UUID
	ParentID *uuid.UUID
	Search   string
	Status   string // "" | actif | inactif
}

func baseRows(db *gorm.DB) *gorm.DB {
	return db.Table("students AS s").
		Joins("JOIN classes c ON c.class_id = s.student_class_id").
		Joins("LEFT JOIN users p ON p.id = s.student_parent_id")
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.StudentRow, int64, error) {
	q := baseRows(db.WithContext(ctx))
	if f.ClassID != nil {
		q = q.Where("s.student_class_id = ?", *f.ClassID)
	}
	if f.ParentID != nil {
		q = q.Where("s.student_parent_id = ?", *f.ParentID)
	}
	switch f.Status {
	case "actif":
		q = q.Where("s.student_is_active = TRUE")
	case "inactif":
		q = q.Where("s.student_is_active = FALSE")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where(`s.student_last_name ILIKE ? OR s.student_first_name ILIKE ? OR s.student_matricule ILIKE ?
			OR (s.student_first_name || ' ' || s.student_last_name) ILIKE ?`, like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count students")
	}
	order := p.OrderClause(map[string]string{
		"name":      "s.student_last_name",
		"matricule": "s.student_matricule",
		"class":     "c.class_name",
		"enrolled":  "s.student_enrolled_at",
	}, "name")

	var rows []model.StudentRow
	if err := q.Select("s.*, c.class_name, p.full_name AS parent_name").
		Order(order).Order("s.student_first_name").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list students")
	}
	return rows, total, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := db.WithContext(ctx).First(&m, "student_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Élève")
	}
	return &m, nil
}

// GetRow: élève + nama kelas & parent.
func GetRow(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.StudentRow, error) {
	var row model.StudentRow
	res := baseRows(db.WithContext(ctx)).
		Select("s.*, c.class_name, p.full_name AS parent_name").
		Where("s.student_id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "get student")
	}
	if res.RowsAffected == 0 {
		return nil, helper.NotFound("Élève introuvable")
	}
	return &row, nil
}

// ForClass: élève aktif di kelas, urut nama (dipakai saisie & rapport).
func ForClass(ctx context.Context, db *gorm.DB, classID uuid.UUID) ([]model.StudentModel, error) {
	var out []model.StudentModel
	err := db.WithContext(ctx).
		Where("student_class_id = ? AND student_is_active = TRUE", classID).
		Order("student_last_name, student_first_name").
		Find(&out).Error
	return out, errors.Wrap(err, "students for class")
}

// Active: semua élève aktif untuk dropdown.
func Active(ctx context.Context, db *gorm.DB) ([]model.StudentModel, error) {
	var out []model.StudentModel
	err := db.WithContext(ctx).
		Where("student_is_active = TRUE").
		Order("student_last_name, student_first_name").
		Find(&out).Error
	return out, errors.Wrap(err, "active students")
}

// ChildrenOf: anak-anak seorang parent.
func ChildrenOf(ctx context.Context, db *gorm.DB, parentID uuid.UUID) ([]model.StudentModel, error) {
	var out []model.StudentModel
	err := db.WithContext(ctx).
		Where("student_parent_id = ?", parentID).
		Order("student_last_name, student_first_name").
		Find(&out).Error
	return out, errors.Wrap(err, "children")
}

// CanView: parent hanya boleh melihat anaknya sendiri.
func CanView(role string, userID *uuid.UUID, s *model.StudentModel) bool {
	if role != constants.RoleParent {
		return constants.HasRole(role, constants.TeachingRoles...)
	}
	return userID != nil && s.StudentParentID != nil && *s.StudentParentID == *userID
}

func checkRefs(ctx context.Context, tx *gorm.DB, form dto.StudentForm, exclude *uuid.UUID) error {
	classID, _ := uuid.Parse(form.ClassID)
	var cls classModel.ClassModel
	if err := tx.WithContext(ctx).First(&cls, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NewValidationError("La classe choisie n'existe pas.")
		}
		return errors.Wrap(err, "load class")
	}
	if cls.ClassCapacity > 0 {
		q := tx.WithContext(ctx).Model(&model.StudentModel{}).
			Where("student_class_id = ? AND student_is_active = TRUE", classID)
		if exclude != nil {
			q = q.Where("student_id <> ?", *exclude)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return errors.Wrap(err, "count class")
		}
		if form.IsActive && n >= int64(cls.ClassCapacity) {
			return helper.NewValidationError("La classe " + cls.ClassName + " a atteint sa capacité maximale.")
		}
	}
	if form.ParentID != "" {
		var parent userModel.UserModel
		if err := tx.WithContext(ctx).First(&parent, "id = ?", form.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewValidationError("Le parent choisi n'existe pas.")
			}
			return errors.Wrap(err, "load parent")
		}
		if !parent.IsParent() {
			return helper.NewValidationError("Le compte choisi n'a pas le rôle parent.")
		}
	}
	if form.Matricule != "" {
		q := tx.WithContext(ctx).Model(&model.StudentModel{}).Where("student_matricule = ?", form.Matricule)
		if exclude != nil {
			q = q.Where("student_id <> ?", *exclude)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return errors.Wrap(err, "check matricule")
		}
		if n > 0 {
			return helper.NewValidationError("Ce matricule est déjà attribué.")
		}
	}
	return nil
}

// Create: matricule otomatis jika kosong. Foto (opsional) dikonversi ke WebP.
func Create(ctx context.Context, db *gorm.DB, st storage.Store, form dto.StudentForm, photo *multipart.FileHeader) (*model.StudentModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}

	var m *model.StudentModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = CreateTx(ctx, tx, form)
		return err
	})
	if err != nil {
		return nil, err
	}

	if photo != nil {
		if err := SetPhoto(ctx, db, st, m, photo); err != nil {
			return m, err
		}
	}
	return m, nil
}

// CreateTx membuat élève di dalam transaksi yang sudah berjalan (juga dipakai
// konversi inscription). form harus sudah dinormalisasi & divalidasi.
func CreateTx(ctx context.Context, tx *gorm.DB, form dto.StudentForm) (*model.StudentModel, error) {
	if err := checkRefs(ctx, tx, form, nil); err != nil {
		return nil, err
	}
	today := dbtime.Today()
	m := &model.StudentModel{}
	form.ApplyTo(m, today)
	if m.StudentMatricule == "" {
		mat, err := NextMatricule(ctx, tx, today.Year())
		if err != nil {
			return nil, err
		}
		m.StudentMatricule = mat
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, helper.NewValidationError("Ce matricule est déjà attribué, veuillez réessayer.")
		}
		return nil, errors.Wrap(err, "create student")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID, form dto.StudentForm, photo *multipart.FileHeader) (*model.StudentModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(ctx, tx, form, &id); err != nil {
			return err
		}
		form.ApplyTo(m, dbtime.Today())
		return errors.Wrap(tx.Save(m).Error, "update student")
	})
	if err != nil {
		return nil, err
	}
	if photo != nil {
		if err := SetPhoto(ctx, db, st, m, photo); err != nil {
			return m, err
		}
	}
	return m, nil
}

// SetPhoto mengganti foto; foto lama dihapus setelah yang baru tersimpan.
func SetPhoto(ctx context.Context, db *gorm.DB, st storage.Store, m *model.StudentModel, fh *multipart.FileHeader) error {
	saved, err := storage.SaveImageAsWebP(ctx, st, photoDir, fh, storage.PhotoOptions)
	if err != nil {
		return err
	}
	old := m.StudentPhotoKey
	url := st.URL(saved.Key)
	if err := db.WithContext(ctx).Model(m).Updates(map[string]any{
		"student_photo_key": saved.Key,
		"student_photo_url": url,
	}).Error; err != nil {
		storage.DeleteQuiet(ctx, st, saved.Key)
		return errors.Wrap(err, "save photo key")
	}
	m.StudentPhotoKey = &saved.Key
	m.StudentPhotoURL = &url
	if old != nil {
		storage.DeleteQuiet(ctx, st, *old)
	}
	return nil
}

// Delete: nilai & presensi ikut terhapus; ditolak jika ada riwayat paiement.
func Delete(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID) error {
	var photoKey *string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.StudentModel
		if err := tx.First(&m, "student_id = ?", id).Error; err != nil {
			return helper.DBError(err, "Élève")
		}
		var paid int64
		if err := tx.Table("payments").Where("payment_student_id = ?", id).Count(&paid).Error; err != nil {
			return errors.Wrap(err, "count payments")
		}
		if paid > 0 {
			return helper.NewValidationError("Cet élève a des paiements enregistrés. Désactivez-le plutôt que de le supprimer.")
		}
		for table, col := range map[string]string{
			"grades":      "grade_student_id",
			"attendances": "attendance_student_id",
		} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE "+col+" = ?", id).Error; err != nil {
				return errors.Wrapf(err, "delete %s", table)
			}
		}
		if err := tx.Table("documents").Where("document_student_id = ?", id).
			Update("document_student_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach documents")
		}
		photoKey = m.StudentPhotoKey
		return errors.Wrap(tx.Delete(&m).Error, "delete student")
	})
	if err != nil {
		return err
	}
	if photoKey != nil {
		storage.DeleteQuiet(ctx, st, *photoKey)
	}
	return nil
}

func CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.StudentModel{}).Where("student_is_active = TRUE").Count(&n).Error
	return n, errors.Wrap(err, "count active students")
}
