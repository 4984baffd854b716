package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authService "schoolku_backend/internals/features/users/auth/service"
	"schoolku_backend/internals/features/users/user/dto"
	"schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

type ListFilter struct {
	Role   string
	Search string
}

func List(ctx context.Context, db *gorm.DB, f ListFilter, p helper.Params) ([]model.UserModel, int64, error) {
	q := db.WithContext(ctx).Model(&model.UserModel{})
	if constants.IsRole(f.Role) {
		q = q.Where("role = ?", f.Role)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}
	order := p.OrderClause(map[string]string{
		"name":       "full_name",
		"email":      "email",
		"role":       "role",
		"created_at": "created_at",
	}, "name")

	var users []model.UserModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&users).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return users, total, nil
}

// ByRole untuk dropdown (professeur di teachings, parent di fiche élève).
func ByRole(ctx context.Context, db *gorm.DB, role string) ([]model.UserModel, error) {
	var users []model.UserModel
	err := db.WithContext(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Order("full_name").
		Find(&users).Error
	return users, errors.Wrap(err, "users by role")
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Utilisateur")
	}
	return &u, nil
}

func Create(ctx context.Context, db *gorm.DB, form dto.UserForm) (*model.UserModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if form.Password == "" {
		return nil, helper.NewValidationError("Le mot de passe est obligatoire.")
	}
	if taken, err := authService.EmailTaken(ctx, db, form.Email, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Cet email est déjà utilisé.")
	}

	u := form.ToModel()
	hash, err := authService.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hash
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return u, nil
}

// Update: password hanya diganti jika diisi. Admin tidak bisa menonaktifkan
// atau menurunkan role dirinya sendiri.
func Update(ctx context.Context, db *gorm.DB, id, actorID uuid.UUID, form dto.UserForm) (*model.UserModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	u, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if id == actorID && (!form.IsActive || form.Role != u.Role) {
		return nil, helper.NewValidationError("Vous ne pouvez pas modifier votre propre rôle ni désactiver votre compte.")
	}
	if taken, err := authService.EmailTaken(ctx, db, form.Email, u); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Cet email est déjà utilisé.")
	}

	form.ApplyTo(u)
	if form.Password != "" {
		hash, err := authService.HashPassword(form.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return u, nil
}

// Delete menolak hapus diri sendiri dan professeur yang masih punya
// enseignement. Relasi parent pada élève dilepas.
func Delete(ctx context.Context, db *gorm.DB, id, actorID uuid.UUID) error {
	if id == actorID {
		return helper.NewValidationError("Vous ne pouvez pas supprimer votre propre compte.")
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u model.UserModel
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			return helper.DBError(err, "Utilisateur")
		}

		var teachings int64
		if err := tx.Table("teachings").Where("teaching_teacher_id = ?", id).Count(&teachings).Error; err != nil {
			return errors.Wrap(err, "count teachings")
		}
		if teachings > 0 {
			return helper.NewValidationError("Ce professeur est affecté à des cours. Retirez d'abord ses affectations.")
		}
		if err := tx.Table("students").Where("student_parent_id = ?", id).
			Update("student_parent_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach children")
		}
		return errors.Wrap(tx.Delete(&u).Error, "delete user")
	})
}

func CountByRole(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	type row struct {
		Role  string
		Total int64
	}
	var rows []row
	if err := db.WithContext(ctx).Model(&model.UserModel{}).
		Select("role, COUNT(*) AS total").Group("role").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "count by role")
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Role] = r.Total
	}
	return out, nil
}
