package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/auth/dto"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

var (
	ErrInvalidCredentials = helper.NewValidationError("Email ou mot de passe incorrect.")
	ErrInactiveAccount    = helper.NewValidationError("Votre compte est désactivé. Contactez l'administration.")
)

// Authenticate memeriksa email + password. Pesan error sama untuk email
// tidak dikenal dan password salah.
func Authenticate(ctx context.Context, db *gorm.DB, req dto.LoginRequest) (*userModel.UserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	var user userModel.UserModel
	err := db.WithContext(ctx).Where("LOWER(email) = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	if !CheckPasswordHash(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	now := time.Now()
	if err := db.WithContext(ctx).Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, errors.Wrap(err, "update last login")
	}
	user.LastLoginAt = &now
	return &user, nil
}

// Register membuat akun parent (pendaftaran publik).
func Register(ctx context.Context, db *gorm.DB, req dto.RegisterRequest) (*userModel.UserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if taken, err := EmailTaken(ctx, db, req.Email, nil); err != nil {
		return nil, err
	} else if taken {
		return nil, helper.NewValidationError("Cet email est déjà utilisé.")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := userModel.UserModel{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hash,
		Role:     constants.RoleParent,
		Phone:    helper.TrimPtr(req.Phone),
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return &user, nil
}

func ChangePassword(ctx context.Context, db *gorm.DB, user *userModel.UserModel, req dto.ChangePasswordRequest) error {
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}
	if !CheckPasswordHash(user.Password, req.CurrentPassword) {
		return helper.NewValidationError("Le mot de passe actuel est incorrect.")
	}
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return errors.Wrap(
		db.WithContext(ctx).Model(user).UpdateColumn("password", hash).Error,
		"update password")
}

// EmailTaken cek unik (case-insensitive). exclude = user yang sedang diedit.
func EmailTaken(ctx context.Context, db *gorm.DB, email string, exclude *userModel.UserModel) (bool, error) {
	q := db.WithContext(ctx).Model(&userModel.UserModel{}).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
	if exclude != nil {
		q = q.Where("id <> ?", exclude.ID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "count email")
	}
	return n > 0, nil
}
