package model

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

type UserModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName    string     `gorm:"size:150;not null" json:"full_name"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"type:varchar(20);not null;default:'parent';index" json:"role"`
	Phone       *string    `gorm:"size:30" json:"phone,omitempty"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsStaff() bool {
	return u.Role == constants.RoleAdmin || u.Role == constants.RoleDirector
}

func (u *UserModel) IsParent() bool { return u.Role == constants.RoleParent }
