package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentModel struct {
	DocumentID          uuid.UUID  `gorm:"column:document_id;type:uuid;default:gen_random_uuid();primaryKey" json:"document_id"`
	DocumentTitle       string     `gorm:"column:document_title;type:varchar(150);not null" json:"document_title"`
	DocumentDescription *string    `gorm:"column:document_description;type:text" json:"document_description,omitempty"`
	DocumentCategory    string     `gorm:"column:document_category;type:varchar(20);not null;default:'autre';index" json:"document_category"`
	DocumentStudentID   *uuid.UUID `gorm:"column:document_student_id;type:uuid;index" json:"document_student_id,omitempty"`

	DocumentFileKey     string `gorm:"column:document_file_key;type:text;not null" json:"-"`
	DocumentFileName    string `gorm:"column:document_file_name;type:varchar(255);not null" json:"document_file_name"`
	DocumentFileSize    int64  `gorm:"column:document_file_size;not null;default:0" json:"document_file_size"`
	DocumentContentType string `gorm:"column:document_content_type;type:varchar(100)" json:"document_content_type"`

	DocumentUploadedBy *uuid.UUID `gorm:"column:document_uploaded_by;type:uuid" json:"document_uploaded_by,omitempty"`
	DocumentCreatedAt  time.Time  `gorm:"column:document_created_at;autoCreateTime" json:"document_created_at"`
}

func (DocumentModel) TableName() string { return "documents" }

type DocumentRow struct {
	DocumentModel
	StudentName *string `gorm:"column:student_name" json:"student_name,omitempty"`
}
