package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArchiveFolderModel: dossier d'archives. Soft delete = corbeille.
type ArchiveFolderModel struct {
	FolderID           uuid.UUID  `gorm:"column:folder_id;type:uuid;default:gen_random_uuid();primaryKey" json:"folder_id"`
	FolderName         string     `gorm:"column:folder_name;type:varchar(200);not null" json:"folder_name"`
	FolderCoverKey     *string    `gorm:"column:folder_cover_key;type:text" json:"folder_cover_key,omitempty"`
	FolderInformation  *string    `gorm:"column:folder_information;type:text" json:"folder_information,omitempty"`
	FolderConfidential bool       `gorm:"column:folder_confidential;not null;default:false;index" json:"folder_confidential"`
	FolderPinHash      *string    `gorm:"column:folder_pin_hash;type:varchar(100)" json:"-"`
	FolderFileCount    int        `gorm:"column:folder_file_count;not null;default:0" json:"folder_file_count"`
	FolderCreatedBy    *uuid.UUID `gorm:"column:folder_created_by;type:uuid" json:"folder_created_by,omitempty"`

	FolderCreatedAt time.Time      `gorm:"column:folder_created_at;autoCreateTime;index" json:"folder_created_at"`
	FolderUpdatedAt time.Time      `gorm:"column:folder_updated_at;autoUpdateTime" json:"folder_updated_at"`
	FolderDeletedAt gorm.DeletedAt `gorm:"column:folder_deleted_at;index" json:"folder_deleted_at,omitempty"`
}

func (ArchiveFolderModel) TableName() string { return "archive_folders" }

type ArchiveFileModel struct {
	FileID          uuid.UUID  `gorm:"column:file_id;type:uuid;default:gen_random_uuid();primaryKey" json:"file_id"`
	FileFolderID    uuid.UUID  `gorm:"column:file_folder_id;type:uuid;not null;index" json:"file_folder_id"`
	FileName        string     `gorm:"column:file_name;type:varchar(200);not null" json:"file_name"`
	FileKey         string     `gorm:"column:file_key;type:text;not null" json:"-"`
	FileOriginal    string     `gorm:"column:file_original;type:varchar(255)" json:"file_original"`
	FileType        string     `gorm:"column:file_type;type:varchar(10)" json:"file_type"`
	FileSize        int64      `gorm:"column:file_size;not null;default:0" json:"file_size"`
	FileContentType string     `gorm:"column:file_content_type;type:varchar(100)" json:"file_content_type"`
	FileNote        *string    `gorm:"column:file_note;type:text" json:"file_note,omitempty"`
	FileUploadedBy  *uuid.UUID `gorm:"column:file_uploaded_by;type:uuid" json:"file_uploaded_by,omitempty"`
	FileCreatedAt   time.Time  `gorm:"column:file_created_at;autoCreateTime" json:"file_created_at"`
}

func (ArchiveFileModel) TableName() string { return "archive_files" }

// ArchiveFolderRow: dossier + nama pembuat (list & export).
type ArchiveFolderRow struct {
	ArchiveFolderModel
	CreatorName *string `gorm:"column:creator_name" json:"creator_name,omitempty"`
}
