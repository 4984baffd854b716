package service

import (
	"context"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/archives/archive/dto"
	"schoolku_backend/internals/features/archives/archive/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
)

const (
	coverDir = storage.PublicPrefix + "archives/couvertures"
	filesDir = "archives/fichiers"
)

func applyFilter(q *gorm.DB, filter string, now time.Time) *gorm.DB {
	since := now.Add(-dto.RecentWindow)
	switch filter {
	case dto.FilterRecent:
		return q.Where("f.folder_created_at >= ?", since)
	case dto.FilterModified:
		return q.Where("f.folder_updated_at >= ?", since)
	case dto.FilterConfidential:
		return q.Where("f.folder_confidential = TRUE")
	}
	return q
}

func folders(db *gorm.DB) *gorm.DB {
	return db.Table("archive_folders f").
		Joins("LEFT JOIN users u ON u.id = f.folder_created_by").
		Where("f.folder_deleted_at IS NULL")
}

// List: dossier aktif (bukan corbeille) sesuai filter, terbaru dulu.
func List(ctx context.Context, db *gorm.DB, filter, search string, now time.Time) ([]model.ArchiveFolderRow, error) {
	q := applyFilter(folders(db.WithContext(ctx)), dto.NormalizeFilter(filter), now)
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("f.folder_name ILIKE ?", "%"+s+"%")
	}
	var rows []model.ArchiveFolderRow
	err := q.Select("f.*, u.full_name AS creator_name").
		Order("f.folder_created_at DESC").Scan(&rows).Error
	return rows, errors.Wrap(err, "list archive folders")
}

// Counts: jumlah per filter (badge tab).
func Counts(ctx context.Context, db *gorm.DB, now time.Time) (map[string]int64, error) {
	out := make(map[string]int64, len(dto.Filters))
	for _, f := range dto.Filters {
		var n int64
		if err := applyFilter(folders(db.WithContext(ctx)), f, now).Count(&n).Error; err != nil {
			return nil, errors.Wrap(err, "count archive folders")
		}
		out[f] = n
	}
	return out, nil
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArchiveFolderModel, error) {
	var m model.ArchiveFolderModel
	if err := db.WithContext(ctx).First(&m, "folder_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Dossier")
	}
	return &m, nil
}

func Files(ctx context.Context, db *gorm.DB, folderID uuid.UUID) ([]model.ArchiveFileModel, error) {
	var out []model.ArchiveFileModel
	err := db.WithContext(ctx).Where("file_folder_id = ?", folderID).
		Order("file_created_at DESC").Find(&out).Error
	return out, errors.Wrap(err, "list archive files")
}

func GetFile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArchiveFileModel, error) {
	var m model.ArchiveFileModel
	if err := db.WithContext(ctx).First(&m, "file_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Fichier")
	}
	return &m, nil
}

func applyPin(m *model.ArchiveFolderModel, form dto.FolderForm) error {
	m.FolderConfidential = form.Confidential
	if !form.Confidential {
		m.FolderPinHash = nil
		return nil
	}
	if form.Pin == "" {
		if m.FolderPinHash == nil {
			return helper.NewValidationError("Un code PIN est obligatoire pour un dossier confidentiel.")
		}
		return nil
	}
	h, err := HashPin(form.Pin)
	if err != nil {
		return err
	}
	m.FolderPinHash = &h
	return nil
}

func Create(ctx context.Context, db *gorm.DB, st storage.Store, actor *uuid.UUID, form dto.FolderForm, cover *multipart.FileHeader) (*model.ArchiveFolderModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m := &model.ArchiveFolderModel{
		FolderName:        form.Name,
		FolderInformation: helper.TrimPtr(form.Information),
		FolderCreatedBy:   actor,
	}
	if err := applyPin(m, form); err != nil {
		return nil, err
	}
	if cover != nil {
		stored, err := storage.SaveImageAsWebP(ctx, st, coverDir, cover, storage.CoverOptions)
		if err != nil {
			return nil, err
		}
		m.FolderCoverKey = &stored.Key
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if m.FolderCoverKey != nil {
			storage.DeleteQuiet(ctx, st, *m.FolderCoverKey)
		}
		return nil, errors.Wrap(err, "create archive folder")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID, form dto.FolderForm, cover *multipart.FileHeader) (*model.ArchiveFolderModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	m.FolderName = form.Name
	m.FolderInformation = helper.TrimPtr(form.Information)
	if err := applyPin(m, form); err != nil {
		return nil, err
	}

	var oldCover string
	if m.FolderCoverKey != nil && (cover != nil || form.RemoveCover) {
		oldCover = *m.FolderCoverKey
		m.FolderCoverKey = nil
	}
	if cover != nil {
		stored, err := storage.SaveImageAsWebP(ctx, st, coverDir, cover, storage.CoverOptions)
		if err != nil {
			return nil, err
		}
		m.FolderCoverKey = &stored.Key
	}
	if err := db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, errors.Wrap(err, "update archive folder")
	}
	storage.DeleteQuiet(ctx, st, oldCover)
	return m, nil
}

// SyncFileCount menyamakan folder_file_count dengan isi archive_files.
func SyncFileCount(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error {
	return errors.Wrap(tx.WithContext(ctx).Exec(
		`UPDATE archive_folders
		    SET folder_file_count = (SELECT COUNT(*) FROM archive_files WHERE file_folder_id = ?),
		        folder_updated_at = NOW()
		  WHERE folder_id = ?`, folderID, folderID).Error, "sync file count")
}

func AddFile(ctx context.Context, db *gorm.DB, st storage.Store, folderID uuid.UUID, actor *uuid.UUID, form dto.FileForm, fh *multipart.FileHeader) (*model.ArchiveFileModel, error) {
	form.Normalize()
	if err := helper.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if fh == nil || fh.Size == 0 {
		return nil, helper.NewValidationError("Veuillez choisir un fichier.")
	}
	if !constants.IsArchiveFile(fh.Filename) {
		return nil, helper.NewValidationError("Type de fichier non autorisé.")
	}
	if _, err := Get(ctx, db, folderID); err != nil {
		return nil, err
	}

	stored, err := storage.SaveFormFile(ctx, st, filesDir+"/"+folderID.String(), fh, int64(configs.MaxUploadMB)*1024*1024)
	if err != nil {
		return nil, err
	}
	name := form.Name
	if name == "" {
		name = stored.Name
	}
	f := &model.ArchiveFileModel{
		FileFolderID:    folderID,
		FileName:        name,
		FileKey:         stored.Key,
		FileOriginal:    stored.Name,
		FileType:        constants.FileExt(stored.Name),
		FileSize:        stored.Size,
		FileContentType: stored.ContentType,
		FileNote:        helper.TrimPtr(form.Note),
		FileUploadedBy:  actor,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return errors.Wrap(err, "create archive file")
		}
		return SyncFileCount(ctx, tx, folderID)
	})
	if err != nil {
		storage.DeleteQuiet(ctx, st, stored.Key)
		return nil, err
	}
	return f, nil
}

func DeleteFile(ctx context.Context, db *gorm.DB, st storage.Store, fileID uuid.UUID) (*model.ArchiveFileModel, error) {
	f, err := GetFile(ctx, db, fileID)
	if err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(f).Error; err != nil {
			return errors.Wrap(err, "delete archive file")
		}
		return SyncFileCount(ctx, tx, f.FileFolderID)
	})
	if err != nil {
		return nil, err
	}
	storage.DeleteQuiet(ctx, st, f.FileKey)
	return f, nil
}

func OpenFile(ctx context.Context, st storage.Store, f *model.ArchiveFileModel) (io.ReadCloser, error) {
	r, err := st.Open(ctx, f.FileKey)
	if err != nil {
		if errors.Cause(err) == storage.ErrNotFound {
			return nil, helper.NotFound("Fichier introuvable sur le stockage")
		}
		return nil, err
	}
	return r, nil
}

/* =======================================================================
   Corbeille
======================================================================= */

// Trash memindahkan dossier ke corbeille (soft delete).
func Trash(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArchiveFolderModel, error) {
	m, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Delete(m).Error; err != nil {
		return nil, errors.Wrap(err, "trash folder")
	}
	return m, nil
}

// TrashList: isi corbeille yang belum melewati retention.
func TrashList(ctx context.Context, db *gorm.DB, now time.Time, retentionDays int) ([]dto.TrashItem, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	var list []model.ArchiveFolderModel
	err := db.WithContext(ctx).Unscoped().
		Where("folder_deleted_at IS NOT NULL AND folder_deleted_at >= ?", cutoff).
		Order("folder_deleted_at DESC").Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "list trash")
	}
	return dto.ToTrashItems(list, now, retentionDays), nil
}

func getTrashed(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArchiveFolderModel, error) {
	var m model.ArchiveFolderModel
	err := db.WithContext(ctx).Unscoped().
		First(&m, "folder_id = ? AND folder_deleted_at IS NOT NULL", id).Error
	if err != nil {
		return nil, helper.DBError(err, "Dossier")
	}
	return &m, nil
}

func Restore(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ArchiveFolderModel, error) {
	m, err := getTrashed(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Unscoped().Model(m).Update("folder_deleted_at", nil).Error; err != nil {
		return nil, errors.Wrap(err, "restore folder")
	}
	return m, nil
}

// Purge menghapus permanen dossier di corbeille beserta file tersimpan.
func Purge(ctx context.Context, db *gorm.DB, st storage.Store, id uuid.UUID) (*model.ArchiveFolderModel, error) {
	m, err := getTrashed(ctx, db, id)
	if err != nil {
		return nil, err
	}
	keys, err := purgeRows(ctx, db, m)
	if err != nil {
		return nil, err
	}
	storage.DeleteQuiet(ctx, st, keys...)
	return m, nil
}

func purgeRows(ctx context.Context, db *gorm.DB, m *model.ArchiveFolderModel) ([]string, error) {
	var keys []string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ArchiveFileModel{}).
			Where("file_folder_id = ?", m.FolderID).
			Pluck("file_key", &keys).Error; err != nil {
			return errors.Wrap(err, "collect file keys")
		}
		if err := tx.Where("file_folder_id = ?", m.FolderID).Delete(&model.ArchiveFileModel{}).Error; err != nil {
			return errors.Wrap(err, "delete folder files")
		}
		return errors.Wrap(tx.Unscoped().Delete(m).Error, "purge folder")
	})
	if err != nil {
		return nil, err
	}
	if m.FolderCoverKey != nil {
		keys = append(keys, *m.FolderCoverKey)
	}
	return keys, nil
}

// PurgeExpired: hapus permanen semua dossier yang di corbeille lebih lama
// dari retention. Dipanggil cron harian & command purge-trash.
func PurgeExpired(ctx context.Context, db *gorm.DB, st storage.Store, now time.Time, retentionDays int) (int, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	var expired []model.ArchiveFolderModel
	if err := db.WithContext(ctx).Unscoped().
		Where("folder_deleted_at IS NOT NULL AND folder_deleted_at < ?", cutoff).
		Find(&expired).Error; err != nil {
		return 0, errors.Wrap(err, "find expired folders")
	}
	purged := 0
	for i := range expired {
		keys, err := purgeRows(ctx, db, &expired[i])
		if err != nil {
			return purged, err
		}
		storage.DeleteQuiet(ctx, st, keys...)
		purged++
	}
	return purged, nil
}
