package dto

import (
	"strings"
	"time"

	"schoolku_backend/internals/features/archives/archive/model"
	helper "schoolku_backend/internals/helpers"
)

// Filter list dossier.
const (
	FilterAll          = "tous"
	FilterRecent       = "recent"
	FilterModified     = "modifies"
	FilterConfidential = "confidentiel"
)

var Filters = []string{FilterAll, FilterRecent, FilterModified, FilterConfidential}

// RecentWindow: "récent" / "modifié" = 30 hari terakhir.
const RecentWindow = 30 * 24 * time.Hour

func NormalizeFilter(s string) string {
	for _, f := range Filters {
		if s == f {
			return s
		}
	}
	return FilterAll
}

type FolderForm struct {
	Name         string `form:"folder_name" validate:"required,notblank,max=200" label:"Nom du dossier"`
	Information  string `form:"folder_information" validate:"omitempty,max=5000" label:"Informations"`
	Confidential bool   `form:"-"`
	Pin          string `form:"folder_pin" validate:"omitempty,numeric,min=4,max=8" label:"Code PIN"`
	RemoveCover  bool   `form:"-"`
}

func (f *FolderForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Information = strings.TrimSpace(f.Information)
	f.Pin = strings.TrimSpace(f.Pin)
}

func FromModel(m *model.ArchiveFolderModel) FolderForm {
	f := FolderForm{Name: m.FolderName, Confidential: m.FolderConfidential}
	if m.FolderInformation != nil {
		f.Information = *m.FolderInformation
	}
	return f
}

type FileForm struct {
	Name string `form:"file_name" validate:"omitempty,max=200" label:"Nom du document"`
	Note string `form:"file_note" validate:"omitempty,max=2000" label:"Note"`
}

func (f *FileForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Note = strings.TrimSpace(f.Note)
}

type PinForm struct {
	Pin string `form:"folder_pin"`
}

// TrashItem: dossier di corbeille + sisa hari sebelum purge.
type TrashItem struct {
	model.ArchiveFolderModel
	DaysLeft int
}

// DaysLeft: retention - hari penuh sejak dihapus, minimal 0.
func DaysLeft(deletedAt, now time.Time, retentionDays int) int {
	elapsed := int(now.Sub(deletedAt).Hours() / 24)
	left := retentionDays - elapsed
	if left < 0 {
		return 0
	}
	return left
}

func ToTrashItems(list []model.ArchiveFolderModel, now time.Time, retentionDays int) []TrashItem {
	out := make([]TrashItem, 0, len(list))
	for _, m := range list {
		it := TrashItem{ArchiveFolderModel: m}
		if m.FolderDeletedAt.Valid {
			it.DaysLeft = DaysLeft(m.FolderDeletedAt.Time, now, retentionDays)
		}
		out = append(out, it)
	}
	return out
}

// FileSizeLabel dipakai view detail.
func FileSizeLabel(f model.ArchiveFileModel) string {
	if f.FileSize <= 0 {
		return "N/A"
	}
	return helper.FileSize(f.FileSize)
}
