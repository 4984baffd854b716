package constants

import (
	"path/filepath"
	"strings"
)

var archiveExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	"txt": true, "csv": true, "odt": true, "ods": true, "odp": true,
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "svg": true, "webp": true,
	"mp3": true, "mp4": true, "wav": true, "avi": true, "mov": true, "wmv": true, "flv": true,
	"zip": true, "rar": true, "7z": true, "tar": true, "gz": true,
}

var imageExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true, "webp": true}

// pièces jointes (inscriptions, doléances)
var attachmentExtensions = map[string]bool{"pdf": true, "png": true, "jpg": true, "jpeg": true, "gif": true}

// FileExt: "Rapport.PDF" → "pdf"
func FileExt(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func IsArchiveFile(filename string) bool    { return archiveExtensions[FileExt(filename)] }
func IsImageFile(filename string) bool      { return imageExtensions[FileExt(filename)] }
func IsAttachmentFile(filename string) bool { return attachmentExtensions[FileExt(filename)] }

// FileIcon dipakai view arsip (bootstrap-icons).
func FileIcon(ext string) string {
	switch strings.ToLower(ext) {
	case "pdf":
		return "bi-file-earmark-pdf"
	case "doc", "docx", "odt", "txt":
		return "bi-file-earmark-word"
	case "xls", "xlsx", "ods", "csv":
		return "bi-file-earmark-excel"
	case "ppt", "pptx", "odp":
		return "bi-file-earmark-ppt"
	case "jpg", "jpeg", "png", "gif", "bmp", "svg", "webp":
		return "bi-file-earmark-image"
	case "mp3", "wav":
		return "bi-file-earmark-music"
	case "mp4", "avi", "mov", "wmv", "flv":
		return "bi-file-earmark-play"
	case "zip", "rar", "7z", "tar", "gz":
		return "bi-file-earmark-zip"
	default:
		return "bi-file-earmark"
	}
}
