// Package storage menyimpan file upload (foto, dokumen, arsip) ke Aliyun OSS
// atau ke disk lokal jika OSS tidak dikonfigurasi.
package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	helper "schoolku_backend/internals/helpers"
)

// PublicPrefix: key di bawah prefix ini boleh diakses langsung (foto, cover).
const PublicPrefix = "public/"

var ErrNotFound = errors.New("object not found")

// Store adalah facade upload/hapus yang seragam untuk controller.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Kind() string
}

// Stored adalah hasil upload yang disimpan di DB.
type Stored struct {
	Key         string
	Name        string
	ContentType string
	Size        int64
}

// NewFromEnv: OSS jika ALI_OSS_* lengkap, selain itu disk lokal.
func NewFromEnv(localRoot string) Store {
	if s, err := NewOSSStoreFromEnv(getEnv("ALI_OSS_PREFIX")); err == nil {
		log.Printf("[INFO] storage: aliyun oss bucket=%s", s.BucketName)
		return s
	} else if getEnv("ALI_OSS_BUCKET") != "" {
		log.Printf("[WARN] storage: oss tidak bisa dipakai (%v), fallback ke disk", err)
	}
	log.Printf("[INFO] storage: disk lokal %s", localRoot)
	return NewLocalStore(localRoot, "/media")
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

/* =======================================================================
   Upload helpers
======================================================================= */

// SaveFormFile upload apa adanya ke dir.
func SaveFormFile(ctx context.Context, st Store, dir string, fh *multipart.FileHeader, maxBytes int64) (Stored, error) {
	if fh == nil {
		return Stored{}, fiber.NewError(fiber.StatusBadRequest, "Fichier manquant")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return Stored{}, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("Fichier trop volumineux (max %d Mo)", maxBytes/(1024*1024)))
	}
	src, err := fh.Open()
	if err != nil {
		return Stored{}, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	ct, reader, err := detectContentType(src, fh.Filename)
	if err != nil {
		return Stored{}, err
	}
	key := BuildKey(dir, fh.Filename)
	if err := st.Put(ctx, key, reader, ct); err != nil {
		return Stored{}, errors.Wrap(err, "put object")
	}
	return Stored{Key: key, Name: filepath.Base(fh.Filename), ContentType: ct, Size: fh.Size}, nil
}

// SaveImageAsWebP: decode → resize → encode webp → upload.
func SaveImageAsWebP(ctx context.Context, st Store, dir string, fh *multipart.FileHeader, opt WebPOptions) (Stored, error) {
	if fh == nil {
		return Stored{}, fiber.NewError(fiber.StatusBadRequest, "Image manquante")
	}
	src, err := fh.Open()
	if err != nil {
		return Stored{}, errors.Wrap(err, "open upload")
	}
	defer src.Close()

	data, err := ConvertToWebP(src, fh.Filename, opt)
	if err != nil {
		if errors.Cause(err) == ErrUnsupportedImage {
			return Stored{}, fiber.NewError(fiber.StatusUnsupportedMediaType, "Format d'image non supporté (jpg/png/webp)")
		}
		return Stored{}, err
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
	key := BuildKey(dir, base+".webp")
	if err := st.Put(ctx, key, bytes.NewReader(data), "image/webp"); err != nil {
		return Stored{}, errors.Wrap(err, "put object")
	}
	return Stored{Key: key, Name: base + ".webp", ContentType: "image/webp", Size: int64(len(data))}, nil
}

// DeleteQuiet menghapus key jika ada; error hanya di-log.
func DeleteQuiet(ctx context.Context, st Store, keys ...string) {
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err := st.Delete(ctx, k); err != nil && errors.Cause(err) != ErrNotFound {
			log.Printf("[WARN] storage: hapus %s: %v", k, err)
		}
	}
}

/* =======================================================================
   Key utils
======================================================================= */

// BuildKey → dir/yyyy/mm/<slug>_<rand>.<ext>
func BuildKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	now := time.Now()
	parts := []string{}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, now.Format("2006"), now.Format("01"),
		fmt.Sprintf("%s_%s%s", helper.Slugify(base, 60), randHex(4), ext))
	return strings.Join(parts, "/")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType: ekstensi + sniff 512B.
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", nil, errors.Wrap(err, "rewind upload")
	}
	if n > 0 && (ct == "" || ct == "application/octet-stream") {
		ct = http.DetectContentType(head[:n])
	}
	switch ext {
	case ".webp":
		ct = "image/webp"
	case ".svg":
		ct = "image/svg+xml"
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct, src, nil
}
