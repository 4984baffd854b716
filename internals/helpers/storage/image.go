package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

type WebPOptions struct {
	MaxW    int     // 0 = tanpa batas
	MaxH    int     // 0 = tanpa batas
	Quality float32 // 1..100
	// Thumb > 0 → crop persegi Thumb x Thumb (foto siswa)
	Thumb int
}

var (
	PhotoOptions = WebPOptions{MaxW: 512, MaxH: 512, Quality: 80}
	CoverOptions = WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}
)

// ConvertToWebP: baca → decode → resize/crop → encode webp.
func ConvertToWebP(r io.Reader, filename string, opt WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	if opt.Thumb > 0 {
		img = imaging.Fill(img, opt.Thumb, opt.Thumb, imaging.Center, imaging.Lanczos)
	} else {
		img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	}
	return encodeWebP(img, opt.Quality)
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, errors.Wrap(ErrUnsupportedImage, "empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"), ext == ".jpg", ext == ".jpeg":
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"), ext == ".png":
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"), ext == ".webp":
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		return nil, errors.Wrap(ErrUnsupportedImage, fmt.Sprintf("%s / %s", ct, ext))
	}
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedImage, err.Error())
	}
	return img, nil
}

// keep aspect, CatmullRom
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality float32) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}
