package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	st := NewLocalStore(t.TempDir(), "/media/")
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "documents/2025/01/a.txt", strings.NewReader("bonjour"), "text/plain"))

	rc, err := st.Open(ctx, "documents/2025/01/a.txt")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "bonjour", string(data))

	require.NoError(t, st.Delete(ctx, "documents/2025/01/a.txt"))
	_, err = st.Open(ctx, "documents/2025/01/a.txt")
	assert.Equal(t, ErrNotFound, err)
	assert.Equal(t, ErrNotFound, st.Delete(ctx, "documents/2025/01/a.txt"))
}

func TestLocalStore_PathTraversalStaysInRoot(t *testing.T) {
	root := t.TempDir()
	st := NewLocalStore(root, "/media")
	p, err := st.path("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, root))
}

func TestLocalStore_URL(t *testing.T) {
	st := NewLocalStore(t.TempDir(), "/media")
	assert.Equal(t, "/media/public/eleves/x.webp", st.URL("public/eleves/x.webp"))
	assert.Equal(t, "", st.URL("archives/x.pdf"))
	assert.Equal(t, "", st.URL(""))
}

func TestBuildKey(t *testing.T) {
	k := BuildKey("/public/eleves/", "Photo Élève 1.JPG")
	assert.True(t, strings.HasPrefix(k, "public/eleves/"), k)
	assert.True(t, strings.HasSuffix(k, ".jpg"), k)
	assert.Contains(t, k, "photo-eleve-1_")

	assert.NotEqual(t, BuildKey("x", "a.pdf"), BuildKey("x", "a.pdf"))
}

func samplePNG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 120, 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestConvertToWebP_Downscale(t *testing.T) {
	out, err := ConvertToWebP(bytes.NewReader(samplePNG(t, 200, 100)), "a.png", WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertToWebP_Thumb(t *testing.T) {
	out, err := ConvertToWebP(bytes.NewReader(samplePNG(t, 120, 60)), "a.png", WebPOptions{Thumb: 40})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestConvertToWebP_Unsupported(t *testing.T) {
	_, err := ConvertToWebP(strings.NewReader("%PDF-1.4 hello"), "a.pdf", PhotoOptions)
	require.Error(t, err)
	assert.Equal(t, ErrUnsupportedImage, errors.Cause(err))
}
