package upload

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	cfg := &config.Config{Upload: config.UploadConfig{
		MaxSize:           1 << 20,
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "webp"},
		ImageMaxWidth:     1200,
		ImageMaxHeight:    1200,
		JPEGQuality:       80,
	}}
	return NewService(testutil.NewDB(t, &DbImage{}), cfg)
}

func encodePNG(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, h/2, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStoreImageResizes(t *testing.T) {
	svc := newService(t)
	uploader := uint(3)

	img, err := svc.StoreImage("dattes.PNG", encodePNG(t, 2400, 600), &uploader)
	require.NoError(t, err)
	assert.True(t, img.Optimized)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, 1200, img.Width)
	assert.Equal(t, 300, img.Height)
	assert.Equal(t, "1200x300", img.GetDimensions())
	assert.True(t, len(img.Filename) > len(".png"))
	assert.Equal(t, ".png", img.Filename[len(img.Filename)-4:])
	assert.Equal(t, int64(len(img.Data)), img.Size)

	decoded, err := png.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, 1200, decoded.Bounds().Dx())

	loaded, err := svc.GetImage(img.ID)
	require.NoError(t, err)
	assert.Equal(t, img.Data, loaded.Data)
	assert.Equal(t, uploader, *loaded.UploadedBy)
}

func TestStoreImageKeepsSmallDimensions(t *testing.T) {
	svc := newService(t)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 320, 200)), nil))

	img, err := svc.StoreImage("noix.jpeg", buf.Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MimeType)
	assert.Equal(t, 320, img.Width)
	assert.Equal(t, 200, img.Height)
	assert.Nil(t, img.UploadedBy)
}

func TestStoreImageFallsBackToOriginal(t *testing.T) {
	svc := newService(t)
	raw := []byte("definitely not an image")

	img, err := svc.StoreImage("broken.webp", raw, nil)
	require.NoError(t, err)
	assert.False(t, img.Optimized)
	assert.Equal(t, raw, img.Data)
	assert.Equal(t, "image/webp", img.MimeType)
	assert.Zero(t, img.Width)
}

func TestStoreImageSkipsOversizedDimensions(t *testing.T) {
	svc := newService(t)

	// rewrite the IHDR of a 1x1 PNG to declare 50000x50000 pixels
	raw := encodePNG(t, 1, 1)
	binary.BigEndian.PutUint32(raw[16:20], 50000)
	binary.BigEndian.PutUint32(raw[20:24], 50000)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))

	_, _, _, _, err := svc.Optimize(raw)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	img, err := svc.StoreImage("bomb.png", raw, nil)
	require.NoError(t, err)
	assert.False(t, img.Optimized)
	assert.Equal(t, raw, img.Data)
	assert.Zero(t, img.Width)
}

func TestStoreImageValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.StoreImage("script.exe", []byte("MZ"), nil)
	assert.ErrorIs(t, err, ErrInvalidFile)

	_, err = svc.StoreImage("noext", []byte("x"), nil)
	assert.ErrorIs(t, err, ErrInvalidFile)

	_, err = svc.StoreImage("empty.png", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.StoreImage("huge.png", make([]byte, 2<<20), nil)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	svc.config.Upload.AllowedExtensions = []string{"png"}
	_, err = svc.StoreImage("photo.jpg", []byte("x"), nil)
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestListAndDeleteImages(t *testing.T) {
	svc := newService(t)

	first, err := svc.StoreImage("a.png", encodePNG(t, 10, 10), nil)
	require.NoError(t, err)
	second, err := svc.StoreImage("b.png", encodePNG(t, 10, 10), nil)
	require.NoError(t, err)

	images, err := svc.ListImages(0)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, second.ID, images[0].ID)
	assert.Empty(t, images[0].Data)
	assert.Equal(t, fmt.Sprintf("/images/%d", first.ID), first.URL())

	require.NoError(t, svc.DeleteImage(first.ID))
	assert.ErrorIs(t, svc.DeleteImage(first.ID), ErrImageNotFound)
	_, err = svc.GetImage(first.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)
}
