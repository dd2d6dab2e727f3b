// internal/domain/upload/service.go
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/luxfakia/storefront/internal/config"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrInvalidFile   = errors.New("file type not allowed")
	ErrFileTooLarge  = errors.New("file too large")
	ErrEmptyFile     = errors.New("empty file")
	ErrImageTooLarge = errors.New("image dimensions too large to optimize")
)

const defaultMaxPixels = 40000000

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Service handles image upload business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UploadImage validates a multipart file and stores it optimized
func (s *Service) UploadImage(header *multipart.FileHeader, uploadedBy *uint) (*DbImage, error) {
	if header == nil {
		return nil, ErrEmptyFile
	}
	if limit := s.config.Upload.MaxSize; limit > 0 && header.Size > limit {
		return nil, ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := s.readLimited(file)
	if err != nil {
		return nil, err
	}
	return s.StoreImage(header.Filename, data, uploadedBy)
}

// StoreImage optimizes data and saves it as a DbImage. Images that cannot be
// decoded are stored as received.
func (s *Service) StoreImage(originalName string, data []byte, uploadedBy *uint) (*DbImage, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !s.isAllowed(ext) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, ext)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if limit := s.config.Upload.MaxSize; limit > 0 && int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}

	img := DbImage{
		OriginalName: filepath.Base(originalName),
		MimeType:     mimeTypes[ext],
		Data:         data,
		UploadedBy:   uploadedBy,
	}

	if out, mime, w, h, err := s.Optimize(data); err == nil {
		img.Data, img.MimeType, img.Width, img.Height = out, mime, w, h
		img.Optimized = true
		ext = extensionFor(mime)
	}

	img.Size = int64(len(img.Data))
	img.Filename = uuid.New().String() + ext

	if err := s.db.Create(&img).Error; err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	return &img, nil
}

// Optimize decodes data, shrinks it to fit the configured bounds and re-encodes it.
// PNG and GIF sources become PNG, everything else JPEG.
// Images declaring more pixels than IMAGE_MAX_PIXELS are never decoded.
func (s *Service) Optimize(data []byte) ([]byte, string, int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("failed to read image header: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(s.maxPixels()) {
		return nil, "", 0, 0, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := s.resize(src)
	b := dst.Bounds()

	var buf bytes.Buffer
	switch format {
	case "png", "gif":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, dst); err != nil {
			return nil, "", 0, 0, fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), "image/png", b.Dx(), b.Dy(), nil
	default:
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.quality()}); err != nil {
			return nil, "", 0, 0, fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", b.Dx(), b.Dy(), nil
	}
}

// GetImage retrieves an image with its bytes
func (s *Service) GetImage(id uint) (*DbImage, error) {
	var img DbImage
	if err := s.db.First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to retrieve image: %w", err)
	}
	return &img, nil
}

// ListImages returns image metadata, newest first
func (s *Service) ListImages(limit int) ([]DbImage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var images []DbImage
	if err := s.db.Omit("data").Order("created_at DESC, id DESC").Limit(limit).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve images: %w", err)
	}
	return images, nil
}

// DeleteImage removes an image
func (s *Service) DeleteImage(id uint) error {
	result := s.db.Delete(&DbImage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (s *Service) resize(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	maxW, maxH := s.config.Upload.ImageMaxWidth, s.config.Upload.ImageMaxHeight
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return src
	}

	scale := float64(maxW) / float64(w)
	if hs := float64(maxH) / float64(h); hs < scale {
		scale = hs
	}
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func (s *Service) readLimited(r io.Reader) ([]byte, error) {
	limit := s.config.Upload.MaxSize
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

func (s *Service) isAllowed(ext string) bool {
	if _, known := mimeTypes[ext]; !known {
		return false
	}
	allowed := s.config.Upload.AllowedExtensions
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if "."+strings.TrimPrefix(strings.ToLower(a), ".") == ext {
			return true
		}
	}
	return false
}

func (s *Service) maxPixels() int {
	if n := s.config.Upload.ImageMaxPixels; n > 0 {
		return n
	}
	return defaultMaxPixels
}

func (s *Service) quality() int {
	if q := s.config.Upload.JPEGQuality; q > 0 && q <= 100 {
		return q
	}
	return jpeg.DefaultQuality
}

func extensionFor(mime string) string {
	if mime == "image/png" {
		return ".png"
	}
	return ".jpg"
}
