// internal/domain/upload/entity.go
package upload

import (
	"fmt"
	"time"
)

// DbImage is an uploaded image stored in the database and served at /images/:id
type DbImage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Filename     string `gorm:"not null;size:255;uniqueIndex" json:"filename"`
	OriginalName string `gorm:"not null;size:255" json:"original_name"`
	MimeType     string `gorm:"not null;size:100" json:"mime_type"`
	Size         int64  `gorm:"not null" json:"size"`
	Data         []byte `gorm:"not null" json:"-"`

	// Image specific fields
	Width     int  `json:"width,omitempty"`
	Height    int  `json:"height,omitempty"`
	Optimized bool `gorm:"default:false" json:"optimized"`

	UploadedBy *uint     `gorm:"index" json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the table name for DbImage
func (DbImage) TableName() string { return "db_images" }

// URL is the public path of the image
func (i *DbImage) URL() string {
	return fmt.Sprintf("/images/%d", i.ID)
}

// GetFormattedSize returns human-readable file size
func (i *DbImage) GetFormattedSize() string {
	const unit = 1024
	if i.Size < unit {
		return fmt.Sprintf("%d B", i.Size)
	}

	div, exp := int64(unit), 0
	for n := i.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(i.Size)/float64(div), "KMGTPE"[exp])
}

// GetDimensions returns image dimensions as string
func (i *DbImage) GetDimensions() string {
	if i.Width > 0 && i.Height > 0 {
		return fmt.Sprintf("%dx%d", i.Width, i.Height)
	}
	return ""
}
