// internal/domain/content/entity.go
package content

import (
	"time"
)

// HomeSection is one editable block of the homepage (hero slide, banner, promo)
type HomeSection struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Key        string    `gorm:"column:slug;uniqueIndex;not null;size:50" json:"key"`
	Title      string    `gorm:"size:200" json:"title"`
	TitleAr    string    `gorm:"size:200" json:"title_ar"`
	Subtitle   string    `gorm:"size:300" json:"subtitle"`
	SubtitleAr string    `gorm:"size:300" json:"subtitle_ar"`
	Body       string    `gorm:"type:text" json:"body"`
	BodyAr     string    `gorm:"type:text" json:"body_ar"`
	ImageURL   string    `gorm:"size:500" json:"image_url"`
	LinkURL    string    `gorm:"size:500" json:"link_url"`
	Position   int       `gorm:"default:0;index" json:"position"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SiteSetting is a key/value pair edited from the content console
type SiteSetting struct {
	Key       string    `gorm:"column:name;primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HomeSection) TableName() string { return "home_sections" }
func (SiteSetting) TableName() string { return "site_settings" }

// LocalizedTitle picks the Arabic title when requested and present
func (h *HomeSection) LocalizedTitle(lang string) string {
	if lang == "ar" && h.TitleAr != "" {
		return h.TitleAr
	}
	return h.Title
}

func (h *HomeSection) LocalizedSubtitle(lang string) string {
	if lang == "ar" && h.SubtitleAr != "" {
		return h.SubtitleAr
	}
	return h.Subtitle
}

func (h *HomeSection) LocalizedBody(lang string) string {
	if lang == "ar" && h.BodyAr != "" {
		return h.BodyAr
	}
	return h.Body
}

// Setting keys seeded on first start
const (
	SettingStoreName    = "store_name"
	SettingContactPhone = "contact_phone"
	SettingContactEmail = "contact_email"
	SettingWhatsApp     = "whatsapp"
	SettingAnnouncement = "announcement"
	SettingDeliveryNote = "delivery_note"
)

// DefaultSettings are inserted when missing
var DefaultSettings = map[string]string{
	SettingStoreName:    "LuxFakia",
	SettingContactPhone: "",
	SettingContactEmail: "",
	SettingWhatsApp:     "",
	SettingAnnouncement: "",
	SettingDeliveryNote: "Livraison partout au Maroc",
}
