// internal/domain/content/service.go
package content

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/luxfakia/storefront/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSectionNotFound  = errors.New("home section not found")
	ErrDuplicateSection = errors.New("home section key already exists")
	ErrInvalidSection   = errors.New("invalid home section")
	ErrUnknownSetting   = errors.New("unknown setting")
)

var sectionKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,49}$`)

// Service handles homepage content and site settings
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new content service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SectionInput represents home section create and edit data
type SectionInput struct {
	Key        string `form:"key" binding:"required"`
	Title      string `form:"title"`
	TitleAr    string `form:"title_ar"`
	Subtitle   string `form:"subtitle"`
	SubtitleAr string `form:"subtitle_ar"`
	Body       string `form:"body"`
	BodyAr     string `form:"body_ar"`
	ImageURL   string `form:"image_url"`
	LinkURL    string `form:"link_url"`
	Position   int    `form:"position"`
	IsActive   bool   `form:"is_active"`
}

// ListSections returns sections by position; activeOnly is the storefront view
func (s *Service) ListSections(activeOnly bool) ([]HomeSection, error) {
	var sections []HomeSection
	query := s.db.Order("position ASC, id ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve home sections: %w", err)
	}
	return sections, nil
}

// GetSection retrieves one section
func (s *Service) GetSection(id uint) (*HomeSection, error) {
	var section HomeSection
	if err := s.db.First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve home section: %w", err)
	}
	return &section, nil
}

// CreateSection adds a homepage block
func (s *Service) CreateSection(req *SectionInput) (*HomeSection, error) {
	key, err := s.checkKey(req.Key, 0)
	if err != nil {
		return nil, err
	}

	section := HomeSection{Key: key}
	applySection(&section, req)

	if err := s.db.Create(&section).Error; err != nil {
		return nil, fmt.Errorf("failed to create home section: %w", err)
	}
	return &section, nil
}

// UpdateSection replaces every editable field of a section
func (s *Service) UpdateSection(id uint, req *SectionInput) (*HomeSection, error) {
	section, err := s.GetSection(id)
	if err != nil {
		return nil, err
	}
	key, err := s.checkKey(req.Key, id)
	if err != nil {
		return nil, err
	}

	section.Key = key
	applySection(section, req)
	if err := s.db.Save(section).Error; err != nil {
		return nil, fmt.Errorf("failed to update home section: %w", err)
	}
	return section, nil
}

// DeleteSection removes a section
func (s *Service) DeleteSection(id uint) error {
	result := s.db.Delete(&HomeSection{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete home section: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// GetSettings returns every setting, defaults filled in for missing keys
func (s *Service) GetSettings() (map[string]string, error) {
	var rows []SiteSetting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve settings: %w", err)
	}

	settings := make(map[string]string, len(DefaultSettings)+len(rows))
	for k, v := range DefaultSettings {
		settings[k] = v
	}
	for _, r := range rows {
		settings[r.Key] = r.Value
	}
	return settings, nil
}

// GetSetting returns one value or fallback
func (s *Service) GetSetting(key, fallback string) string {
	var row SiteSetting
	if err := s.db.Where("name = ?", key).First(&row).Error; err != nil {
		if v, ok := DefaultSettings[key]; ok {
			return v
		}
		return fallback
	}
	return row.Value
}

// UpdateSettings upserts known keys in one transaction. Unknown keys fail the whole batch.
func (s *Service) UpdateSettings(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		if _, ok := DefaultSettings[k]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, k := range keys {
			row := SiteSetting{Key: k, Value: strings.TrimSpace(values[k])}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("failed to save setting %s: %w", k, err)
			}
		}
		return nil
	})
}

// EnsureDefaults inserts default settings that are missing
func (s *Service) EnsureDefaults() error {
	for k, v := range DefaultSettings {
		row := SiteSetting{Key: k, Value: v}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", k, err)
		}
	}
	return nil
}

func (s *Service) checkKey(raw string, exceptID uint) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if !sectionKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: key must be lowercase letters, digits, - or _", ErrInvalidSection)
	}

	var count int64
	q := s.db.Model(&HomeSection{}).Where("slug = ?", key)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check section key: %w", err)
	}
	if count > 0 {
		return "", ErrDuplicateSection
	}
	return key, nil
}

func applySection(h *HomeSection, req *SectionInput) {
	h.Title = strings.TrimSpace(req.Title)
	h.TitleAr = strings.TrimSpace(req.TitleAr)
	h.Subtitle = strings.TrimSpace(req.Subtitle)
	h.SubtitleAr = strings.TrimSpace(req.SubtitleAr)
	h.Body = req.Body
	h.BodyAr = req.BodyAr
	h.ImageURL = strings.TrimSpace(req.ImageURL)
	h.LinkURL = strings.TrimSpace(req.LinkURL)
	h.Position = req.Position
	h.IsActive = req.IsActive
}
