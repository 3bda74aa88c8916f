package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/craftyard/craftyard-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default withdrawal bounds used when the site_settings table has no rows.
const (
	DefaultMinWithdrawalAmount = 10
	DefaultMaxWithdrawalAmount = 10000
)

// Settings is the typed view over the site_settings key/value table
type Settings struct {
	MinWithdrawalAmount float64 `json:"min_withdrawal_amount"`
	MaxWithdrawalAmount float64 `json:"max_withdrawal_amount"`
}

// SettingsService loads and updates platform-wide settings
type SettingsService interface {
	Load() (*Settings, error)
	UpdateWithdrawalBounds(min, max float64) (*Settings, error)
}

type dbSettingsService struct {
	db    *gorm.DB
	cache *SettingsCache // nil when Redis is not configured
}

var settingsServiceInstance SettingsService

// InitSettingsService initializes the settings service. The cache may be
// nil; lookups then always hit the database.
func InitSettingsService(db *gorm.DB, cache *SettingsCache) SettingsService {
	settingsServiceInstance = &dbSettingsService{db: db, cache: cache}
	return settingsServiceInstance
}

// GetSettingsService returns the initialized settings service instance
func GetSettingsService() SettingsService {
	return settingsServiceInstance
}

// SetSettingsService sets the settings service instance (primarily for testing)
func SetSettingsService(service SettingsService) {
	settingsServiceInstance = service
}

func (s *dbSettingsService) Load() (*Settings, error) {
	ctx := context.Background()

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	settings := &Settings{
		MinWithdrawalAmount: DefaultMinWithdrawalAmount,
		MaxWithdrawalAmount: DefaultMaxWithdrawalAmount,
	}

	var rows []models.SiteSetting
	if err := s.db.Where("key IN ?", []string{
		models.SettingMinWithdrawalAmount,
		models.SettingMaxWithdrawalAmount,
	}).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load site settings: %w", err)
	}

	for _, row := range rows {
		value, err := strconv.ParseFloat(row.Value, 64)
		if err != nil {
			log.Printf("ignoring malformed site setting %q=%q: %v", row.Key, row.Value, err)
			continue
		}
		switch row.Key {
		case models.SettingMinWithdrawalAmount:
			settings.MinWithdrawalAmount = value
		case models.SettingMaxWithdrawalAmount:
			settings.MaxWithdrawalAmount = value
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, settings)
	}

	return settings, nil
}

func (s *dbSettingsService) UpdateWithdrawalBounds(min, max float64) (*Settings, error) {
	if min < 0 || max <= 0 || min > max {
		return nil, ErrValidation("withdrawal bounds must satisfy 0 <= min <= max")
	}

	pairs := map[string]float64{
		models.SettingMinWithdrawalAmount: min,
		models.SettingMaxWithdrawalAmount: max,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range pairs {
			setting := models.SiteSetting{
				Key:   key,
				Value: strconv.FormatFloat(value, 'f', -1, 64),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error; err != nil {
				return fmt.Errorf("failed to save setting %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(context.Background())
	}

	return &Settings{MinWithdrawalAmount: min, MaxWithdrawalAmount: max}, nil
}
