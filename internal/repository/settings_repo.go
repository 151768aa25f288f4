package repository

import (
	"context"

	"backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	// Get returns the settings row, creating it with defaults on first access.
	Get(ctx context.Context) (*model.CompanySettings, error)
	Save(ctx context.Context, settings *model.CompanySettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*model.CompanySettings, error) {
	settings := model.CompanySettings{ID: model.CompanySettingsID, InvoicePrefix: "INV"}
	err := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
	if err != nil {
		return nil, err
	}
	if err := GetDB(ctx, r.db).First(&settings, model.CompanySettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *model.CompanySettings) error {
	settings.ID = model.CompanySettingsID
	return GetDB(ctx, r.db).Save(settings).Error
}
