package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/cache"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	settingsCacheKey = "settings:company"
	settingsCacheTTL = 5 * time.Minute
)

var invoicePrefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

type UpdateSettingsInput struct {
	CompanyName    *string
	RegistrationNo *string
	Address        *string
	Phone          *string
	Email          *string
	BankName       *string
	BankAccount    *string
	InvoicePrefix  *string
}

type SettingsService interface {
	Get(ctx context.Context) (model.CompanySettings, error)
	Update(ctx context.Context, userID string, in UpdateSettingsInput) (model.CompanySettings, error)
}

type settingsService struct {
	repo      repository.SettingsRepository
	auditRepo repository.AuditRepository
	store     cache.Store
	log       *logrus.Logger
}

func NewSettingsService(repo repository.SettingsRepository, auditRepo repository.AuditRepository, store cache.Store, log *logrus.Logger) SettingsService {
	return &settingsService{repo: repo, auditRepo: auditRepo, store: store, log: log}
}

// Get serves the settings row from cache, loading it at most every five minutes.
func (s *settingsService) Get(ctx context.Context) (model.CompanySettings, error) {
	return cache.GetOrLoad(ctx, s.store, settingsCacheKey, settingsCacheTTL, func(ctx context.Context) (model.CompanySettings, error) {
		settings, err := s.repo.Get(ctx)
		if err != nil {
			return model.CompanySettings{}, fmt.Errorf("failed to load company settings: %w", err)
		}
		return *settings, nil
	})
}

func (s *settingsService) Update(ctx context.Context, userID string, in UpdateSettingsInput) (model.CompanySettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return model.CompanySettings{}, fmt.Errorf("failed to load company settings: %w", err)
	}

	if in.InvoicePrefix != nil {
		prefix := strings.ToUpper(strings.TrimSpace(*in.InvoicePrefix))
		if !invoicePrefixPattern.MatchString(prefix) {
			return model.CompanySettings{}, apperror.Validation("invoice_prefix must be 1-10 letters or digits")
		}
		settings.InvoicePrefix = prefix
	}
	if in.Phone != nil {
		phone, err := normalizePhone(*in.Phone)
		if err != nil {
			return model.CompanySettings{}, err
		}
		settings.Phone = phone
	}
	if in.CompanyName != nil {
		settings.CompanyName = *in.CompanyName
	}
	if in.RegistrationNo != nil {
		settings.RegistrationNo = *in.RegistrationNo
	}
	if in.Address != nil {
		settings.Address = *in.Address
	}
	if in.Email != nil {
		settings.Email = *in.Email
	}
	if in.BankName != nil {
		settings.BankName = *in.BankName
	}
	if in.BankAccount != nil {
		settings.BankAccount = *in.BankAccount
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return model.CompanySettings{}, fmt.Errorf("failed to save company settings: %w", err)
	}
	if err := writeAudit(ctx, s.auditRepo, userID, model.ActionUpdateSettings, fmt.Sprint(settings.ID), settings.CompanyName, in); err != nil {
		return model.CompanySettings{}, err
	}

	if err := s.store.Delete(ctx, settingsCacheKey); err != nil && s.log != nil {
		s.log.WithField("module", "settings").Warn("failed to invalidate settings cache: " + err.Error())
	}
	return *settings, nil
}
