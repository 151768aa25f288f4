package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/ttacon/libphonenumber"
)

const defaultPhoneRegion = "MY"

// --- Contact DTO ---

type ContactPayload struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsPrimary bool   `json:"is_primary"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsPrimary bool      `json:"is_primary"`
}

// --- Company DTOs ---

type CreateCompanyRequest struct {
	Name           string           `json:"name" binding:"required"`
	Type           string           `json:"type" binding:"required,oneof=client vendor both"`
	RegistrationNo string           `json:"registration_no"`
	Address        string           `json:"address"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email"`
	Contacts       []ContactPayload `json:"contacts"`
}

type UpdateCompanyRequest struct {
	Name           *string           `json:"name"`
	Type           *string           `json:"type" binding:"omitempty,oneof=client vendor both"`
	RegistrationNo *string           `json:"registration_no"`
	Address        *string           `json:"address"`
	Phone          *string           `json:"phone"`
	Email          *string           `json:"email"`
	IsActive       *bool             `json:"is_active"`
	Contacts       *[]ContactPayload `json:"contacts"` // nil = untouched, [] = clear all
}

type CompanyResponse struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Type           string            `json:"type"`
	RegistrationNo string            `json:"registration_no"`
	Address        string            `json:"address"`
	Phone          string            `json:"phone"`
	Email          string            `json:"email"`
	IsActive       bool              `json:"is_active"`
	Contacts       []ContactResponse `json:"contacts"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// --- Interface ---

type CompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (CompanyResponse, error)
	List(ctx context.Context, companyType, search string, page, limit int) ([]CompanyResponse, int64, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
	txManager   repository.TransactionManager
}

func NewCompanyService(companyRepo repository.CompanyRepository, txManager repository.TransactionManager) CompanyService {
	return &companyService{companyRepo: companyRepo, txManager: txManager}
}

// --- Validation helpers ---

// normalizePhone formats a phone number as E.164, assuming Malaysia when no
// country code is given. Empty input stays empty.
func normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := libphonenumber.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", apperror.Validation("invalid phone number %q", raw)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", apperror.Validation("invalid phone number %q", raw)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.Validation("invalid email %q", email)
	}
	return nil
}

func toContactModels(payloads []ContactPayload) ([]model.Contact, error) {
	contacts := make([]model.Contact, 0, len(payloads))
	for i, p := range payloads {
		if strings.TrimSpace(p.Name) == "" {
			return nil, apperror.Validation("contacts[%d]: name is required", i)
		}
		phone, err := normalizePhone(p.Phone)
		if err != nil {
			return nil, err
		}
		if err := validateEmail(p.Email); err != nil {
			return nil, err
		}
		contacts = append(contacts, model.Contact{
			Name:      strings.TrimSpace(p.Name),
			Position:  p.Position,
			Phone:     phone,
			Email:     p.Email,
			IsPrimary: p.IsPrimary,
		})
	}
	return contacts, nil
}

// --- CRUD ---

func (s *companyService) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return CompanyResponse{}, err
	}
	if err := validateEmail(req.Email); err != nil {
		return CompanyResponse{}, err
	}
	contacts, err := toContactModels(req.Contacts)
	if err != nil {
		return CompanyResponse{}, err
	}

	company := &model.Company{
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		RegistrationNo: req.RegistrationNo,
		Address:        req.Address,
		Phone:          phone,
		Email:          req.Email,
		IsActive:       true,
		Contacts:       contacts, // GORM fills CompanyID on cascade create
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		if repository.IsDuplicateKey(err) {
			return CompanyResponse{}, apperror.Validation("company %s already exists", company.Name)
		}
		return CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}
	return toCompanyResponse(*company), nil
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (CompanyResponse, error) {
	var company *model.Company
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		company, err = s.companyRepo.FindByID(txCtx, id)
		if err != nil {
			return lookupErr(err, "company %s not found", id)
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperror.Validation("name cannot be empty")
			}
			company.Name = name
		}
		if req.Type != nil {
			company.Type = *req.Type
		}
		if req.Phone != nil {
			phone, err := normalizePhone(*req.Phone)
			if err != nil {
				return err
			}
			company.Phone = phone
		}
		if req.Email != nil {
			if err := validateEmail(*req.Email); err != nil {
				return err
			}
			company.Email = *req.Email
		}
		if req.RegistrationNo != nil {
			company.RegistrationNo = *req.RegistrationNo
		}
		if req.Address != nil {
			company.Address = *req.Address
		}
		if req.IsActive != nil {
			company.IsActive = *req.IsActive
		}

		if err := s.companyRepo.Update(txCtx, company); err != nil {
			if repository.IsDuplicateKey(err) {
				return apperror.Validation("company %s already exists", company.Name)
			}
			return fmt.Errorf("failed to update company: %w", err)
		}

		if req.Contacts != nil {
			contacts, err := toContactModels(*req.Contacts)
			if err != nil {
				return err
			}
			if err := s.companyRepo.ReplaceContacts(txCtx, company.ID, contacts); err != nil {
				return fmt.Errorf("failed to replace contacts: %w", err)
			}
			company.Contacts = contacts
		}
		return nil
	})
	if err != nil {
		return CompanyResponse{}, err
	}
	return toCompanyResponse(*company), nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.FindByID(ctx, id); err != nil {
		return lookupErr(err, "company %s not found", id)
	}
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

func (s *companyService) Get(ctx context.Context, id uuid.UUID) (CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return CompanyResponse{}, lookupErr(err, "company %s not found", id)
	}
	return toCompanyResponse(*company), nil
}

func (s *companyService) List(ctx context.Context, companyType, search string, page, limit int) ([]CompanyResponse, int64, error) {
	page, limit = normalizePaging(page, limit)
	companies, total, err := s.companyRepo.List(ctx, companyType, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch companies: %w", err)
	}

	res := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		res = append(res, toCompanyResponse(c))
	}
	return res, total, nil
}

// --- Mapping ---

func toCompanyResponse(c model.Company) CompanyResponse {
	contacts := make([]ContactResponse, 0, len(c.Contacts))
	for _, ct := range c.Contacts {
		contacts = append(contacts, ContactResponse{
			ID:        ct.ID,
			Name:      ct.Name,
			Position:  ct.Position,
			Phone:     ct.Phone,
			Email:     ct.Email,
			IsPrimary: ct.IsPrimary,
		})
	}
	return CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		Type:           c.Type,
		RegistrationNo: c.RegistrationNo,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		IsActive:       c.IsActive,
		Contacts:       contacts,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
