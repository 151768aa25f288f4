package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateIssuedPOInput struct {
	PONumber    string
	ProjectCode string
	VendorID    *uuid.UUID
	VendorName  string
	Description string
	Amount      decimal.Decimal
	Currency    string
	CustomRate  *decimal.Decimal
	IssueDate   time.Time
	FileURL     string
}

type IssuedPOService interface {
	Create(ctx context.Context, userID string, in CreateIssuedPOInput) (model.IssuedPO, error)
	Get(ctx context.Context, id uuid.UUID) (model.IssuedPO, error)
	List(ctx context.Context, projectCode, status string, page, limit int) ([]model.IssuedPO, int64, error)
}

type issuedPOService struct {
	issuedRepo  repository.IssuedPORepository
	projectRepo repository.ProjectRepository
	companyRepo repository.CompanyRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	converter   CurrencyConverter
}

func NewIssuedPOService(
	issuedRepo repository.IssuedPORepository,
	projectRepo repository.ProjectRepository,
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	converter CurrencyConverter,
) IssuedPOService {
	return &issuedPOService{
		issuedRepo:  issuedRepo,
		projectRepo: projectRepo,
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		converter:   converter,
	}
}

func (s *issuedPOService) Create(ctx context.Context, userID string, in CreateIssuedPOInput) (model.IssuedPO, error) {
	poNumber := strings.TrimSpace(in.PONumber)
	if poNumber == "" {
		return model.IssuedPO{}, apperror.Validation("po_number is required")
	}
	if !in.Amount.IsPositive() {
		return model.IssuedPO{}, apperror.Validation("amount must be greater than zero")
	}
	if in.IssueDate.IsZero() {
		return model.IssuedPO{}, apperror.Validation("issue_date is required")
	}

	vendorName := strings.TrimSpace(in.VendorName)
	if in.VendorID != nil {
		vendor, err := s.companyRepo.FindByID(ctx, *in.VendorID)
		if err != nil {
			return model.IssuedPO{}, lookupErr(err, "vendor %s not found", *in.VendorID)
		}
		if vendor.Type == model.CompanyTypeClient {
			return model.IssuedPO{}, apperror.Validation("company %s is a client, not a vendor", vendor.Name)
		}
		if vendorName == "" {
			vendorName = vendor.Name
		}
	}
	if vendorName == "" {
		return model.IssuedPO{}, apperror.Validation("vendor_name or vendor_id is required")
	}

	conv, err := s.converter.Convert(ctx, in.Amount, in.Currency, in.CustomRate)
	if err != nil {
		return model.IssuedPO{}, err
	}

	po := model.IssuedPO{
		PONumber:           poNumber,
		ProjectCode:        strings.TrimSpace(in.ProjectCode),
		VendorID:           in.VendorID,
		VendorName:         vendorName,
		Description:        in.Description,
		Amount:             in.Amount,
		Currency:           conv.Currency,
		AmountMYR:          conv.AmountMYR,
		ExchangeRate:       conv.Rate,
		ExchangeRateSource: conv.Source,
		IssueDate:          in.IssueDate,
		Status:             model.IssuedPOStatusIssued,
		FileURL:            in.FileURL,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if po.ProjectCode != "" {
			if _, err := s.projectRepo.FindByCode(txCtx, po.ProjectCode); err != nil {
				return lookupErr(err, "project %s not found", po.ProjectCode)
			}
		}
		if err := s.issuedRepo.Create(txCtx, &po); err != nil {
			if repository.IsDuplicateKey(err) {
				return apperror.Validation("issued purchase order %s already exists", poNumber)
			}
			return fmt.Errorf("failed to create issued purchase order: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateIssuedPO, po.ID.String(), po.PONumber, in)
	})
	if err != nil {
		return model.IssuedPO{}, err
	}
	return po, nil
}

func (s *issuedPOService) Get(ctx context.Context, id uuid.UUID) (model.IssuedPO, error) {
	po, err := s.issuedRepo.FindByID(ctx, id)
	if err != nil {
		return model.IssuedPO{}, lookupErr(err, "issued purchase order %s not found", id)
	}
	return *po, nil
}

func (s *issuedPOService) List(ctx context.Context, projectCode, status string, page, limit int) ([]model.IssuedPO, int64, error) {
	page, limit = normalizePaging(page, limit)
	pos, total, err := s.issuedRepo.List(ctx, projectCode, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch issued purchase orders: %w", err)
	}
	return pos, total, nil
}
