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

type CreateReceivedInvoiceInput struct {
	InvoiceNumber string
	IssuedPOID    uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	CustomRate    *decimal.Decimal
	ReceivedDate  time.Time
}

type UpdateReceivedInvoiceStatusInput struct {
	Status        string
	DisputeReason string
}

type ReceivedInvoiceService interface {
	Create(ctx context.Context, userID string, in CreateReceivedInvoiceInput) (model.ReceivedInvoice, error)
	UpdateStatus(ctx context.Context, userID string, id uuid.UUID, in UpdateReceivedInvoiceStatusInput) (model.ReceivedInvoice, error)
	Get(ctx context.Context, id uuid.UUID) (model.ReceivedInvoice, error)
	List(ctx context.Context, issuedPOID *uuid.UUID, status string, page, limit int) ([]model.ReceivedInvoice, int64, error)
}

type receivedInvoiceService struct {
	invoiceRepo repository.ReceivedInvoiceRepository
	issuedRepo  repository.IssuedPORepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	converter   CurrencyConverter
	now         func() time.Time
}

func NewReceivedInvoiceService(
	invoiceRepo repository.ReceivedInvoiceRepository,
	issuedRepo repository.IssuedPORepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	converter CurrencyConverter,
) ReceivedInvoiceService {
	return &receivedInvoiceService{
		invoiceRepo: invoiceRepo,
		issuedRepo:  issuedRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		converter:   converter,
		now:         time.Now,
	}
}

// receivedInvoiceTransitions lists the allowed next states. Paid is terminal.
var receivedInvoiceTransitions = map[string][]string{
	model.ReceivedInvoiceStatusPending:  {model.ReceivedInvoiceStatusVerified, model.ReceivedInvoiceStatusDisputed},
	model.ReceivedInvoiceStatusVerified: {model.ReceivedInvoiceStatusPaid, model.ReceivedInvoiceStatusDisputed},
	model.ReceivedInvoiceStatusDisputed: {model.ReceivedInvoiceStatusPending},
}

func canTransition(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Create records a vendor invoice and moves its issued PO from issued to received.
func (s *receivedInvoiceService) Create(ctx context.Context, userID string, in CreateReceivedInvoiceInput) (model.ReceivedInvoice, error) {
	number := strings.TrimSpace(in.InvoiceNumber)
	if number == "" {
		return model.ReceivedInvoice{}, apperror.Validation("invoice_number is required")
	}
	if !in.Amount.IsPositive() {
		return model.ReceivedInvoice{}, apperror.Validation("amount must be greater than zero")
	}
	if in.ReceivedDate.IsZero() {
		return model.ReceivedInvoice{}, apperror.Validation("received_date is required")
	}

	conv, err := s.converter.Convert(ctx, in.Amount, in.Currency, in.CustomRate)
	if err != nil {
		return model.ReceivedInvoice{}, err
	}

	invoice := model.ReceivedInvoice{
		InvoiceNumber:      number,
		IssuedPOID:         in.IssuedPOID,
		Amount:             in.Amount,
		Currency:           conv.Currency,
		AmountMYR:          conv.AmountMYR,
		ExchangeRate:       conv.Rate,
		ExchangeRateSource: conv.Source,
		ReceivedDate:       in.ReceivedDate,
		Status:             model.ReceivedInvoiceStatusPending,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		po, err := s.issuedRepo.FindByIDForUpdate(txCtx, in.IssuedPOID)
		if err != nil {
			return lookupErr(err, "issued purchase order %s not found", in.IssuedPOID)
		}
		if po.Status == model.IssuedPOStatusCompleted {
			return apperror.InvalidState("issued purchase order %s is completed", po.PONumber)
		}

		if err := s.invoiceRepo.Create(txCtx, &invoice); err != nil {
			return fmt.Errorf("failed to create received invoice: %w", err)
		}

		if po.Status == model.IssuedPOStatusIssued {
			po.Status = model.IssuedPOStatusReceived
			if err := s.issuedRepo.Update(txCtx, po); err != nil {
				return fmt.Errorf("failed to update issued purchase order: %w", err)
			}
		}
		invoice.IssuedPO = po

		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateReceivedInvoice, invoice.ID.String(), invoice.InvoiceNumber, in)
	})
	if err != nil {
		return model.ReceivedInvoice{}, err
	}
	return invoice, nil
}

// UpdateStatus applies a status transition. Paying an invoice completes its
// issued PO in the same transaction.
func (s *receivedInvoiceService) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, in UpdateReceivedInvoiceStatusInput) (model.ReceivedInvoice, error) {
	var invoice *model.ReceivedInvoice
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return lookupErr(err, "received invoice %s not found", id)
		}
		if invoice.Status == model.ReceivedInvoiceStatusPaid {
			return apperror.InvalidState("received invoice %s is paid and cannot be modified", invoice.InvoiceNumber)
		}
		if !canTransition(receivedInvoiceTransitions, invoice.Status, in.Status) {
			return apperror.InvalidState("received invoice %s cannot move from %s to %s", invoice.InvoiceNumber, invoice.Status, in.Status)
		}

		from := invoice.Status
		invoice.Status = in.Status
		switch in.Status {
		case model.ReceivedInvoiceStatusDisputed:
			reason := strings.TrimSpace(in.DisputeReason)
			if reason == "" {
				return apperror.Validation("dispute_reason is required")
			}
			invoice.DisputeReason = reason
		case model.ReceivedInvoiceStatusPending:
			invoice.DisputeReason = ""
		case model.ReceivedInvoiceStatusPaid:
			now := s.now()
			invoice.PaidAt = &now

			po, err := s.issuedRepo.FindByIDForUpdate(txCtx, invoice.IssuedPOID)
			if err != nil {
				return lookupErr(err, "issued purchase order %s not found", invoice.IssuedPOID)
			}
			if po.Status != model.IssuedPOStatusCompleted {
				po.Status = model.IssuedPOStatusCompleted
				po.CompletedAt = &now
				if err := s.issuedRepo.Update(txCtx, po); err != nil {
					return fmt.Errorf("failed to complete issued purchase order: %w", err)
				}
			}
			invoice.IssuedPO = po
		}

		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update received invoice: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateReceivedInvoiceStatus, invoice.ID.String(), invoice.InvoiceNumber,
			map[string]string{"from": from, "to": in.Status})
	})
	if err != nil {
		return model.ReceivedInvoice{}, err
	}
	return *invoice, nil
}

func (s *receivedInvoiceService) Get(ctx context.Context, id uuid.UUID) (model.ReceivedInvoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return model.ReceivedInvoice{}, lookupErr(err, "received invoice %s not found", id)
	}
	return *invoice, nil
}

func (s *receivedInvoiceService) List(ctx context.Context, issuedPOID *uuid.UUID, status string, page, limit int) ([]model.ReceivedInvoice, int64, error) {
	page, limit = normalizePaging(page, limit)
	invoices, total, err := s.invoiceRepo.List(ctx, issuedPOID, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch received invoices: %w", err)
	}
	return invoices, total, nil
}
