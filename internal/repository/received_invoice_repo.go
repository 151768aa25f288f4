package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceivedInvoiceRepository interface {
	Create(ctx context.Context, invoice *model.ReceivedInvoice) error
	Update(ctx context.Context, invoice *model.ReceivedInvoice) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReceivedInvoice, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReceivedInvoice, error)
	List(ctx context.Context, issuedPOID *uuid.UUID, status string, page, limit int) ([]model.ReceivedInvoice, int64, error)
}

type receivedInvoiceRepository struct {
	db *gorm.DB
}

func NewReceivedInvoiceRepository(db *gorm.DB) ReceivedInvoiceRepository {
	return &receivedInvoiceRepository{db: db}
}

func (r *receivedInvoiceRepository) Create(ctx context.Context, invoice *model.ReceivedInvoice) error {
	return GetDB(ctx, r.db).Omit("IssuedPO").Create(invoice).Error
}

func (r *receivedInvoiceRepository) Update(ctx context.Context, invoice *model.ReceivedInvoice) error {
	return GetDB(ctx, r.db).Omit("IssuedPO").Save(invoice).Error
}

func (r *receivedInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReceivedInvoice, error) {
	var invoice model.ReceivedInvoice
	if err := GetDB(ctx, r.db).Preload("IssuedPO").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *receivedInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReceivedInvoice, error) {
	var invoice model.ReceivedInvoice
	if err := ForUpdate(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *receivedInvoiceRepository) List(ctx context.Context, issuedPOID *uuid.UUID, status string, page, limit int) ([]model.ReceivedInvoice, int64, error) {
	var invoices []model.ReceivedInvoice
	var total int64

	query := GetDB(ctx, r.db).Model(&model.ReceivedInvoice{})
	if issuedPOID != nil {
		query = query.Where("issued_po_id = ?", *issuedPOID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("IssuedPO").Order("received_date desc").Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}
