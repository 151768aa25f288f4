package repository

import (
	"context"
	"database/sql"
	"errors"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateInvoiceNumber   = errors.New("invoice number already exists")
	ErrDuplicateInvoiceSequence = errors.New("invoice sequence already taken for project")
)

const invoiceCreateSavepoint = "invoice_create"

type InvoiceListFilter struct {
	ProjectCode string
	Status      string
	Page        int
	Limit       int
}

type InvoiceRepository interface {
	// Create reports unique violations as ErrDuplicateInvoiceNumber or
	// ErrDuplicateInvoiceSequence.
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error)
	// ListBySequence returns the invoices keyed on projectCode ordered by invoice_sequence.
	ListBySequence(ctx context.Context, projectCode string) ([]model.Invoice, error)
	// List matches invoices linked to filter.ProjectCode through invoice_projects.
	List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error)
	// MaxNumberSuffix returns the highest numeric suffix among invoice numbers
	// of the form prefix+digits, or 0.
	MaxNumberSuffix(ctx context.Context, prefix string) (int, error)
	CountByProject(ctx context.Context, projectCode string) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	db := GetDB(ctx, r.db)
	inTx := InTx(ctx)
	if inTx {
		if err := db.SavePoint(invoiceCreateSavepoint).Error; err != nil {
			return err
		}
	}

	err := db.Create(invoice).Error
	if !IsDuplicateKey(err) {
		return err
	}
	// The failed insert aborts the transaction; roll back to look up which key collided.
	if inTx {
		if rbErr := db.RollbackTo(invoiceCreateSavepoint).Error; rbErr != nil {
			return rbErr
		}
	}
	taken, lookupErr := r.ExistsByNumber(ctx, invoice.InvoiceNumber)
	if lookupErr != nil {
		return lookupErr
	}
	if taken {
		return ErrDuplicateInvoiceNumber
	}
	return ErrDuplicateInvoiceSequence
}

// Update saves invoice columns only; project links are fixed at creation.
func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Projects").Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", id).Delete(&model.InvoiceProject{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).Preload("Projects").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Invoice{}).Where("invoice_number = ?", invoiceNumber).Count(&count).Error
	return count > 0, err
}

func (r *invoiceRepository) ListBySequence(ctx context.Context, projectCode string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := GetDB(ctx, r.db).Preload("Projects").
		Where("project_code = ?", projectCode).
		Order("invoice_sequence asc").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Invoice{})
	if filter.ProjectCode != "" {
		query = query.Where("id IN (?)",
			GetDB(ctx, r.db).Model(&model.InvoiceProject{}).Select("invoice_id").Where("project_code = ?", filter.ProjectCode))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("Projects").Order("invoice_date desc, invoice_sequence desc").
		Offset(offset).Limit(filter.Limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) MaxNumberSuffix(ctx context.Context, prefix string) (int, error) {
	var last sql.NullInt64
	start := len(prefix) + 1
	err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Select("MAX(CAST(SUBSTRING(invoice_number FROM ?) AS BIGINT))", start).
		Where("LEFT(invoice_number, ?) = ?", len(prefix), prefix).
		Where("SUBSTRING(invoice_number FROM ?) ~ '^[0-9]+$'", start).
		Row().Scan(&last)
	if err != nil {
		return 0, err
	}
	return int(last.Int64), nil
}

func (r *invoiceRepository) CountByProject(ctx context.Context, projectCode string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.InvoiceProject{}).Where("project_code = ?", projectCode).Count(&count).Error
	return count, err
}
