package repository

import (
	"context"
	"time"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderListFilter struct {
	ProjectCode string
	Status      string
	ActiveOnly  bool
	Page        int
	Limit       int
}

// ProjectPOStats summarizes the active purchase orders of a project.
type ProjectPOStats struct {
	ActiveCount      int64
	EarliestReceived *time.Time
}

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	Update(ctx context.Context, po *model.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	ExistsByNumber(ctx context.Context, poNumber string) (bool, error)
	ListByBase(ctx context.Context, base string) ([]model.PurchaseOrder, error)
	FindActiveByBase(ctx context.Context, base string) (*model.PurchaseOrder, error)
	List(ctx context.Context, filter PurchaseOrderListFilter) ([]model.PurchaseOrder, int64, error)
	ListByProject(ctx context.Context, projectCode string) ([]model.PurchaseOrder, error)
	StatsByProject(ctx context.Context, projectCode string) (ProjectPOStats, error)
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

func (r *purchaseOrderRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Create(po).Error
}

func (r *purchaseOrderRepository) Update(ctx context.Context, po *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Save(po).Error
}

func (r *purchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.PurchaseOrder{}).Error
}

func (r *purchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := GetDB(ctx, r.db).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := ForUpdate(ctx, r.db).
		Where("id = ?", id).First(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) ExistsByNumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.PurchaseOrder{}).
		Where("po_number = ? OR po_number_base = ?", poNumber, poNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseOrderRepository) ListByBase(ctx context.Context, base string) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	err := GetDB(ctx, r.db).Where("po_number_base = ?", base).
		Order("revision_number asc").Find(&pos).Error
	return pos, err
}

func (r *purchaseOrderRepository) FindActiveByBase(ctx context.Context, base string) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := GetDB(ctx, r.db).Where("po_number_base = ? AND is_active = ?", base, true).First(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) List(ctx context.Context, filter PurchaseOrderListFilter) ([]model.PurchaseOrder, int64, error) {
	var pos []model.PurchaseOrder
	var total int64

	query := GetDB(ctx, r.db).Model(&model.PurchaseOrder{})
	if filter.ProjectCode != "" {
		query = query.Where("project_code = ?", filter.ProjectCode)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("received_date desc, revision_number desc").Offset(offset).Limit(filter.Limit).Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	return pos, total, nil
}

func (r *purchaseOrderRepository) ListByProject(ctx context.Context, projectCode string) ([]model.PurchaseOrder, error) {
	var pos []model.PurchaseOrder
	err := GetDB(ctx, r.db).Where("project_code = ?", projectCode).
		Order("po_number_base asc, revision_number asc").Find(&pos).Error
	return pos, err
}

func (r *purchaseOrderRepository) StatsByProject(ctx context.Context, projectCode string) (ProjectPOStats, error) {
	var row struct {
		ActiveCount      int64
		EarliestReceived *time.Time
	}
	err := GetDB(ctx, r.db).Model(&model.PurchaseOrder{}).
		Select("COUNT(*) AS active_count, MIN(received_date) AS earliest_received").
		Where("project_code = ? AND is_active = ?", projectCode, true).
		Scan(&row).Error
	if err != nil {
		return ProjectPOStats{}, err
	}
	return ProjectPOStats{ActiveCount: row.ActiveCount, EarliestReceived: row.EarliestReceived}, nil
}
