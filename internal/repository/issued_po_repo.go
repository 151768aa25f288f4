package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssuedPORepository interface {
	Create(ctx context.Context, po *model.IssuedPO) error
	Update(ctx context.Context, po *model.IssuedPO) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.IssuedPO, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.IssuedPO, error)
	List(ctx context.Context, projectCode, status string, page, limit int) ([]model.IssuedPO, int64, error)
}

type issuedPORepository struct {
	db *gorm.DB
}

func NewIssuedPORepository(db *gorm.DB) IssuedPORepository {
	return &issuedPORepository{db: db}
}

func (r *issuedPORepository) Create(ctx context.Context, po *model.IssuedPO) error {
	return GetDB(ctx, r.db).Create(po).Error
}

func (r *issuedPORepository) Update(ctx context.Context, po *model.IssuedPO) error {
	return GetDB(ctx, r.db).Save(po).Error
}

func (r *issuedPORepository) FindByID(ctx context.Context, id uuid.UUID) (*model.IssuedPO, error) {
	var po model.IssuedPO
	if err := GetDB(ctx, r.db).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *issuedPORepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.IssuedPO, error) {
	var po model.IssuedPO
	if err := ForUpdate(ctx, r.db).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *issuedPORepository) List(ctx context.Context, projectCode, status string, page, limit int) ([]model.IssuedPO, int64, error) {
	var pos []model.IssuedPO
	var total int64

	query := GetDB(ctx, r.db).Model(&model.IssuedPO{})
	if projectCode != "" {
		query = query.Where("project_code = ?", projectCode)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("issue_date desc").Offset(offset).Limit(limit).Find(&pos).Error; err != nil {
		return nil, 0, err
	}
	return pos, total, nil
}
