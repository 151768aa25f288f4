package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectListFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindByCode(ctx context.Context, code string) (*model.Project, error)
	FindByCodeForUpdate(ctx context.Context, code string) (*model.Project, error)
	List(ctx context.Context, filter ProjectListFilter) ([]model.Project, int64, error)
	// ListRootCodesWithPrefix returns codes of non-VO projects starting with prefix.
	ListRootCodesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	MaxVONumber(ctx context.Context, parentID uuid.UUID) (int, error)
	// SetLastInvoiceSequence is the only writer of last_invoice_sequence.
	SetLastInvoiceSequence(ctx context.Context, id uuid.UUID, sequence int) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Omit(clause.Associations, "LastInvoiceSequence").Save(project).Error
}

func (r *projectRepository) SetLastInvoiceSequence(ctx context.Context, id uuid.UUID, sequence int) error {
	return GetDB(ctx, r.db).Model(&model.Project{}).Where("id = ?", id).
		UpdateColumn("last_invoice_sequence", sequence).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Project{}).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).Preload("Company").First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByCode(ctx context.Context, code string) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).Preload("Company").Where("code = ?", code).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByCodeForUpdate(ctx context.Context, code string) (*model.Project, error) {
	var project model.Project
	if err := ForUpdate(ctx, r.db).
		Where("code = ?", code).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectListFilter) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Project{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("code ILIKE ? OR title ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("Company").Order("code desc").Offset(offset).Limit(filter.Limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) ListRootCodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	err := GetDB(ctx, r.db).Model(&model.Project{}).
		Where("code LIKE ? AND parent_project_id IS NULL", prefix+"%").
		Pluck("code", &codes).Error
	return codes, err
}

func (r *projectRepository) MaxVONumber(ctx context.Context, parentID uuid.UUID) (int, error) {
	var max *int
	err := GetDB(ctx, r.db).Model(&model.Project{}).
		Where("parent_project_id = ?", parentID).
		Select("MAX(vo_number)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}
