package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	List(ctx context.Context, companyType, search string, page, limit int) ([]model.Company, int64, error)
	ReplaceContacts(ctx context.Context, companyID uuid.UUID, contacts []model.Contact) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Create(company).Error
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Omit("Contacts").Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Company{}).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).Preload("Contacts").First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// List filters by type; "client" and "vendor" also match companies of type "both".
func (r *companyRepository) List(ctx context.Context, companyType, search string, page, limit int) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Company{})
	if companyType != "" {
		query = query.Where("type IN ?", []string{companyType, model.CompanyTypeBoth})
	}
	if search != "" {
		query = query.Where("name ILIKE ? OR registration_no ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Contacts").Order("name ASC").Offset(offset).Limit(limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

func (r *companyRepository) ReplaceContacts(ctx context.Context, companyID uuid.UUID, contacts []model.Contact) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("company_id = ?", companyID).Delete(&model.Contact{}).Error; err != nil {
		return err
	}
	if len(contacts) == 0 {
		return nil
	}
	for i := range contacts {
		contacts[i].CompanyID = companyID
	}
	return db.Create(&contacts).Error
}
