package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CompanyTypeClient = "client"
	CompanyTypeVendor = "vendor"
	CompanyTypeBoth   = "both"
)

// Company is a CRM record for a client, vendor or both.
type Company struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Type           string         `gorm:"type:varchar(20);not null;index" json:"type"`
	RegistrationNo string         `gorm:"type:varchar(50)" json:"registration_no"`
	Address        string         `gorm:"type:text" json:"address"`
	Phone          string         `gorm:"type:varchar(20)" json:"phone"` // E.164
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	Contacts       []Contact      `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"contacts"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Contact is a person at a company.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Position  string    `gorm:"type:varchar(100)" json:"position"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"` // E.164
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
