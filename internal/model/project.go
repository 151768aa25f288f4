package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project status values. Status is derived from purchase orders and invoices.
const (
	ProjectStatusPreLim    = "pre-lim"
	ProjectStatusOngoing   = "ongoing"
	ProjectStatusCompleted = "completed"
)

const (
	BillingTypeHourly  = "hourly"
	BillingTypeLumpSum = "lump_sum"
)

// Project is an engineering engagement. A variation order (VO) is a child
// project of a non-VO parent with code "<parent>_<vo_number>".
type Project struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code            string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"`
	Title           string          `gorm:"type:varchar(255);not null" json:"title"`
	CompanyID       *uuid.UUID      `gorm:"type:uuid;index" json:"company_id"`
	Company         *Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	ManagerID       *uuid.UUID      `gorm:"type:uuid;index" json:"manager_id"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pre-lim';index" json:"status"`
	BillingType     string          `gorm:"type:varchar(20);not null;default:'lump_sum'" json:"billing_type"`
	PlannedHours    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"planned_hours"`
	ActualHours     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"actual_hours"`
	POReceivedDate  *time.Time      `json:"po_received_date"`
	CompletionDate  *time.Time      `json:"completion_date"`
	ParentProjectID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_project_parent_vo" json:"parent_project_id"`
	VONumber        *int            `gorm:"uniqueIndex:idx_project_parent_vo" json:"vo_number"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// LastInvoiceSequence is the highest invoice sequence ever issued for the
	// project; deleting invoices does not lower it.
	LastInvoiceSequence int `gorm:"not null;default:0" json:"last_invoice_sequence"`
}

func (p Project) IsVariationOrder() bool {
	return p.ParentProjectID != nil
}
