package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Invoice is a billing event against a project. Sequence and cumulative
// percentage are keyed on ProjectCode; Projects lists every project the
// invoice covers (exact codes, ProjectCode included).
type Invoice struct {
	ID                   uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber        string           `gorm:"type:varchar(40);uniqueIndex;not null" json:"invoice_number"`
	ProjectCode          string           `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoice_project_sequence" json:"project_code"`
	Projects             []InvoiceProject `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	InvoiceSequence      int              `gorm:"not null;uniqueIndex:idx_invoice_project_sequence" json:"invoice_sequence"`
	PercentageOfTotal    decimal.Decimal  `gorm:"type:decimal(9,4);not null" json:"percentage_of_total"`
	CumulativePercentage decimal.Decimal  `gorm:"type:decimal(9,4);not null" json:"cumulative_percentage"`

	Amount             decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'MYR'" json:"currency"`
	AmountMYR          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_myr"`
	ExchangeRate       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"exchange_rate"`
	ExchangeRateSource *string         `gorm:"type:varchar(10)" json:"exchange_rate_source"`

	InvoiceDate time.Time  `gorm:"not null" json:"invoice_date"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	FileURL     string     `gorm:"type:varchar(512)" json:"file_url"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InvoiceProject links an invoice to each project code it bills.
type InvoiceProject struct {
	InvoiceID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"invoice_id"`
	ProjectCode string    `gorm:"type:varchar(30);primaryKey;index" json:"project_code"`
}

// ProjectCodes returns the linked codes in stored order.
func (inv Invoice) ProjectCodes() []string {
	codes := make([]string, 0, len(inv.Projects))
	for _, p := range inv.Projects {
		codes = append(codes, p.ProjectCode)
	}
	return codes
}
