package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	IssuedPOStatusIssued    = "issued"
	IssuedPOStatusReceived  = "received"
	IssuedPOStatusCompleted = "completed"
)

const (
	ReceivedInvoiceStatusPending  = "pending"
	ReceivedInvoiceStatusVerified = "verified"
	ReceivedInvoiceStatusPaid     = "paid"
	ReceivedInvoiceStatusDisputed = "disputed"
)

// IssuedPO is a purchase order sent to a vendor.
type IssuedPO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber           string          `gorm:"type:varchar(60);uniqueIndex;not null" json:"po_number"`
	ProjectCode        string          `gorm:"type:varchar(30);index" json:"project_code"`
	VendorID           *uuid.UUID      `gorm:"type:uuid;index" json:"vendor_id"`
	VendorName         string          `gorm:"type:varchar(255);not null" json:"vendor_name"`
	Description        string          `gorm:"type:text" json:"description"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'MYR'" json:"currency"`
	AmountMYR          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_myr"`
	ExchangeRate       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"exchange_rate"`
	ExchangeRateSource *string         `gorm:"type:varchar(10)" json:"exchange_rate_source"`
	IssueDate          time.Time       `gorm:"not null" json:"issue_date"`
	Status             string          `gorm:"type:varchar(20);not null;default:'issued';index" json:"status"`
	CompletedAt        *time.Time      `json:"completed_at"`
	FileURL            string          `gorm:"type:varchar(512)" json:"file_url"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ReceivedInvoice is a vendor invoice billed against an IssuedPO.
type ReceivedInvoice struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber      string          `gorm:"type:varchar(60);not null;index" json:"invoice_number"`
	IssuedPOID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"issued_po_id"`
	IssuedPO           *IssuedPO       `gorm:"foreignKey:IssuedPOID" json:"issued_po,omitempty"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'MYR'" json:"currency"`
	AmountMYR          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_myr"`
	ExchangeRate       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"exchange_rate"`
	ExchangeRateSource *string         `gorm:"type:varchar(10)" json:"exchange_rate_source"`
	ReceivedDate       time.Time       `gorm:"not null" json:"received_date"`
	Status             string          `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DisputeReason      string          `gorm:"type:text" json:"dispute_reason"`
	PaidAt             *time.Time      `json:"paid_at"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
