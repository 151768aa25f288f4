package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Received purchase order status values.
const (
	POStatusReceived = "received"
	POStatusInvoiced = "invoiced"
	POStatusPaid     = "paid"
)

// PurchaseOrder is a purchase order received from a client. All revisions of
// one order share PONumberBase; exactly one revision per base is active.
type PurchaseOrder struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PONumber     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"po_number"`
	PONumberBase string    `gorm:"type:varchar(60);not null;index;uniqueIndex:idx_po_base_revision;uniqueIndex:idx_po_active_base,where:is_active = true" json:"po_number_base"`
	ProjectCode  string    `gorm:"type:varchar(30);not null;index" json:"project_code"`
	Description  string    `gorm:"type:text" json:"description"`

	// Revision chain
	RevisionNumber int        `gorm:"not null;default:1;uniqueIndex:idx_po_base_revision" json:"revision_number"`
	IsActive       bool       `gorm:"not null;default:true;index" json:"is_active"`
	Supersedes     *uuid.UUID `gorm:"type:uuid" json:"supersedes"`
	SupersededBy   *uuid.UUID `gorm:"type:uuid" json:"superseded_by"`
	RevisionDate   *time.Time `json:"revision_date"`
	RevisionReason string     `gorm:"type:text" json:"revision_reason"`

	// Currency snapshot
	Amount             decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'MYR'" json:"currency"`
	AmountMYR          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_myr"`
	ExchangeRate       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1" json:"exchange_rate"`
	ExchangeRateSource *string         `gorm:"type:varchar(10)" json:"exchange_rate_source"`

	// Manual MYR adjustment, orthogonal to revisions
	AmountMYRAdjusted decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"amount_myr_adjusted"`
	AdjustmentReason  string              `gorm:"type:text" json:"adjustment_reason"`
	AdjustedBy        *uuid.UUID          `gorm:"type:uuid" json:"adjusted_by"`
	AdjustedAt        *time.Time          `json:"adjusted_at"`

	ReceivedDate time.Time  `gorm:"not null" json:"received_date"`
	DueDate      *time.Time `json:"due_date"`
	Status       string     `gorm:"type:varchar(20);not null;default:'received';index" json:"status"`
	FileURL      string     `gorm:"type:varchar(512)" json:"file_url"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EffectiveAmountMYR is the adjusted MYR amount when present, else the converted one.
func (po PurchaseOrder) EffectiveAmountMYR() decimal.Decimal {
	if po.AmountMYRAdjusted.Valid {
		return po.AmountMYRAdjusted.Decimal
	}
	return po.AmountMYR
}
