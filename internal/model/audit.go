package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProject = "CREATE_PROJECT"
	ActionUpdateProject = "UPDATE_PROJECT"
	ActionDeleteProject = "DELETE_PROJECT"

	ActionCreatePO          = "CREATE_PURCHASE_ORDER"
	ActionUpdatePO          = "UPDATE_PURCHASE_ORDER"
	ActionRevisePO          = "REVISE_PURCHASE_ORDER"
	ActionAdjustPO          = "ADJUST_PURCHASE_ORDER_MYR"
	ActionClearPOAdjustment = "CLEAR_PURCHASE_ORDER_ADJUSTMENT"
	ActionDeletePO          = "DELETE_PURCHASE_ORDER"

	ActionCreateInvoice       = "CREATE_INVOICE"
	ActionUpdateInvoice       = "UPDATE_INVOICE"
	ActionUpdateInvoiceStatus = "UPDATE_INVOICE_STATUS"
	ActionDeleteInvoice       = "DELETE_INVOICE"

	ActionCreateIssuedPO              = "CREATE_ISSUED_PO"
	ActionCreateReceivedInvoice       = "CREATE_RECEIVED_INVOICE"
	ActionUpdateReceivedInvoiceStatus = "UPDATE_RECEIVED_INVOICE_STATUS"

	ActionUpdateSettings = "UPDATE_SETTINGS"
)

// AuditLog tracks who changed what and when
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
