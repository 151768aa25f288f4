package model

import "time"

// CompanySettingsID is the primary key of the single settings row.
const CompanySettingsID = 1

// CompanySettings holds the issuing company's details printed on documents.
type CompanySettings struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	CompanyName    string    `gorm:"type:varchar(255);not null;default:''" json:"company_name"`
	RegistrationNo string    `gorm:"type:varchar(50)" json:"registration_no"`
	Address        string    `gorm:"type:text" json:"address"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone"`
	Email          string    `gorm:"type:varchar(255)" json:"email"`
	BankName       string    `gorm:"type:varchar(100)" json:"bank_name"`
	BankAccount    string    `gorm:"type:varchar(50)" json:"bank_account"`
	InvoicePrefix  string    `gorm:"type:varchar(10);not null;default:'INV'" json:"invoice_prefix"`
	UpdatedAt      time.Time `json:"updated_at"`
}
