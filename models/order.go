package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package tiers
const (
	PackageBasic        = "Basic"
	PackageStandard     = "Standard"
	PackageProfessional = "Professional"
	PackageEnterprise   = "Enterprise"
)

// Order statuses
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Currencies
const (
	CurrencyJMD = "JMD"
	CurrencyUSD = "USD"
)

// Payment methods. Card is accepted by the enum but refused at submit
// time; card payments are disabled.
const (
	PaymentCash         = "Cash"
	PaymentBankTransfer = "Bank Transfer"
	PaymentCard         = "Card"
)

// Order represents one client website purchase request
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrderNumber    string          `gorm:"uniqueIndex;not null" json:"order_number"` // immutable after creation
	UserID         uint            `gorm:"not null;index" json:"user_id"`            // owning account
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	ClientName     string          `gorm:"not null" json:"client_name"`
	ClientEmail    string          `gorm:"not null;index" json:"client_email"` // secondary ownership check
	ClientPhone    string          `gorm:"not null" json:"client_phone"`
	CompanyName    *string         `json:"company_name,omitempty"`
	PackageType    string          `gorm:"not null" json:"package_type"` // Basic, Standard, Professional, Enterprise
	WebsiteType    *string         `json:"website_type,omitempty"`
	NumPages       *string         `json:"num_pages,omitempty"`
	Description    *string         `json:"description,omitempty"`
	ColorScheme    *string         `json:"color_scheme,omitempty"`
	Features       StringSlice     `gorm:"type:text" json:"features,omitempty"`
	PageTypes      StringSlice     `gorm:"type:text" json:"page_types,omitempty"`
	CompletionDate *string         `json:"completion_date,omitempty"`
	BudgetRange    *string         `json:"budget_range,omitempty"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"` // fixed at creation from the price table
	Currency       string          `gorm:"not null;default:'JMD'" json:"currency"`          // "JMD" or "USD"
	PaymentMethod  string          `gorm:"not null" json:"payment_method"`
	Status         string          `gorm:"not null;default:'Pending'" json:"status"` // Pending, In Progress, Completed
	ProposalSigned bool            `gorm:"not null;default:false" json:"proposal_signed"`
	SignatureData  *string         `gorm:"type:text" json:"signature_data,omitempty"` // data-URL of the captured signature
	SignatureS3Key *string         `json:"signature_s3_key,omitempty"`
	SignedAt       *time.Time      `json:"signed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ValidPackageType reports whether s is one of the four package tiers
func ValidPackageType(s string) bool {
	switch s {
	case PackageBasic, PackageStandard, PackageProfessional, PackageEnterprise:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the three order statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidCurrency reports whether s is a supported currency
func ValidCurrency(s string) bool {
	return s == CurrencyJMD || s == CurrencyUSD
}

// ValidPaymentMethod reports whether s is a known payment method
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentCash, PaymentBankTransfer, PaymentCard:
		return true
	}
	return false
}

// OwnedBy reports whether the order belongs to the given user, either by
// account id or by the client email recorded on the order
func (o *Order) OwnedBy(userID uint, email string) bool {
	return o.UserID == userID || (email != "" && o.ClientEmail == email)
}
