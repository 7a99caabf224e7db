package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice, using Xero's vocabulary.
type InvoiceStatus string

const (
	InvoiceStatusDraft      InvoiceStatus = "DRAFT"
	InvoiceStatusSubmitted  InvoiceStatus = "SUBMITTED"
	InvoiceStatusAuthorised InvoiceStatus = "AUTHORISED"
	InvoiceStatusPaid       InvoiceStatus = "PAID"
	InvoiceStatusVoided     InvoiceStatus = "VOIDED"
	InvoiceStatusDeleted    InvoiceStatus = "DELETED"
)

// InvoiceType distinguishes receivables (sales) from payables (bills).
type InvoiceType string

const (
	InvoiceTypeReceivable InvoiceType = "ACCREC"
	InvoiceTypePayable    InvoiceType = "ACCPAY"
)

// Invoice mirrors an invoice held in the external accounting system.
// XeroInvoiceID is the upsert key for sync.
type Invoice struct {
	Base
	XeroInvoiceID string          `gorm:"uniqueIndex;not null" json:"xeroInvoiceId"`
	InvoiceNumber string          `gorm:"not null" json:"invoiceNumber"`
	ContactName   string          `gorm:"not null" json:"contactName"`
	ContactEmail  *string         `json:"contactEmail"`
	SubTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subTotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"taxAmount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'CAD'" json:"currency"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	InvoiceDate   time.Time       `gorm:"type:date;not null" json:"invoiceDate"`
	DueDate       *time.Time      `gorm:"type:date" json:"dueDate"`
	PaidDate      *time.Time      `gorm:"type:date" json:"paidDate"`
	Description   *string         `gorm:"type:text" json:"description"`
	Reference     *string         `json:"reference"`
	Type          InvoiceType     `gorm:"type:varchar(10);not null;default:'ACCREC'" json:"type"`

	// Relationships
	Links []TransactionInvoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsValidInvoiceStatus reports whether s is one of the known statuses.
func IsValidInvoiceStatus(s string) bool {
	switch InvoiceStatus(s) {
	case InvoiceStatusDraft, InvoiceStatusSubmitted, InvoiceStatusAuthorised,
		InvoiceStatusPaid, InvoiceStatusVoided, InvoiceStatusDeleted:
		return true
	}
	return false
}

// IsValidInvoiceType reports whether s is ACCREC or ACCPAY.
func IsValidInvoiceType(s string) bool {
	switch InvoiceType(s) {
	case InvoiceTypeReceivable, InvoiceTypePayable:
		return true
	}
	return false
}
