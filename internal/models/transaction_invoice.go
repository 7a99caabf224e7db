package models

import "github.com/shopspring/decimal"

// TransactionInvoice links a transaction to an invoice. It is an entity in its
// own right: Amount is the (possibly partial) allocation of the transaction to
// the invoice. A given pair may be linked at most once.
type TransactionInvoice struct {
	Base
	TransactionID uint                `gorm:"not null;uniqueIndex:idx_transaction_invoice" json:"transactionId"`
	InvoiceID     uint                `gorm:"not null;uniqueIndex:idx_transaction_invoice;index" json:"invoiceId"`
	Amount        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"amount"`
	Notes         *string             `gorm:"type:text" json:"notes"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"-"`
	Invoice     Invoice     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the join table name.
func (TransactionInvoice) TableName() string {
	return "transaction_invoices"
}
