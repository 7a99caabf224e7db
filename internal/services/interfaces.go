package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	GetAllCategories() ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	SeedDefaults() error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, amount decimal.Decimal, currency string, date time.Time, description string, categoryID uint) (*TransactionResponse, error)
	GetAllTransactions() ([]TransactionResponse, error)
	GetTransactionByID(transactionID uint) (*TransactionResponse, error)
	GetCategoryBalances() ([]CategoryBalance, error)
}

// InvoiceServicer defines the contract for invoice CRUD.
type InvoiceServicer interface {
	CreateInvoice(input CreateInvoiceInput) (*InvoiceResponse, error)
	GetAllInvoices() ([]InvoiceResponse, error)
	GetInvoiceByID(invoiceID uint) (*InvoiceResponse, error)
	GetInvoiceByXeroID(xeroInvoiceID string) (*InvoiceResponse, error)
	UpdateInvoice(invoiceID uint, input UpdateInvoiceInput) (*InvoiceResponse, error)
	DeleteInvoice(invoiceID uint) (bool, error)
}

// LinkServicer defines the contract for the transaction-invoice link registry.
type LinkServicer interface {
	Link(transactionID, invoiceID uint, amount *decimal.Decimal, notes *string) (*LinkResponse, error)
	Unlink(transactionID, invoiceID uint) (bool, error)
	LinksForInvoice(invoiceID uint) ([]LinkResponse, error)
	InvoicesForTransaction(transactionID uint) ([]InvoiceResponse, error)
}

// SyncServicer defines the contract for pulling invoices from the accounting system.
type SyncServicer interface {
	SyncAll(ctx context.Context) ([]InvoiceResponse, error)
	SyncOne(ctx context.Context, xeroInvoiceID string) (*InvoiceResponse, error)
}

// AuditServicer records mutating requests.
type AuditServicer interface {
	Record(ctx context.Context, entry AuditEntry)
}

// CurrencyConverter converts an amount into the base currency. It never
// fails; on lookup errors it returns the amount unchanged.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, date time.Time) decimal.Decimal
}
