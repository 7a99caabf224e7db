package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"financetracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns the calendar date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a CAD transaction whose converted amount
// equals its amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID uint, amount string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionInCurrency(t, db, categoryID, amount, "CAD", amount)
}

// CreateTestTransactionInCurrency creates a transaction with an explicit
// currency and converted amount, bypassing the converter.
func CreateTestTransactionInCurrency(t *testing.T, db *gorm.DB, categoryID uint, amount, currency, converted string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:       decimal.RequireFromString(amount),
		Currency:     currency,
		ConvertedCAD: decimal.RequireFromString(converted),
		Date:         Date(2024, time.January, 15),
		Description:  fmt.Sprintf("Test Transaction %d", nextID()),
		CategoryID:   categoryID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestInvoice creates a draft receivable invoice with a unique
// external id.
func CreateTestInvoice(t *testing.T, db *gorm.DB) *models.Invoice {
	t.Helper()

	n := nextID()
	email := fmt.Sprintf("billing%d@example.com", n)
	inv := &models.Invoice{
		XeroInvoiceID: fmt.Sprintf("test-inv-%d", n),
		InvoiceNumber: fmt.Sprintf("INV-%04d", n),
		ContactName:   fmt.Sprintf("Test Contact %d", n),
		ContactEmail:  &email,
		SubTotal:      decimal.RequireFromString("100.00"),
		TaxAmount:     decimal.RequireFromString("13.00"),
		TotalAmount:   decimal.RequireFromString("113.00"),
		Currency:      "CAD",
		Status:        models.InvoiceStatusDraft,
		InvoiceDate:   Date(2024, time.January, 10),
		Type:          models.InvoiceTypeReceivable,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test invoice: %v", err)
	}
	return inv
}

// CreateTestLink links a transaction to an invoice with no amount or notes.
func CreateTestLink(t *testing.T, db *gorm.DB, transactionID, invoiceID uint) *models.TransactionInvoice {
	t.Helper()

	link := &models.TransactionInvoice{
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to create test link: %v", err)
	}
	return link
}
