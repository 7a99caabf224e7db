package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"financetracker/internal/models"
)

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// TranslateError covers the registered dialects; the message check catches
// drivers that do not translate.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// loadLinks returns the links of each given invoice, keyed by invoice id, with
// the linked transaction's summary attached. Links keep insertion order.
func loadLinks(db *gorm.DB, invoiceIDs ...uint) (map[uint][]LinkResponse, error) {
	result := make(map[uint][]LinkResponse, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return result, nil
	}

	var links []models.TransactionInvoice
	if err := db.Preload("Transaction").
		Where("invoice_id IN ?", invoiceIDs).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	for i := range links {
		result[links[i].InvoiceID] = append(result[links[i].InvoiceID], toLinkResponse(&links[i]))
	}
	return result, nil
}

// buildInvoiceResponses formats invoices, attaching each one's linked
// transactions.
func buildInvoiceResponses(db *gorm.DB, invoices []models.Invoice) ([]InvoiceResponse, error) {
	ids := make([]uint, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}

	links, err := loadLinks(db, ids...)
	if err != nil {
		return nil, err
	}

	result := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		result[i] = toInvoiceResponse(&invoices[i], links[invoices[i].ID])
	}
	return result, nil
}
