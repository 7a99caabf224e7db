package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/models"
)

// linkService maintains the many-to-many registry between transactions and
// invoices. Each link is a row of its own carrying an optional allocated
// amount and notes.
type linkService struct {
	db *gorm.DB
}

// NewLinkService creates a new LinkServicer.
func NewLinkService(db *gorm.DB) LinkServicer {
	return &linkService{db: db}
}

// Link records that a transaction pays (part of) an invoice. Both records must
// exist and the pair must not already be linked.
func (s *linkService) Link(transactionID, invoiceID uint, amount *decimal.Decimal, notes *string) (*LinkResponse, error) {
	var tx models.Transaction
	if err := s.db.First(&tx, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.ensureInvoice(invoiceID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.TransactionInvoice{}).
		Where("transaction_id = ? AND invoice_id = ?", transactionID, invoiceID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrLinkExists
	}

	link := &models.TransactionInvoice{
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
		Notes:         notes,
	}
	if amount != nil {
		link.Amount = decimal.NewNullDecimal(*amount)
	}

	// The unique index settles races between the check above and this insert.
	if err := s.db.Omit("Transaction", "Invoice").Create(link).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.ErrLinkExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	link.Transaction = tx
	resp := toLinkResponse(link)
	return &resp, nil
}

// Unlink deletes the link between a transaction and an invoice. It returns
// false when the pair was not linked.
func (s *linkService) Unlink(transactionID, invoiceID uint) (bool, error) {
	result := s.db.Where("transaction_id = ? AND invoice_id = ?", transactionID, invoiceID).
		Delete(&models.TransactionInvoice{})
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// LinksForInvoice returns the invoice's links in the order they were made.
func (s *linkService) LinksForInvoice(invoiceID uint) ([]LinkResponse, error) {
	if err := s.ensureInvoice(invoiceID); err != nil {
		return nil, err
	}

	links, err := loadLinks(s.db, invoiceID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if links[invoiceID] == nil {
		return []LinkResponse{}, nil
	}
	return links[invoiceID], nil
}

// InvoicesForTransaction returns the invoices linked to a transaction, in the
// order the links were made, each with all of its own linked transactions.
func (s *linkService) InvoicesForTransaction(transactionID uint) ([]InvoiceResponse, error) {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("id = ?", transactionID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	var links []models.TransactionInvoice
	if err := s.db.Preload("Invoice").
		Where("transaction_id = ?", transactionID).
		Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invoices := make([]models.Invoice, len(links))
	for i := range links {
		invoices[i] = links[i].Invoice
	}

	result, err := buildInvoiceResponses(s.db, invoices)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

func (s *linkService) ensureInvoice(invoiceID uint) error {
	var count int64
	if err := s.db.Model(&models.Invoice{}).Where("id = ?", invoiceID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrInvoiceNotFound
	}
	return nil
}
