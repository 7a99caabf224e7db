package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/models"
	"financetracker/internal/validator"
)

// CreateInvoiceInput carries the fields of a new invoice. Zero-valued
// Currency, Status and Type take their defaults; a nil TaxAmount is zero.
type CreateInvoiceInput struct {
	XeroInvoiceID string
	InvoiceNumber string
	ContactName   string
	ContactEmail  *string
	SubTotal      decimal.Decimal
	TaxAmount     *decimal.Decimal
	TotalAmount   decimal.Decimal
	Currency      string
	Status        models.InvoiceStatus
	InvoiceDate   time.Time
	DueDate       *time.Time
	PaidDate      *time.Time
	Description   *string
	Reference     *string
	Type          models.InvoiceType
}

// UpdateInvoiceInput carries a partial update. Nil pointers leave a field
// unchanged; Nullable fields may also be cleared.
type UpdateInvoiceInput struct {
	XeroInvoiceID *string
	InvoiceNumber *string
	ContactName   *string
	ContactEmail  Nullable[string]
	SubTotal      *decimal.Decimal
	TaxAmount     *decimal.Decimal
	TotalAmount   *decimal.Decimal
	Currency      *string
	Status        *models.InvoiceStatus
	InvoiceDate   *time.Time
	DueDate       Nullable[time.Time]
	PaidDate      Nullable[time.Time]
	Description   Nullable[string]
	Reference     Nullable[string]
	Type          *models.InvoiceType
}

// invoiceService handles invoice-related business logic.
type invoiceService struct {
	db           *gorm.DB
	baseCurrency string
}

// NewInvoiceService creates a new InvoiceServicer. baseCurrency is the
// default currency for invoices created without one.
func NewInvoiceService(db *gorm.DB, baseCurrency string) InvoiceServicer {
	return &invoiceService{db: db, baseCurrency: strings.ToUpper(baseCurrency)}
}

// CreateInvoice validates and stores a new invoice.
func (s *invoiceService) CreateInvoice(input CreateInvoiceInput) (*InvoiceResponse, error) {
	inv := &models.Invoice{
		XeroInvoiceID: strings.TrimSpace(input.XeroInvoiceID),
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		ContactName:   strings.TrimSpace(input.ContactName),
		ContactEmail:  input.ContactEmail,
		SubTotal:      input.SubTotal,
		TaxAmount:     decimal.Zero,
		TotalAmount:   input.TotalAmount,
		Currency:      strings.ToUpper(strings.TrimSpace(input.Currency)),
		Status:        input.Status,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		PaidDate:      input.PaidDate,
		Description:   input.Description,
		Reference:     input.Reference,
		Type:          input.Type,
	}
	if input.TaxAmount != nil {
		inv.TaxAmount = *input.TaxAmount
	}
	if inv.Currency == "" {
		inv.Currency = s.baseCurrency
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if inv.Type == "" {
		inv.Type = models.InvoiceTypeReceivable
	}

	if err := validateInvoice(inv); err != nil {
		return nil, err
	}

	exists, err := s.xeroIDTaken(inv.XeroInvoiceID, 0)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateInvoice
	}

	if err := s.db.Create(inv).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateInvoice
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := toInvoiceResponse(inv, nil)
	return &resp, nil
}

// GetAllInvoices returns every invoice, newest first.
func (s *invoiceService) GetAllInvoices() ([]InvoiceResponse, error) {
	var invoices []models.Invoice
	if err := s.db.Order("created_at DESC").Order("id DESC").Find(&invoices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result, err := buildInvoiceResponses(s.db, invoices)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// GetInvoiceByID retrieves an invoice by ID
func (s *invoiceService) GetInvoiceByID(invoiceID uint) (*InvoiceResponse, error) {
	var inv models.Invoice
	if err := s.db.First(&inv, invoiceID).Error; err != nil {
		return nil, invoiceLookupError(err)
	}
	return s.respond(&inv)
}

// GetInvoiceByXeroID retrieves an invoice by its accounting-system id.
func (s *invoiceService) GetInvoiceByXeroID(xeroInvoiceID string) (*InvoiceResponse, error) {
	var inv models.Invoice
	if err := s.db.Where("xero_invoice_id = ?", xeroInvoiceID).First(&inv).Error; err != nil {
		return nil, invoiceLookupError(err)
	}
	return s.respond(&inv)
}

// UpdateInvoice applies the supplied fields and saves the invoice.
func (s *invoiceService) UpdateInvoice(invoiceID uint, input UpdateInvoiceInput) (*InvoiceResponse, error) {
	var inv models.Invoice
	if err := s.db.First(&inv, invoiceID).Error; err != nil {
		return nil, invoiceLookupError(err)
	}

	if input.XeroInvoiceID != nil {
		inv.XeroInvoiceID = strings.TrimSpace(*input.XeroInvoiceID)
	}
	if input.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*input.InvoiceNumber)
	}
	if input.ContactName != nil {
		inv.ContactName = strings.TrimSpace(*input.ContactName)
	}
	if input.ContactEmail.Set {
		inv.ContactEmail = input.ContactEmail.Value
	}
	if input.SubTotal != nil {
		inv.SubTotal = *input.SubTotal
	}
	if input.TaxAmount != nil {
		inv.TaxAmount = *input.TaxAmount
	}
	if input.TotalAmount != nil {
		inv.TotalAmount = *input.TotalAmount
	}
	if input.Currency != nil {
		inv.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.Status != nil {
		inv.Status = *input.Status
	}
	if input.InvoiceDate != nil {
		inv.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate.Set {
		inv.DueDate = input.DueDate.Value
	}
	if input.PaidDate.Set {
		inv.PaidDate = input.PaidDate.Value
	}
	if input.Description.Set {
		inv.Description = input.Description.Value
	}
	if input.Reference.Set {
		inv.Reference = input.Reference.Value
	}
	if input.Type != nil {
		inv.Type = *input.Type
	}

	if err := validateInvoice(&inv); err != nil {
		return nil, err
	}

	if input.XeroInvoiceID != nil {
		taken, err := s.xeroIDTaken(inv.XeroInvoiceID, inv.ID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if taken {
			return nil, apperrors.ErrDuplicateInvoice
		}
	}

	if err := s.db.Save(&inv).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateInvoice
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.respond(&inv)
}

// DeleteInvoice removes an invoice and its links. It returns false when the
// invoice does not exist.
func (s *invoiceService) DeleteInvoice(invoiceID uint) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.TransactionInvoice{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&inv).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return deleted, nil
}

func (s *invoiceService) respond(inv *models.Invoice) (*InvoiceResponse, error) {
	links, err := loadLinks(s.db, inv.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	resp := toInvoiceResponse(inv, links[inv.ID])
	return &resp, nil
}

// xeroIDTaken reports whether another invoice (other than exceptID) already
// uses xeroInvoiceID.
func (s *invoiceService) xeroIDTaken(xeroInvoiceID string, exceptID uint) (bool, error) {
	var count int64
	q := s.db.Model(&models.Invoice{}).Where("xero_invoice_id = ?", xeroInvoiceID)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func invoiceLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrInvoiceNotFound
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func validateInvoice(inv *models.Invoice) error {
	switch {
	case inv.XeroInvoiceID == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "xeroInvoiceId is required")
	case inv.InvoiceNumber == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invoiceNumber is required")
	case inv.ContactName == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "contactName is required")
	case inv.InvoiceDate.IsZero():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invoiceDate is required")
	case !validator.IsCurrency(inv.Currency):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be a valid ISO 4217 code")
	case !models.IsValidInvoiceStatus(string(inv.Status)):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid invoice status")
	case !models.IsValidInvoiceType(string(inv.Type)):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid invoice type")
	}
	return nil
}
