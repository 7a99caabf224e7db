package services

import (
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/models"
)

// DateLayout is the calendar-date format used in requests and responses.
const DateLayout = "2006-01-02"

// TransactionResponse is a transaction as returned to API callers.
type TransactionResponse struct {
	ID           uint            `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ConvertedCAD decimal.Decimal `json:"convertedCad"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TransactionSummary is the transaction view attached to a link.
type TransactionSummary struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Currency    string          `json:"currency"`
}

// LinkResponse is a transaction-invoice link with its transaction summary.
type LinkResponse struct {
	ID            uint                `json:"id"`
	TransactionID uint                `json:"transactionId"`
	InvoiceID     uint                `json:"invoiceId"`
	Amount        decimal.NullDecimal `json:"amount"`
	Notes         *string             `json:"notes"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Transaction   TransactionSummary  `json:"transaction"`
}

// InvoiceResponse is an invoice with the transactions linked to it.
type InvoiceResponse struct {
	ID                 uint                 `json:"id"`
	XeroInvoiceID      string               `json:"xeroInvoiceId"`
	InvoiceNumber      string               `json:"invoiceNumber"`
	ContactName        string               `json:"contactName"`
	ContactEmail       *string              `json:"contactEmail"`
	SubTotal           decimal.Decimal      `json:"subTotal"`
	TaxAmount          decimal.Decimal      `json:"taxAmount"`
	TotalAmount        decimal.Decimal      `json:"totalAmount"`
	Currency           string               `json:"currency"`
	Status             models.InvoiceStatus `json:"status"`
	InvoiceDate        string               `json:"invoiceDate"`
	DueDate            *string              `json:"dueDate"`
	PaidDate           *string              `json:"paidDate"`
	Description        *string              `json:"description"`
	Reference          *string              `json:"reference"`
	Type               models.InvoiceType   `json:"type"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	LinkedTransactions []LinkResponse       `json:"linkedTransactions"`
}

// CategoryBalance is one bucket of the per-category balance report. Total is
// the sum of the transactions' base-currency amounts.
type CategoryBalance struct {
	CategoryID   uint                  `json:"categoryId"`
	CategoryName string                `json:"categoryName"`
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	Total        decimal.Decimal       `json:"total"`
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func toTransactionResponse(tx *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           tx.ID,
		Amount:       tx.Amount,
		Currency:     tx.Currency,
		ConvertedCAD: tx.ConvertedCAD,
		Date:         formatDate(tx.Date),
		Description:  tx.Description,
		CategoryID:   tx.CategoryID,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
	if tx.Category != nil {
		resp.CategoryName = tx.Category.Name
	}
	return resp
}

func toTransactionSummary(tx *models.Transaction) TransactionSummary {
	return TransactionSummary{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        formatDate(tx.Date),
		Currency:    tx.Currency,
	}
}

func toLinkResponse(link *models.TransactionInvoice) LinkResponse {
	return LinkResponse{
		ID:            link.ID,
		TransactionID: link.TransactionID,
		InvoiceID:     link.InvoiceID,
		Amount:        link.Amount,
		Notes:         link.Notes,
		CreatedAt:     link.CreatedAt,
		UpdatedAt:     link.UpdatedAt,
		Transaction:   toTransactionSummary(&link.Transaction),
	}
}

func toInvoiceResponse(inv *models.Invoice, links []LinkResponse) InvoiceResponse {
	if links == nil {
		links = []LinkResponse{}
	}
	return InvoiceResponse{
		ID:                 inv.ID,
		XeroInvoiceID:      inv.XeroInvoiceID,
		InvoiceNumber:      inv.InvoiceNumber,
		ContactName:        inv.ContactName,
		ContactEmail:       inv.ContactEmail,
		SubTotal:           inv.SubTotal,
		TaxAmount:          inv.TaxAmount,
		TotalAmount:        inv.TotalAmount,
		Currency:           inv.Currency,
		Status:             inv.Status,
		InvoiceDate:        formatDate(inv.InvoiceDate),
		DueDate:            formatOptionalDate(inv.DueDate),
		PaidDate:           formatOptionalDate(inv.PaidDate),
		Description:        inv.Description,
		Reference:          inv.Reference,
		Type:               inv.Type,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
		LinkedTransactions: links,
	}
}
