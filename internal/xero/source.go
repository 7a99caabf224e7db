// Package xero fetches invoices from the Xero accounting system and maps them
// onto the local invoice model. Two sources are provided: MockSource serves a
// fixed dataset for development, and HTTPSource talks to the Accounting API.
package xero

import (
	"context"

	"github.com/shopspring/decimal"
)

// InvoiceSource produces external invoice records for synchronization.
// FetchInvoice returns nil without an error when the id is unknown.
type InvoiceSource interface {
	FetchInvoices(ctx context.Context) ([]Invoice, error)
	FetchInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
}

// Invoice mirrors the Xero Accounting API invoice payload. Only the fields
// consumed by the mapper are declared.
type Invoice struct {
	InvoiceID       string          `json:"InvoiceID"`
	InvoiceNumber   string          `json:"InvoiceNumber"`
	Type            string          `json:"Type"`
	Contact         Contact         `json:"Contact"`
	Date            string          `json:"Date"`
	DueDate         string          `json:"DueDate,omitempty"`
	PaidDate        string          `json:"PaidDate,omitempty"`
	FullyPaidOnDate string          `json:"FullyPaidOnDate,omitempty"`
	Status          string          `json:"Status"`
	SubTotal        decimal.Decimal `json:"SubTotal"`
	TotalTax        decimal.Decimal `json:"TotalTax"`
	Total           decimal.Decimal `json:"Total"`
	CurrencyCode    string          `json:"CurrencyCode,omitempty"`
	Description     string          `json:"Description,omitempty"`
	Reference       string          `json:"Reference,omitempty"`
	LineItems       []LineItem      `json:"LineItems,omitempty"`
}

// Contact is the invoice counterparty.
type Contact struct {
	ContactID    string `json:"ContactID,omitempty"`
	Name         string `json:"Name"`
	EmailAddress string `json:"EmailAddress,omitempty"`
}

// LineItem is a single invoice line.
type LineItem struct {
	Description string          `json:"Description"`
	Quantity    decimal.Decimal `json:"Quantity"`
	UnitAmount  decimal.Decimal `json:"UnitAmount"`
	LineAmount  decimal.Decimal `json:"LineAmount"`
}

// invoicesEnvelope is the list response of GET /api.xro/2.0/Invoices.
type invoicesEnvelope struct {
	Invoices []Invoice `json:"Invoices"`
}
