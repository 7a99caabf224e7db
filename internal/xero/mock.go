package xero

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMockLatency simulates the round trip of the real API.
const DefaultMockLatency = 100 * time.Millisecond

var mockInvoices = []Invoice{
	{
		InvoiceID:     "xero-inv-001",
		InvoiceNumber: "INV-2024-001",
		Contact:       Contact{Name: "Acme Corporation", EmailAddress: "billing@acme.com"},
		SubTotal:      decimal.NewFromInt(1000),
		TotalTax:      decimal.NewFromInt(130),
		Total:         decimal.NewFromInt(1130),
		CurrencyCode:  "CAD",
		Status:        "PAID",
		Date:          "2024-01-15",
		DueDate:       "2024-02-15",
		PaidDate:      "2024-01-20",
		Description:   "Web development services for Q1 2024",
		Reference:     "PO-2024-001",
		Type:          "ACCREC",
	},
	{
		InvoiceID:     "xero-inv-002",
		InvoiceNumber: "INV-2024-002",
		Contact:       Contact{Name: "TechStart Inc", EmailAddress: "accounts@techstart.com"},
		SubTotal:      decimal.NewFromInt(2500),
		TotalTax:      decimal.NewFromInt(325),
		Total:         decimal.NewFromInt(2825),
		CurrencyCode:  "CAD",
		Status:        "SENT",
		Date:          "2024-01-20",
		DueDate:       "2024-02-20",
		Description:   "Mobile app development project",
		Reference:     "PO-2024-002",
		Type:          "ACCREC",
	},
	{
		InvoiceID:     "xero-inv-003",
		InvoiceNumber: "INV-2024-003",
		Contact:       Contact{Name: "Office Supplies Co", EmailAddress: "orders@officesupplies.com"},
		SubTotal:      decimal.NewFromInt(150),
		TotalTax:      decimal.RequireFromString("19.5"),
		Total:         decimal.RequireFromString("169.5"),
		CurrencyCode:  "CAD",
		Status:        "DRAFT",
		Date:          "2024-01-25",
		Description:   "Office supplies and equipment",
		Type:          "ACCPAY",
	},
	{
		InvoiceID:     "xero-inv-004",
		InvoiceNumber: "INV-2024-004",
		Contact:       Contact{Name: "Cloud Services Ltd", EmailAddress: "billing@cloudservices.com"},
		SubTotal:      decimal.NewFromInt(500),
		TotalTax:      decimal.NewFromInt(65),
		Total:         decimal.NewFromInt(565),
		CurrencyCode:  "CAD",
		Status:        "PAID",
		Date:          "2024-01-10",
		DueDate:       "2024-02-10",
		PaidDate:      "2024-01-12",
		Description:   "Monthly cloud hosting services",
		Reference:     "CS-2024-001",
		Type:          "ACCPAY",
	},
	{
		InvoiceID:     "xero-inv-005",
		InvoiceNumber: "INV-2024-005",
		Contact:       Contact{Name: "Marketing Agency", EmailAddress: "billing@marketing.com"},
		SubTotal:      decimal.NewFromInt(3000),
		TotalTax:      decimal.NewFromInt(390),
		Total:         decimal.NewFromInt(3390),
		CurrencyCode:  "CAD",
		Status:        "VOIDED",
		Date:          "2024-01-05",
		Description:   "Digital marketing campaign (cancelled)",
		Reference:     "MA-2024-001",
		Type:          "ACCREC",
	},
}

// MockSource serves a fixed set of invoices after a simulated delay.
// The dataset is shared and read-only; every call returns a fresh copy.
type MockSource struct {
	latency time.Duration
}

// NewMockSource creates a MockSource with the given simulated latency.
func NewMockSource(latency time.Duration) *MockSource {
	return &MockSource{latency: latency}
}

// FetchInvoices returns all mock invoices.
func (m *MockSource) FetchInvoices(ctx context.Context) ([]Invoice, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	out := make([]Invoice, len(mockInvoices))
	for i := range mockInvoices {
		out[i] = cloneInvoice(mockInvoices[i])
	}
	return out, nil
}

// FetchInvoice returns the mock invoice with the given external id, or nil
// when there is none.
func (m *MockSource) FetchInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	for i := range mockInvoices {
		if mockInvoices[i].InvoiceID == invoiceID {
			inv := cloneInvoice(mockInvoices[i])
			return &inv, nil
		}
	}
	return nil, nil
}

func (m *MockSource) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneInvoice(inv Invoice) Invoice {
	if inv.LineItems != nil {
		inv.LineItems = append([]LineItem(nil), inv.LineItems...)
	}
	return inv
}
