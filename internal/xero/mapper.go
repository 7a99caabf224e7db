package xero

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"financetracker/internal/models"
)

var statusMap = map[string]models.InvoiceStatus{
	"DRAFT":      models.InvoiceStatusDraft,
	"SUBMITTED":  models.InvoiceStatusSubmitted,
	"AUTHORISED": models.InvoiceStatusAuthorised,
	"PAID":       models.InvoiceStatusPaid,
	"VOIDED":     models.InvoiceStatusVoided,
	"DELETED":    models.InvoiceStatusDeleted,
}

// ConvertStatus maps a Xero status onto the local status set. Matching is
// exact; anything else (SENT, or a lower-case spelling) becomes DRAFT.
func ConvertStatus(status string) models.InvoiceStatus {
	if s, ok := statusMap[status]; ok {
		return s
	}
	return models.InvoiceStatusDraft
}

// ConvertType maps a Xero invoice type. Only ACCPAY is a bill; everything else
// is treated as a sales invoice.
func ConvertType(invoiceType string) models.InvoiceType {
	if invoiceType == string(models.InvoiceTypePayable) {
		return models.InvoiceTypePayable
	}
	return models.InvoiceTypeReceivable
}

// ToInvoice maps an external invoice onto a new, unsaved local invoice.
// defaultCurrency fills in a missing currency code.
func ToInvoice(src Invoice, defaultCurrency string) (models.Invoice, error) {
	if strings.TrimSpace(src.InvoiceID) == "" {
		return models.Invoice{}, fmt.Errorf("invoice %q has no InvoiceID", src.InvoiceNumber)
	}

	invoiceDate, err := ParseDate(src.Date)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("invoice %s: date: %w", src.InvoiceID, err)
	}
	dueDate, err := parseOptionalDate(src.DueDate)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("invoice %s: due date: %w", src.InvoiceID, err)
	}
	paidDate, err := parseOptionalDate(firstNonEmpty(src.PaidDate, src.FullyPaidOnDate))
	if err != nil {
		return models.Invoice{}, fmt.Errorf("invoice %s: paid date: %w", src.InvoiceID, err)
	}

	currency := strings.ToUpper(strings.TrimSpace(src.CurrencyCode))
	if currency == "" {
		currency = strings.ToUpper(defaultCurrency)
	}

	description := src.Description
	if description == "" && len(src.LineItems) > 0 {
		description = src.LineItems[0].Description
	}

	return models.Invoice{
		XeroInvoiceID: src.InvoiceID,
		InvoiceNumber: src.InvoiceNumber,
		ContactName:   src.Contact.Name,
		ContactEmail:  optionalString(src.Contact.EmailAddress),
		SubTotal:      src.SubTotal,
		TaxAmount:     src.TotalTax,
		TotalAmount:   src.Total,
		Currency:      currency,
		Status:        ConvertStatus(src.Status),
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		PaidDate:      paidDate,
		Description:   optionalString(description),
		Reference:     optionalString(src.Reference),
		Type:          ConvertType(src.Type),
	}, nil
}

// msDateRe matches the WCF-style dates Xero emits in JSON, e.g.
// "/Date(1705276800000+0000)/".
var msDateRe = regexp.MustCompile(`^/Date\((-?\d+)([+-]\d{4})?\)/$`)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses the date formats Xero uses and returns the calendar date
// at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if m := msDateRe.FindStringSubmatch(raw); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		return truncateToDate(time.UnixMilli(ms).UTC()), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return truncateToDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
