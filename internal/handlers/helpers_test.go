package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"financetracker/internal/models"
	"financetracker/internal/services"
	"financetracker/internal/validator"
)

// --- mock services ---

type mockCategoryService struct {
	getAllCategoriesFn func() ([]models.Category, error)
}

func (m *mockCategoryService) GetAllCategories() ([]models.Category, error) {
	if m.getAllCategoriesFn != nil {
		return m.getAllCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(_ uint) (*models.Category, error) {
	return &models.Category{}, nil
}

func (m *mockCategoryService) SeedDefaults() error { return nil }

var _ services.CategoryServicer = (*mockCategoryService)(nil)

type mockTransactionService struct {
	createTransactionFn   func(ctx context.Context, amount decimal.Decimal, currency string, date time.Time, description string, categoryID uint) (*services.TransactionResponse, error)
	getAllTransactionsFn  func() ([]services.TransactionResponse, error)
	getCategoryBalancesFn func() ([]services.CategoryBalance, error)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, amount decimal.Decimal, currency string, date time.Time, description string, categoryID uint) (*services.TransactionResponse, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(ctx, amount, currency, date, description, categoryID)
	}
	return &services.TransactionResponse{}, nil
}

func (m *mockTransactionService) GetAllTransactions() ([]services.TransactionResponse, error) {
	if m.getAllTransactionsFn != nil {
		return m.getAllTransactionsFn()
	}
	return []services.TransactionResponse{}, nil
}

func (m *mockTransactionService) GetTransactionByID(_ uint) (*services.TransactionResponse, error) {
	return &services.TransactionResponse{}, nil
}

func (m *mockTransactionService) GetCategoryBalances() ([]services.CategoryBalance, error) {
	if m.getCategoryBalancesFn != nil {
		return m.getCategoryBalancesFn()
	}
	return []services.CategoryBalance{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockInvoiceService struct {
	createInvoiceFn  func(input services.CreateInvoiceInput) (*services.InvoiceResponse, error)
	getAllInvoicesFn func() ([]services.InvoiceResponse, error)
	getInvoiceByIDFn func(invoiceID uint) (*services.InvoiceResponse, error)
	getByXeroIDFn    func(xeroInvoiceID string) (*services.InvoiceResponse, error)
	updateInvoiceFn  func(invoiceID uint, input services.UpdateInvoiceInput) (*services.InvoiceResponse, error)
	deleteInvoiceFn  func(invoiceID uint) (bool, error)
}

func (m *mockInvoiceService) CreateInvoice(input services.CreateInvoiceInput) (*services.InvoiceResponse, error) {
	if m.createInvoiceFn != nil {
		return m.createInvoiceFn(input)
	}
	return &services.InvoiceResponse{}, nil
}

func (m *mockInvoiceService) GetAllInvoices() ([]services.InvoiceResponse, error) {
	if m.getAllInvoicesFn != nil {
		return m.getAllInvoicesFn()
	}
	return []services.InvoiceResponse{}, nil
}

func (m *mockInvoiceService) GetInvoiceByID(invoiceID uint) (*services.InvoiceResponse, error) {
	if m.getInvoiceByIDFn != nil {
		return m.getInvoiceByIDFn(invoiceID)
	}
	return &services.InvoiceResponse{ID: invoiceID}, nil
}

func (m *mockInvoiceService) GetInvoiceByXeroID(xeroInvoiceID string) (*services.InvoiceResponse, error) {
	if m.getByXeroIDFn != nil {
		return m.getByXeroIDFn(xeroInvoiceID)
	}
	return &services.InvoiceResponse{XeroInvoiceID: xeroInvoiceID}, nil
}

func (m *mockInvoiceService) UpdateInvoice(invoiceID uint, input services.UpdateInvoiceInput) (*services.InvoiceResponse, error) {
	if m.updateInvoiceFn != nil {
		return m.updateInvoiceFn(invoiceID, input)
	}
	return &services.InvoiceResponse{ID: invoiceID}, nil
}

func (m *mockInvoiceService) DeleteInvoice(invoiceID uint) (bool, error) {
	if m.deleteInvoiceFn != nil {
		return m.deleteInvoiceFn(invoiceID)
	}
	return true, nil
}

var _ services.InvoiceServicer = (*mockInvoiceService)(nil)

type mockLinkService struct {
	linkFn                   func(transactionID, invoiceID uint, amount *decimal.Decimal, notes *string) (*services.LinkResponse, error)
	unlinkFn                 func(transactionID, invoiceID uint) (bool, error)
	linksForInvoiceFn        func(invoiceID uint) ([]services.LinkResponse, error)
	invoicesForTransactionFn func(transactionID uint) ([]services.InvoiceResponse, error)
}

func (m *mockLinkService) Link(transactionID, invoiceID uint, amount *decimal.Decimal, notes *string) (*services.LinkResponse, error) {
	if m.linkFn != nil {
		return m.linkFn(transactionID, invoiceID, amount, notes)
	}
	return &services.LinkResponse{TransactionID: transactionID, InvoiceID: invoiceID}, nil
}

func (m *mockLinkService) Unlink(transactionID, invoiceID uint) (bool, error) {
	if m.unlinkFn != nil {
		return m.unlinkFn(transactionID, invoiceID)
	}
	return true, nil
}

func (m *mockLinkService) LinksForInvoice(invoiceID uint) ([]services.LinkResponse, error) {
	if m.linksForInvoiceFn != nil {
		return m.linksForInvoiceFn(invoiceID)
	}
	return []services.LinkResponse{}, nil
}

func (m *mockLinkService) InvoicesForTransaction(transactionID uint) ([]services.InvoiceResponse, error) {
	if m.invoicesForTransactionFn != nil {
		return m.invoicesForTransactionFn(transactionID)
	}
	return []services.InvoiceResponse{}, nil
}

var _ services.LinkServicer = (*mockLinkService)(nil)

type mockSyncService struct {
	syncAllFn func(ctx context.Context) ([]services.InvoiceResponse, error)
	syncOneFn func(ctx context.Context, xeroInvoiceID string) (*services.InvoiceResponse, error)
}

func (m *mockSyncService) SyncAll(ctx context.Context) ([]services.InvoiceResponse, error) {
	if m.syncAllFn != nil {
		return m.syncAllFn(ctx)
	}
	return []services.InvoiceResponse{}, nil
}

func (m *mockSyncService) SyncOne(ctx context.Context, xeroInvoiceID string) (*services.InvoiceResponse, error) {
	if m.syncOneFn != nil {
		return m.syncOneFn(ctx, xeroInvoiceID)
	}
	return &services.InvoiceResponse{XeroInvoiceID: xeroInvoiceID}, nil
}

var _ services.SyncServicer = (*mockSyncService)(nil)

type mockAuditService struct {
	entries []services.AuditEntry
}

func (m *mockAuditService) Record(_ context.Context, entry services.AuditEntry) {
	m.entries = append(m.entries, entry)
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["success"] != false {
		t.Errorf("expected success=false, got %v", result["success"])
	}
	if result["error"] != code {
		t.Errorf("expected error code %q, got %v", code, result["error"])
	}
}

func assertSuccess(t *testing.T, result map[string]interface{}) {
	t.Helper()
	if result["success"] != true {
		t.Fatalf("expected success=true, got: %v", result)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"calendar date", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 truncated", "2024-01-15T18:30:00Z", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"surrounding spaces", " 2024-03-01 ", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "15/01/2024", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate("date", tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNullableDate(t *testing.T) {
	t.Run("absent stays unset", func(t *testing.T) {
		got, err := parseNullableDate("dueDate", services.Nullable[string]{})
		if err != nil || got.Set {
			t.Fatalf("got %+v, %v; want unset", got, err)
		}
	})

	t.Run("null clears", func(t *testing.T) {
		got, err := parseNullableDate("dueDate", services.Null[string]())
		if err != nil || !got.Set || got.Value != nil {
			t.Fatalf("got %+v, %v; want cleared", got, err)
		}
	})

	t.Run("value parses", func(t *testing.T) {
		got, err := parseNullableDate("dueDate", services.Some("2024-02-10"))
		if err != nil || !got.Set || got.Value == nil {
			t.Fatalf("got %+v, %v; want a date", got, err)
		}
		if got.Value.Day() != 10 {
			t.Errorf("day = %d, want 10", got.Value.Day())
		}
	})
}
