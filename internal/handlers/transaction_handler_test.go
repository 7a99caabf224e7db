package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/services"
)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/transactions", handler.GetAllTransactions)
	r.GET("/transactions/balance", handler.GetCategoryBalances)
	r.GET("/transactions/:id/invoices", handler.GetTransactionInvoices)
	r.POST("/transactions", injectRole("admin"), handler.CreateTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 and forwards parsed fields", func(t *testing.T) {
		var (
			gotAmount   decimal.Decimal
			gotCurrency string
			gotDate     time.Time
			gotCategory uint
		)
		txSvc := &mockTransactionService{
			createTransactionFn: func(_ context.Context, amount decimal.Decimal, currency string, date time.Time, description string, categoryID uint) (*services.TransactionResponse, error) {
				gotAmount, gotCurrency, gotDate, gotCategory = amount, currency, date, categoryID
				return &services.TransactionResponse{
					ID:           7,
					Amount:       amount,
					Currency:     currency,
					ConvertedCAD: decimal.RequireFromString("133.57"),
					Date:         date.Format(services.DateLayout),
					Description:  description,
					CategoryID:   categoryID,
				}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockLinkService{}, audit))

		body := `{"amount":100,"currency":"USD","date":"2024-01-15","description":"Lunch","category_id":3}`
		rec := doRequest(r, http.MethodPost, "/transactions", body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		assertSuccess(t, result)
		if !gotAmount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("amount = %s, want 100", gotAmount)
		}
		if gotCurrency != "USD" || gotCategory != 3 {
			t.Errorf("currency/category = %s/%d, want USD/3", gotCurrency, gotCategory)
		}
		if !gotDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("date = %s, want 2024-01-15", gotDate)
		}
		data := result["data"].(map[string]interface{})
		if data["convertedCad"] != 133.57 {
			t.Errorf("convertedCad = %v, want 133.57", data["convertedCad"])
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != "CREATE_TRANSACTION" || audit.entries[0].Actor != "admin" {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"no amount", `{"currency":"USD","date":"2024-01-15","description":"Lunch","category_id":3}`},
			{"no currency", `{"amount":10,"date":"2024-01-15","description":"Lunch","category_id":3}`},
			{"no date", `{"amount":10,"currency":"USD","description":"Lunch","category_id":3}`},
			{"no description", `{"amount":10,"currency":"USD","date":"2024-01-15","category_id":3}`},
			{"no category", `{"amount":10,"currency":"USD","date":"2024-01-15","description":"Lunch"}`},
			{"bad currency", `{"amount":10,"currency":"XYZ","date":"2024-01-15","description":"Lunch","category_id":3}`},
			{"bad date", `{"amount":10,"currency":"USD","date":"yesterday","description":"Lunch","category_id":3}`},
			{"malformed json", `{"amount":`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				called := false
				txSvc := &mockTransactionService{
					createTransactionFn: func(context.Context, decimal.Decimal, string, time.Time, string, uint) (*services.TransactionResponse, error) {
						called = true
						return &services.TransactionResponse{}, nil
					},
				}
				audit := &mockAuditService{}
				r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockLinkService{}, audit))

				rec := doRequest(r, http.MethodPost, "/transactions", tt.body)

				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
				}
				assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
				if called {
					t.Error("service should not be called on invalid input")
				}
				if len(audit.entries) != 0 {
					t.Error("no audit entry expected on failure")
				}
			})
		}
	})

	t.Run("returns 404 when category is missing", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(context.Context, decimal.Decimal, string, time.Time, string, uint) (*services.TransactionResponse, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockLinkService{}, &mockAuditService{}))

		body := `{"amount":10,"currency":"CAD","date":"2024-01-15","description":"Lunch","category_id":99}`
		rec := doRequest(r, http.MethodPost, "/transactions", body)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestTransactionHandler_GetAllTransactions(t *testing.T) {
	txSvc := &mockTransactionService{
		getAllTransactionsFn: func() ([]services.TransactionResponse, error) {
			return []services.TransactionResponse{
				{ID: 2, Description: "Bus", CategoryName: "Transportation"},
				{ID: 1, Description: "Lunch", CategoryName: "Food & Dining"},
			}, nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockLinkService{}, &mockAuditService{}))

	rec := doRequest(r, http.MethodGet, "/transactions", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	assertSuccess(t, result)
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(data))
	}
	if data[0].(map[string]interface{})["categoryName"] != "Transportation" {
		t.Errorf("unexpected first transaction: %v", data[0])
	}
}

func TestTransactionHandler_GetCategoryBalances(t *testing.T) {
	txSvc := &mockTransactionService{
		getCategoryBalancesFn: func() ([]services.CategoryBalance, error) {
			return []services.CategoryBalance{
				{CategoryID: 1, CategoryName: "Food & Dining", Count: 2, Total: decimal.RequireFromString("40.50"), Transactions: []services.TransactionResponse{}},
			}, nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockLinkService{}, &mockAuditService{}))

	rec := doRequest(r, http.MethodGet, "/transactions/balance", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	bucket := data[0].(map[string]interface{})
	if bucket["total"] != 40.5 {
		t.Errorf("total = %v, want 40.5", bucket["total"])
	}
	if bucket["categoryName"] != "Food & Dining" {
		t.Errorf("categoryName = %v", bucket["categoryName"])
	}
}

func TestTransactionHandler_GetTransactionInvoices(t *testing.T) {
	t.Run("returns linked invoices", func(t *testing.T) {
		var gotID uint
		linkSvc := &mockLinkService{
			invoicesForTransactionFn: func(transactionID uint) ([]services.InvoiceResponse, error) {
				gotID = transactionID
				return []services.InvoiceResponse{{ID: 4, InvoiceNumber: "INV-0004"}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, linkSvc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/transactions/12/invoices", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != 12 {
			t.Errorf("transaction id = %d, want 12", gotID)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 invoice, got %d", len(data))
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockLinkService{}, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/transactions/abc/invoices", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when transaction is missing", func(t *testing.T) {
		linkSvc := &mockLinkService{
			invoicesForTransactionFn: func(uint) ([]services.InvoiceResponse, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, linkSvc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/transactions/99/invoices", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}
