package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"financetracker/internal/logger"
	"financetracker/internal/middleware"
	"financetracker/internal/services"
	"financetracker/internal/testutil"
	"financetracker/internal/validator"
	"financetracker/internal/xero"
)

const testSecret = "flow-test-secret"

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Token  string
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// fixedRateConverter converts every non-base currency at one fixed rate.
type fixedRateConverter struct {
	rate decimal.Decimal
}

func (f fixedRateConverter) Convert(_ context.Context, amount decimal.Decimal, fromCurrency string, _ time.Time) decimal.Decimal {
	if strings.EqualFold(fromCurrency, "CAD") || !amount.IsPositive() {
		return amount
	}
	return amount.Mul(f.rate).Round(2)
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite, the mock invoice source, and seeded categories.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithSource(t, xero.NewMockSource(0))
}

func setupAppWithSource(t *testing.T, source xero.InvoiceSource) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	if err := services.NewCategoryService(db).SeedDefaults(); err != nil {
		t.Fatalf("seeding categories: %v", err)
	}

	router := NewRouter(Deps{
		DB:            db,
		Converter:     fixedRateConverter{rate: decimal.RequireFromString("1.3357")},
		InvoiceSource: source,
		BaseCurrency:  "CAD",
		JWTSecret:     testSecret,
	})

	token, err := middleware.GenerateToken(testSecret, "admin", time.Hour)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	return &testApp{DB: db, Router: router, Token: token}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// mustStatus fails the test unless rec carries the wanted status, and returns
// the parsed envelope.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) map[string]interface{} {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// createTransaction posts a transaction and returns its id.
func (app *testApp) createTransaction(t *testing.T, amount, currency, description string, categoryID int) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%s,"currency":%q,"date":"2024-01-15","description":%q,"category_id":%d}`,
		amount, currency, description, categoryID)
	result := mustStatus(t, app.request(http.MethodPost, "/api/transactions", body, app.Token), http.StatusCreated)
	return result["data"].(map[string]interface{})["id"].(float64)
}

// createInvoice posts a minimal invoice and returns its id.
func (app *testApp) createInvoice(t *testing.T, xeroID string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"xeroInvoiceId":%q,"invoiceNumber":"INV-%s","contactName":"Acme Corp","subTotal":100,"taxAmount":13,"totalAmount":113,"invoiceDate":"2024-01-10"}`,
		xeroID, xeroID)
	result := mustStatus(t, app.request(http.MethodPost, "/api/invoices", body, app.Token), http.StatusCreated)
	return result["data"].(map[string]interface{})["id"].(float64)
}
