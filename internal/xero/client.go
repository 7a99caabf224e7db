package xero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.xero.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 1 // Xero allows 60 calls per minute per tenant

	invoicesPath = "/api.xro/2.0/Invoices"
	maxPages     = 1000
)

// HTTPSource fetches invoices from the Xero Accounting API.
type HTTPSource struct {
	baseURL     string
	accessToken string
	tenantID    string
	httpClient  *http.Client
	limiter     *rate.Limiter
	log         *zap.SugaredLogger
}

// ClientOption configures an HTTPSource.
type ClientOption func(*HTTPSource)

// WithBaseURL sets the API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(s *HTTPSource) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTenantID sets the xero-tenant-id header sent with every request.
func WithTenantID(tenantID string) ClientOption {
	return func(s *HTTPSource) {
		s.tenantID = tenantID
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(s *HTTPSource) {
		s.httpClient = httpClient
	}
}

// WithRateLimit sets the rate limit in requests per second.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(s *HTTPSource) {
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) ClientOption {
	return func(s *HTTPSource) {
		s.log = log
	}
}

// NewHTTPSource creates a Xero API source authenticated with accessToken.
func NewHTTPSource(accessToken string, opts ...ClientOption) *HTTPSource {
	s := &HTTPSource{
		baseURL:     DefaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), 5),
		log:         zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// APIError is returned when Xero answers with a non-200 status.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("xero API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// FetchInvoices walks the paged invoice list until Xero returns an empty page.
func (s *HTTPSource) FetchInvoices(ctx context.Context) ([]Invoice, error) {
	var all []Invoice
	for page := 1; page <= maxPages; page++ {
		var resp invoicesEnvelope
		if err := s.get(ctx, fmt.Sprintf("%s?page=%d", invoicesPath, page), &resp); err != nil {
			return nil, err
		}
		if len(resp.Invoices) == 0 {
			break
		}
		all = append(all, resp.Invoices...)
	}

	s.log.Infow("fetched invoices from xero", "count", len(all))
	return all, nil
}

// FetchInvoice returns a single invoice by its Xero id, or nil when Xero
// reports it does not exist.
func (s *HTTPSource) FetchInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	var resp invoicesEnvelope
	err := s.get(ctx, invoicesPath+"/"+invoiceID, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(resp.Invoices) == 0 {
		return nil, nil
	}
	return &resp.Invoices[0], nil
}

func (s *HTTPSource) get(ctx context.Context, path string, result interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Accept", "application/json")
	if s.tenantID != "" {
		req.Header.Set("xero-tenant-id", s.tenantID)
	}

	s.log.Debugw("xero API request", "path", path)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
