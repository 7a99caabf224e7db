// Package currency normalizes transaction amounts into the base reporting
// currency using historical daily rates from the Frankfurter API.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Frankfurter endpoint (ECB reference rates).
	DefaultBaseURL   = "https://api.frankfurter.app"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	dateLayout = "2006-01-02"
)

// Converter looks up the historical rate for a date and converts amounts to
// the target currency. It is fail-open: lookup errors are logged and the
// amount comes back unconverted, so transaction creation is never blocked by
// the rate service. Rates are not cached between calls.
type Converter struct {
	httpClient     *http.Client
	baseURL        string
	targetCurrency string
	limiter        *rate.Limiter
	log            *zap.SugaredLogger
}

// Option configures a Converter.
type Option func(*Converter)

// WithBaseURL overrides the rate service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Converter) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for rate lookups.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Converter) {
		c.httpClient = httpClient
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Converter) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets the logger used to report failed lookups.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Converter) {
		c.log = log
	}
}

// NewConverter creates a Converter that normalizes to targetCurrency.
func NewConverter(targetCurrency string, opts ...Option) *Converter {
	c := &Converter{
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		baseURL:        DefaultBaseURL,
		targetCurrency: strings.ToUpper(targetCurrency),
		limiter:        rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:            zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TargetCurrency returns the target currency code (e.g. "CAD").
func (c *Converter) TargetCurrency() string {
	return c.targetCurrency
}

// NeedsConversion returns true if the given currency differs from the target.
func (c *Converter) NeedsConversion(fromCurrency string) bool {
	return strings.ToUpper(fromCurrency) != c.targetCurrency
}

// Convert returns amount expressed in the target currency at the rate for
// date, rounded half-up to 2 decimal places. Amounts already in the target
// currency, and amounts that are zero or negative, are returned unchanged
// without a lookup. Any lookup failure also returns the amount unchanged.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, date time.Time) decimal.Decimal {
	if !c.NeedsConversion(fromCurrency) || !amount.IsPositive() {
		return amount
	}

	from := strings.ToUpper(fromCurrency)
	ratio, err := c.crossRate(ctx, from, date)
	if err != nil {
		c.log.Warnw("currency conversion failed, keeping original amount",
			"from", from,
			"to", c.targetCurrency,
			"date", date.Format(dateLayout),
			"amount", amount.String(),
			"error", err,
		)
		return amount
	}

	return amount.Mul(ratio).Round(2)
}

// ratesResponse is the Frankfurter historical rates payload. Rates are quoted
// against Base, which is not necessarily either currency of the pair.
type ratesResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// crossRate returns how many units of the target currency one unit of from
// buys on date, derived from both currencies' rates against the service base.
func (c *Converter) crossRate(ctx context.Context, from string, date time.Time) (decimal.Decimal, error) {
	payload, err := c.fetchRates(ctx, from, date)
	if err != nil {
		return decimal.Zero, err
	}

	targetRate, err := payload.rateFor(c.targetCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	sourceRate, err := payload.rateFor(from)
	if err != nil {
		return decimal.Zero, err
	}

	return targetRate.Div(sourceRate), nil
}

func (r *ratesResponse) rateFor(code string) (decimal.Decimal, error) {
	if strings.EqualFold(r.Base, code) {
		return decimal.NewFromInt(1), nil
	}
	v, ok := r.Rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate not found for %s", code)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("invalid rate for %s: %s", code, v.String())
	}
	return v, nil
}

func (c *Converter) fetchRates(ctx context.Context, from string, date time.Time) (*ratesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := fmt.Sprintf("%s/%s?symbols=%s,%s", c.baseURL, date.Format(dateLayout), from, c.targetCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates http request for %s: %w", from, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rates request for %s: unexpected status %d", from, resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding rates response for %s: %w", from, err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("no rates in response for %s", from)
	}

	return &payload, nil
}
