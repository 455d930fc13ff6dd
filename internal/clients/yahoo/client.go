// Package yahoo provides a client for the Yahoo Finance API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/interfaces"
	"github.com/bobmcallan/chatfolio/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	// HistoryLimit caps the tail of bars returned by GetHistory to keep
	// responses small.
	HistoryLimit = 10
)

// Client implements the MarketDataClient interface against the Yahoo
// Finance chart and quoteSummary endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "chatfolio/"+common.GetVersion())

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Yahoo answers 404 with a structured chart error payload for
	// unknown symbols; let the caller map that to ErrNoData.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// chartResponse mirrors the v8/finance/chart payload. Indicator arrays
// hold pointers because Yahoo emits nulls for missing points.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// quoteSummaryResponse mirrors the v10/finance/quoteSummary payload.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				ShortName string      `json:"shortName"`
				MarketCap yahooNumber `json:"marketCap"`
			} `json:"price"`
			SummaryProfile struct {
				Sector string `json:"sector"`
			} `json:"summaryProfile"`
			SummaryDetail struct {
				TrailingPE yahooNumber `json:"trailingPE"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// yahooNumber handles Yahoo's {raw, fmt} number wrapping.
type yahooNumber struct {
	Raw float64 `json:"raw"`
}

// getChart fetches and validates chart data for a symbol.
func (c *Client) getChart(ctx context.Context, symbol, rng, interval string) ([]models.Bar, string, error) {
	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", interval)
	params.Set("includePrePost", "false")

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, "", err
	}

	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, "", fmt.Errorf("%w: %s", interfaces.ErrNoData, symbol)
		}
		return nil, "", fmt.Errorf("yahoo chart error for %s: %s - %s",
			symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, "", fmt.Errorf("%w: %s", interfaces.ErrNoData, symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, result.Meta.Currency, fmt.Errorf("%w: %s", interfaces.ErrNoData, symbol)
	}

	quote := result.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Skip null points (halted or partial bars).
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := models.Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, result.Meta.Currency, fmt.Errorf("%w: %s", interfaces.ErrNoData, symbol)
	}

	return bars, result.Meta.Currency, nil
}

// GetQuote retrieves a current market snapshot for a symbol. The price
// and day change come from the latest daily bar; name, sector, market
// cap and PE ratio come from the quoteSummary endpoint and degrade to
// zero values when that enrichment fails.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	bars, currency, err := c.getChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}

	last := bars[len(bars)-1]
	if currency == "" {
		currency = "USD"
	}

	quote := &models.Quote{
		Symbol:       symbol,
		Name:         "N/A",
		CurrentPrice: round2(last.Close),
		Currency:     currency,
		Sector:       "N/A",
		DayChange:    round2(last.Close - last.Open),
	}

	c.enrichQuote(ctx, symbol, quote)

	return quote, nil
}

// enrichQuote fills in company metadata from quoteSummary. Failures are
// logged and ignored: a quote without sector or PE is still usable.
func (c *Client) enrichQuote(ctx context.Context, symbol string, quote *models.Quote) {
	params := url.Values{}
	params.Set("modules", "price,summaryProfile,summaryDetail")

	var resp quoteSummaryResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), params, &resp); err != nil {
		c.logger.Debug().Err(err).Str("symbol", symbol).Msg("quoteSummary enrichment failed")
		return
	}

	if resp.QuoteSummary.Error != nil || len(resp.QuoteSummary.Result) == 0 {
		return
	}

	result := resp.QuoteSummary.Result[0]
	if result.Price.ShortName != "" {
		quote.Name = result.Price.ShortName
	}
	if result.SummaryProfile.Sector != "" {
		quote.Sector = result.SummaryProfile.Sector
	}
	quote.MarketCap = result.Price.MarketCap.Raw
	quote.PERatio = result.SummaryDetail.TrailingPE.Raw
}

// GetHistory retrieves recent daily OHLC bars for a symbol, capped to
// the HistoryLimit most recent records.
func (c *Client) GetHistory(ctx context.Context, symbol, period string) ([]models.Bar, error) {
	if period == "" {
		period = "1mo"
	}

	bars, _, err := c.getChart(ctx, symbol, period, "1d")
	if err != nil {
		return nil, err
	}

	if len(bars) > HistoryLimit {
		bars = bars[len(bars)-HistoryLimit:]
	}

	return bars, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
