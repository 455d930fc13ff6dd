package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/chatfolio/internal/interfaces"
)

// chartBody builds a minimal chart payload with the given bars.
func chartBody(symbol string, timestamps []int64, opens, closes []float64) string {
	ts := make([]string, len(timestamps))
	op := make([]string, len(opens))
	cl := make([]string, len(closes))
	for i, t := range timestamps {
		ts[i] = fmt.Sprintf("%d", t)
	}
	for i, v := range opens {
		op[i] = fmt.Sprintf("%g", v)
	}
	for i, v := range closes {
		cl[i] = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"USD","symbol":%q,"regularMarketPrice":%s},
		"timestamp":[%s],
		"indicators":{"quote":[{"open":[%s],"close":[%s]}]}
	}],"error":null}}`,
		symbol, cl[len(cl)-1], strings.Join(ts, ","), strings.Join(op, ","), strings.Join(cl, ","))
}

const summaryBody = `{"quoteSummary":{"result":[{
	"price":{"shortName":"Apple Inc.","marketCap":{"raw":2800000000000}},
	"summaryProfile":{"sector":"Technology"},
	"summaryDetail":{"trailingPE":{"raw":29.5}}
}],"error":null}}`

const notFoundBody = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
}

func TestGetQuote_PriceAndDayChangeFromLastBar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			fmt.Fprint(w, chartBody("AAPL", []int64{1700000000}, []float64{118.5}, []float64{120.0}))
		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			fmt.Fprint(w, summaryBody)
		default:
			http.NotFound(w, r)
		}
	})

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}

	if quote.CurrentPrice != 120.0 {
		t.Errorf("CurrentPrice = %v, want 120", quote.CurrentPrice)
	}
	if quote.DayChange != 1.5 {
		t.Errorf("DayChange = %v, want 1.5 (close - open)", quote.DayChange)
	}
	if quote.Name != "Apple Inc." || quote.Sector != "Technology" {
		t.Errorf("enrichment missing: name=%q sector=%q", quote.Name, quote.Sector)
	}
	if quote.PERatio != 29.5 {
		t.Errorf("PERatio = %v, want 29.5", quote.PERatio)
	}
	if quote.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", quote.Currency)
	}
}

func TestGetQuote_UnknownSymbolIsErrNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundBody)
	})

	_, err := client.GetQuote(context.Background(), "NOPE")
	if !errors.Is(err, interfaces.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestGetQuote_EmptyBarsIsErrNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"currency":"USD","symbol":"AAPL"},"timestamp":[],"indicators":{"quote":[]}}],"error":null}}`)
	})

	_, err := client.GetQuote(context.Background(), "AAPL")
	if !errors.Is(err, interfaces.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData for no bars", err)
	}
}

func TestGetQuote_ServerFaultIsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetQuote(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, interfaces.ErrNoData) {
		t.Error("server fault must not map to ErrNoData")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("err = %v, want *APIError", err)
	}
}

func TestGetQuote_EnrichmentFailureDegrades(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v8/finance/chart/") {
			fmt.Fprint(w, chartBody("AAPL", []int64{1700000000}, []float64{100}, []float64{101}))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	quote, err := client.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetQuote should survive enrichment failure: %v", err)
	}
	if quote.Name != "N/A" || quote.Sector != "N/A" {
		t.Errorf("expected N/A placeholders, got name=%q sector=%q", quote.Name, quote.Sector)
	}
	if quote.CurrentPrice != 101 {
		t.Errorf("CurrentPrice = %v, want 101", quote.CurrentPrice)
	}
}

func TestGetHistory_CappedToTenMostRecent(t *testing.T) {
	timestamps := make([]int64, 15)
	opens := make([]float64, 15)
	closes := make([]float64, 15)
	for i := range timestamps {
		timestamps[i] = int64(1700000000 + i*86400)
		opens[i] = float64(100 + i)
		closes[i] = float64(101 + i)
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody("AAPL", timestamps, opens, closes))
	})

	bars, err := client.GetHistory(context.Background(), "AAPL", "1mo")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}

	if len(bars) != 10 {
		t.Fatalf("len(bars) = %d, want 10", len(bars))
	}
	// The tail keeps the most recent records.
	if bars[9].Close != 115 {
		t.Errorf("last close = %v, want 115", bars[9].Close)
	}
	if bars[0].Close != 106 {
		t.Errorf("first close = %v, want 106 (older bars dropped)", bars[0].Close)
	}
}

func TestGetHistory_NullPointsSkipped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{
			"meta":{"currency":"USD","symbol":"AAPL"},
			"timestamp":[1700000000,1700086400,1700172800],
			"indicators":{"quote":[{"open":[100,null,102],"close":[101,null,103]}]}
		}],"error":null}}`)
	})

	bars, err := client.GetHistory(context.Background(), "AAPL", "5d")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2 (null point skipped)", len(bars))
	}
	if bars[1].Close != 103 {
		t.Errorf("last close = %v, want 103", bars[1].Close)
	}
}
