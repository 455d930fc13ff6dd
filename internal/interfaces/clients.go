// Package interfaces defines service contracts for the portfolio chat service
package interfaces

import (
	"context"
	"errors"

	"github.com/bobmcallan/chatfolio/internal/models"
)

// ErrNoData indicates the provider has no trading data for a symbol
// (bad symbol, delisted, or no recent bars). It is a normal business
// outcome, not a system fault.
var ErrNoData = errors.New("no market data for symbol")

// MarketDataClient provides live market data lookups. Calls are
// blocking and may be slow; callers needing bounded latency must wrap
// the client externally.
type MarketDataClient interface {
	// GetQuote retrieves a current market snapshot for a symbol.
	// Returns an error wrapping ErrNoData when the provider has no
	// trading data for the symbol.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetHistory retrieves recent OHLC bars for a symbol over the given
	// period (e.g. "1mo"), capped to the 10 most recent records.
	GetHistory(ctx context.Context, symbol, period string) ([]models.Bar, error)
}
