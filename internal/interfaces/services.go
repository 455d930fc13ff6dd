package interfaces

import (
	"context"

	"github.com/bobmcallan/chatfolio/internal/models"
)

// AnalyticsService computes portfolio valuation, comparisons and
// purchase simulations by composing store reads with market data
// lookups. It holds no state between calls.
type AnalyticsService interface {
	// PortfolioValue values all of a user's holdings at current prices.
	// Holdings whose quote lookup fails are skipped from the detail list
	// and the totals. An empty portfolio yields a report with Empty set,
	// not a zeroed report.
	PortfolioValue(ctx context.Context, userID string) (*models.ValuationReport, error)

	// CompareStocks quotes each symbol independently; symbols whose
	// lookup fails are omitted. Successful quotes follow input order.
	CompareStocks(ctx context.Context, symbols []string) ([]*models.Quote, error)

	// SimulatePurchase projects the portfolio value after a hypothetical
	// purchase. A failed quote lookup is terminal. Never writes.
	SimulatePurchase(ctx context.Context, userID, symbol string, quantity float64) (*models.SimulationReport, error)

	// Recommend builds a fixed allocation suggestion from the risk
	// level implied by the message text.
	Recommend(ctx context.Context, message string) (*models.RecommendationReport, error)
}

// ChatService interprets a raw message and dispatches it. Handle never
// fails: every collaborator fault is converted into a response-level
// error object inside the envelope.
type ChatService interface {
	Handle(ctx context.Context, userID, message string) *models.Envelope
}
