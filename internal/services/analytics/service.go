// Package analytics computes portfolio valuation, comparisons and
// purchase simulations by composing store reads with live market data
// lookups. The service holds no state between calls: every operation
// re-reads the store and quotes fresh.
package analytics

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/interfaces"
	"github.com/bobmcallan/chatfolio/internal/models"
)

// Service implements AnalyticsService
type Service struct {
	storage interfaces.StorageManager
	market  interfaces.MarketDataClient
	logger  *common.Logger
}

// NewService creates a new analytics service
func NewService(storage interfaces.StorageManager, market interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		market:  market,
		logger:  logger,
	}
}

// PortfolioValue values all of a user's holdings at current prices.
// Holdings whose quote lookup fails are skipped from the detail list
// and from the totals; the report reflects only successfully priced
// holdings. Totals are summed first and rounded once at output.
func (s *Service) PortfolioValue(ctx context.Context, userID string) (*models.ValuationReport, error) {
	holdings, err := s.storage.PortfolioStore().GetHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings: %w", err)
	}

	if len(holdings) == 0 {
		return &models.ValuationReport{Empty: true}, nil
	}

	var totalValue, totalCost float64
	details := make([]models.HoldingValue, 0, len(holdings))

	for _, holding := range holdings {
		quote, err := s.market.GetQuote(ctx, holding.Symbol)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("symbol", holding.Symbol).
				Str("user_id", userID).
				Msg("Skipping unpriceable holding in valuation")
			continue
		}

		currentValue := holding.Quantity * quote.CurrentPrice
		costBasis := holding.Quantity * holding.BuyPrice
		profitLoss := currentValue - costBasis

		details = append(details, models.HoldingValue{
			Symbol:        holding.Symbol,
			Name:          quote.Name,
			Quantity:      holding.Quantity,
			BuyPrice:      holding.BuyPrice,
			CurrentPrice:  quote.CurrentPrice,
			CurrentValue:  round2(currentValue),
			CostBasis:     round2(costBasis),
			ProfitLoss:    round2(profitLoss),
			ProfitLossPct: pct(profitLoss, costBasis),
		})

		totalValue += currentValue
		totalCost += costBasis
	}

	totalProfitLoss := totalValue - totalCost

	return &models.ValuationReport{
		TotalValue:         round2(totalValue),
		TotalCost:          round2(totalCost),
		TotalProfitLoss:    round2(totalProfitLoss),
		TotalProfitLossPct: pct(totalProfitLoss, totalCost),
		Holdings:           details,
	}, nil
}

// CompareStocks quotes each symbol independently. Symbols whose lookup
// fails are omitted; successful quotes keep input order.
func (s *Service) CompareStocks(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	quotes := make([]*models.Quote, 0, len(symbols))

	for _, symbol := range symbols {
		quote, err := s.market.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Skipping symbol in comparison")
			continue
		}
		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// SimulatePurchase projects the portfolio value after a hypothetical
// purchase. Unlike valuation and comparison, a failed quote here is the
// whole result: the one target symbol is the entire request. Never
// writes to the store.
func (s *Service) SimulatePurchase(ctx context.Context, userID, symbol string, quantity float64) (*models.SimulationReport, error) {
	quote, err := s.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	report, err := s.PortfolioValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	purchaseCost := quantity * quote.CurrentPrice

	return &models.SimulationReport{
		Symbol:                symbol,
		Quantity:              quantity,
		PricePerShare:         quote.CurrentPrice,
		TotalCost:             round2(purchaseCost),
		CurrentPortfolioValue: report.TotalValue,
		NewPortfolioValue:     round2(report.TotalValue + purchaseCost),
	}, nil
}

// riskBuckets are the fixed allocation sets keyed by risk level.
var riskBuckets = map[string]struct {
	tickers []string
	weights []float64
}{
	"low":    {[]string{"AAPL", "JNJ"}, []float64{0.4, 0.6}},
	"medium": {[]string{"AAPL", "TSLA", "JNJ"}, []float64{0.3, 0.4, 0.3}},
	"high":   {[]string{"TSLA", "NVDA"}, []float64{0.5, 0.5}},
}

// Recommend builds a fixed allocation suggestion from the risk level
// implied by the message text ("low" or "high" substrings; anything
// else is medium). Each ticker is quoted live.
func (s *Service) Recommend(ctx context.Context, message string) (*models.RecommendationReport, error) {
	lower := strings.ToLower(message)
	level := "medium"
	if strings.Contains(lower, "low") {
		level = "low"
	} else if strings.Contains(lower, "high") {
		level = "high"
	}

	bucket := riskBuckets[level]
	portfolio := make([]models.Allocation, 0, len(bucket.tickers))

	for i, ticker := range bucket.tickers {
		quote, err := s.market.GetQuote(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("failed to quote %s: %w", ticker, err)
		}
		portfolio = append(portfolio, models.Allocation{
			Quote:  *quote,
			Weight: bucket.weights[i],
		})
	}

	return &models.RecommendationReport{
		RiskLevel: level,
		Portfolio: portfolio,
	}, nil
}

// pct is the zero-guarded percentage: 0 when the base is 0 rather than
// NaN or an error.
func pct(part, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return round2(part / base * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
