// Package chat routes classified user messages to portfolio store
// operations and analytics calls, wrapping every outcome in a uniform
// response envelope.
package chat

import (
	"context"
	"fmt"

	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/interfaces"
	"github.com/bobmcallan/chatfolio/internal/models"
	"github.com/bobmcallan/chatfolio/internal/nlp"
)

// Guidance messages returned when a dispatch branch is missing required
// entities. These are user-facing help, not faults.
const (
	msgNoHoldings     = "No holdings found in portfolio"
	msgNeedAlertParts = "Please specify symbol, price, and condition (above/below)"
	msgNeedTwoSymbols = "Please specify at least 2 stock symbols to compare"
	msgNeedSimParts   = "Please specify symbol and quantity for simulation"
	msgNeedBuyParts   = "Please specify symbol, quantity, and purchase price"
	msgNeedSymbol     = "Please specify a stock symbol"
	msgNotUnderstood  = "I didn't understand that command. Try asking about your portfolio, setting alerts, or comparing stocks."
)

// Service implements ChatService
type Service struct {
	storage   interfaces.StorageManager
	analytics interfaces.AnalyticsService
	market    interfaces.MarketDataClient
	logger    *common.Logger
}

// NewService creates a new chat service
func NewService(
	storage interfaces.StorageManager,
	analytics interfaces.AnalyticsService,
	market interfaces.MarketDataClient,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:   storage,
		analytics: analytics,
		market:    market,
		logger:    logger,
	}
}

// Handle classifies a raw message and dispatches it. It never fails:
// classification always produces an intent via the fallback rule, and
// any collaborator fault is converted into a response-level error
// object. Every call returns a well-formed envelope.
func (s *Service) Handle(ctx context.Context, userID, message string) *models.Envelope {
	intent := nlp.Classify(message)

	s.logger.Debug().
		Str("user_id", userID).
		Str("action", string(intent.Action)).
		Float64("confidence", intent.Confidence).
		Msg("Dispatching chat intent")

	response := s.dispatch(ctx, userID, intent)

	return &models.Envelope{
		Intent:   intent,
		Response: response,
	}
}

// dispatch validates required entities for the classified intent and
// executes the matching branch. Collaborator errors surface as
// ErrorResponse values, never as returned errors.
func (s *Service) dispatch(ctx context.Context, userID string, intent models.Intent) any {
	entities := intent.Entities

	switch intent.Action {
	case models.ActionShowPortfolio:
		report, err := s.analytics.PortfolioValue(ctx, userID)
		if err != nil {
			return errResponse(err)
		}
		if report.Empty {
			return models.MessageResponse{Message: msgNoHoldings}
		}
		return report

	case models.ActionAddAlert:
		if len(entities.Symbols) == 0 || len(entities.Numbers) == 0 || entities.Condition == "" {
			return models.MessageResponse{Message: msgNeedAlertParts}
		}
		symbol := entities.Symbols[0]
		price := entities.Numbers[0]
		condition := models.AlertCondition(entities.Condition)
		if err := s.storage.PortfolioStore().AddAlert(ctx, userID, symbol, condition, price); err != nil {
			return errResponse(err)
		}
		return models.MessageResponse{
			Message: fmt.Sprintf("Alert set for %s when price goes %s $%v", symbol, condition, price),
		}

	case models.ActionCompareStocks:
		if len(entities.Symbols) < 2 {
			return models.MessageResponse{Message: msgNeedTwoSymbols}
		}
		// Compare the first 2 symbols only.
		quotes, err := s.analytics.CompareStocks(ctx, entities.Symbols[:2])
		if err != nil {
			return errResponse(err)
		}
		return models.ComparisonResponse{Comparison: quotes}

	case models.ActionSimulate:
		if len(entities.Symbols) == 0 || len(entities.Numbers) == 0 {
			return models.MessageResponse{Message: msgNeedSimParts}
		}
		sim, err := s.analytics.SimulatePurchase(ctx, userID, entities.Symbols[0], entities.Numbers[0])
		if err != nil {
			return errResponse(err)
		}
		return models.SimulationResponse{Simulation: sim}

	case models.ActionAddHolding:
		if len(entities.Symbols) == 0 || len(entities.Numbers) < 2 {
			return models.MessageResponse{Message: msgNeedBuyParts}
		}
		symbol := entities.Symbols[0]
		quantity := entities.Numbers[0]
		price := entities.Numbers[1]
		if err := s.storage.PortfolioStore().AddHolding(ctx, userID, symbol, quantity, price); err != nil {
			return errResponse(err)
		}
		return models.MessageResponse{
			Message: fmt.Sprintf("Added %v shares of %s at $%v to portfolio", quantity, symbol, price),
		}

	case models.ActionStockPrice:
		if len(entities.Symbols) == 0 {
			return models.MessageResponse{Message: msgNeedSymbol}
		}
		quote, err := s.market.GetQuote(ctx, entities.Symbols[0])
		if err != nil {
			return errResponse(err)
		}
		return models.QuoteResponse{StockInfo: quote}

	default:
		return models.MessageResponse{Message: msgNotUnderstood}
	}
}

func errResponse(err error) models.ErrorResponse {
	return models.ErrorResponse{Error: fmt.Sprintf("An error occurred: %v", err)}
}
