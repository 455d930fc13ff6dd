package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/models"
)

// PortfolioStore persists holdings, alerts and transactions.
type PortfolioStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPortfolioStore(db *surrealdb.DB, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{
		db:     db,
		logger: logger,
	}
}

// holdingID builds the record ID enforcing the one-holding-per-
// (user, symbol) invariant: upserting the same ID replaces the row.
func holdingID(userID, symbol string) string {
	return userID + "_" + symbol
}

// AddHolding upserts the holding and appends the BUY transaction inside
// a single transaction block, so a crash can never leave a holding
// without its audit record.
func (s *PortfolioStore) AddHolding(ctx context.Context, userID, symbol string, quantity, price float64) error {
	now := time.Now().UTC()

	holding := &models.Holding{
		UserID:   userID,
		Symbol:   symbol,
		Quantity: quantity,
		BuyPrice: price,
		BuyDate:  now,
	}
	txn := &models.Transaction{
		UserID:   userID,
		Symbol:   symbol,
		Action:   models.TransactionBuy,
		Quantity: quantity,
		Price:    price,
		Date:     now,
	}

	sql := `BEGIN TRANSACTION;
UPSERT $rid CONTENT $holding;
CREATE transactions CONTENT $txn;
COMMIT TRANSACTION;`
	vars := map[string]any{
		"rid":     surrealmodels.NewRecordID("holdings", holdingID(userID, symbol)),
		"holding": holding,
		"txn":     txn,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to add holding: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("symbol", symbol).
		Float64("quantity", quantity).
		Msg("Holding upserted")

	return nil
}

func (s *PortfolioStore) GetHoldings(ctx context.Context, userID string) ([]*models.Holding, error) {
	sql := "SELECT * FROM holdings WHERE user_id = $user_id"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Holding](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Holding
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *PortfolioStore) AddAlert(ctx context.Context, userID, symbol string, condition models.AlertCondition, price float64) error {
	alert := &models.Alert{
		UserID:      userID,
		Symbol:      symbol,
		Condition:   condition,
		Price:       price,
		Active:      true,
		CreatedDate: time.Now().UTC(),
	}

	// Plain CREATE: multiple alerts per symbol are allowed.
	sql := "CREATE alerts CONTENT $alert"
	vars := map[string]any{"alert": alert}

	if _, err := surrealdb.Query[[]models.Alert](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to add alert: %w", err)
	}
	return nil
}

func (s *PortfolioStore) GetActiveAlerts(ctx context.Context, userID string) ([]*models.Alert, error) {
	sql := "SELECT * FROM alerts WHERE user_id = $user_id AND active = true"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Alert](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Alert
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *PortfolioStore) GetTransactions(ctx context.Context, userID string) ([]*models.Transaction, error) {
	sql := "SELECT * FROM transactions WHERE user_id = $user_id ORDER BY date DESC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Transaction
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
