package interfaces

import (
	"context"

	"github.com/bobmcallan/chatfolio/internal/models"
)

// StorageManager owns the storage backend connection and exposes the
// per-domain stores.
type StorageManager interface {
	PortfolioStore() PortfolioStore

	// Lifecycle
	Close() error
}

// PortfolioStore persists holdings, alerts and the transaction audit
// log, keyed by user.
type PortfolioStore interface {
	// AddHolding upserts the holding for (userID, symbol) and appends a
	// BUY transaction as one atomic unit. A repeat purchase of the same
	// symbol replaces the stored quantity/price/date.
	AddHolding(ctx context.Context, userID, symbol string, quantity, price float64) error

	// GetHoldings returns all holdings for a user.
	GetHoldings(ctx context.Context, userID string) ([]*models.Holding, error)

	// AddAlert records a price alert. Multiple alerts per symbol are
	// allowed.
	AddAlert(ctx context.Context, userID, symbol string, condition models.AlertCondition, price float64) error

	// GetActiveAlerts returns all active alerts for a user.
	GetActiveAlerts(ctx context.Context, userID string) ([]*models.Alert, error)

	// GetTransactions returns the audit log for a user, most recent
	// first.
	GetTransactions(ctx context.Context, userID string) ([]*models.Transaction, error)
}
