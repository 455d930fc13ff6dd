// Package storage provides the top-level StorageManager entry point.
package storage

import (
	"fmt"

	"github.com/bobmcallan/chatfolio/internal/common"
	"github.com/bobmcallan/chatfolio/internal/interfaces"
	"github.com/bobmcallan/chatfolio/internal/storage/surrealdb"
)

// NewStorageManager creates the configured storage backend. SurrealDB
// is the only backend today; keeping the constructor here means callers
// never import a backend package directly.
func NewStorageManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	manager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SurrealDB storage: %w", err)
	}
	return manager, nil
}
