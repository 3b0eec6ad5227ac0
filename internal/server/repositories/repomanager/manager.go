package repomanager

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/repositories/users"
)

// RepositoryManager hands out repositories and runs grouped operations in a
// single unit of work.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	// WithTx runs fn with repositories bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error
}
