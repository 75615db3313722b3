package ports

import (
	"context"

	"github.com/aretw0/strumyk/pkg/domain"
)

// ReportStore defines the interface for persisting simulation results,
// so runs can be inspected after the request that produced them.
type ReportStore interface {
	// Save persists a result under its ID.
	Save(ctx context.Context, result *domain.RunResult) error

	// Load retrieves the result for a given run ID.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.RunResult, error)

	// Delete removes the result for a given run ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored reports.
	List(ctx context.Context) ([]string, error)
}
