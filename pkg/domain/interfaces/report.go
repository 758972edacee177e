package interfaces

import (
	"context"
	"time"

	"github.com/biaslens-dev/biaslens/pkg/domain/model"
	"github.com/biaslens-dev/biaslens/pkg/domain/types"
)

// ReportRepository defines the interface for bias report persistence
type ReportRepository interface {
	// Create stores a new report. The report ID is assigned by the caller.
	Create(ctx context.Context, report *model.Report) error

	// Get retrieves a report by ID
	Get(ctx context.Context, id types.ReportID) (*model.Report, error)

	// List retrieves reports for a user ordered by CreatedAt descending
	// with pagination. Returns items and the total count for the user.
	List(ctx context.Context, userID types.UserID, limit, offset int) ([]*model.Report, int, error)

	// Delete removes a report by ID
	Delete(ctx context.Context, id types.ReportID) error

	// Prune deletes reports generated before the given time.
	// Returns the number of reports deleted.
	Prune(ctx context.Context, before time.Time) (int, error)
}
