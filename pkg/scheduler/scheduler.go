package scheduler

import (
	"context"
	"time"

	"github.com/chris/star-tournaments/pkg/models"
)

// Scheduler defines the interface for a component that enqueues a tournament
// status transition for later processing.
type Scheduler interface {
	// ScheduleTransition enqueues a transition to be applied after the delay.
	// Delays beyond the transport's cap are truncated; the reconciliation
	// sweep picks up whatever a truncated delay leaves behind.
	ScheduleTransition(ctx context.Context, transition models.StatusTransition, delay time.Duration) error
}
