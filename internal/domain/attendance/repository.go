package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. The open-record
// invariant (at most one record per employee with check_out null) lives here:
// CreateOpen and CloseOpen are atomic conditional writes, so two racing
// check-ins or check-outs for the same employee resolve to exactly one winner.
type Repository interface {
	// CreateOpen inserts a new open record iff the employee has no open
	// record. Returns ErrAlreadyCheckedIn when one exists.
	CreateOpen(ctx context.Context, record Record) (Record, error)

	// GetOpen retrieves the employee's open record.
	// Returns ErrNotCheckedIn when there is none.
	GetOpen(ctx context.Context, employeeID string) (Record, error)

	// CloseOpen sets the check-out fields on the employee's open record in a
	// single conditional update. Returns ErrNotCheckedIn when no open record
	// exists (including when a concurrent check-out won the race).
	CloseOpen(ctx context.Context, record Record) (Record, error)

	// GetForDay retrieves the employee's record whose check-in falls within
	// [dayStart, dayStart+24h). Returns nil when the employee has none.
	GetForDay(ctx context.Context, employeeID string, dayStart time.Time) (*Record, error)

	// ListSince returns the employee's records with check_in >= since,
	// most recent first. Employees with no records yield an empty slice.
	ListSince(ctx context.Context, employeeID string, since time.Time) ([]Record, error)
}

// ModeRepository defines data access for per-employee attendance modes.
type ModeRepository interface {
	// Get returns the employee's mode, defaulting to ModeGeofencing when no
	// setting has ever been stored.
	Get(ctx context.Context, employeeID string) (Mode, error)

	// Set upserts the employee's mode. Idempotent.
	Set(ctx context.Context, setting ModeSetting) (ModeSetting, error)
}
