package attendance

import (
	"context"

	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
)

// Service defines the attendance state machine and its read side. The actor's
// employee id drives every operation; admin-only operations check
// actor.IsAdmin in the handler layer before the call lands here.
type Service interface {
	// CheckIn opens a new attendance record with the resolved geofence status.
	CheckIn(ctx context.Context, actor authctx.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes the open record and returns the worked duration.
	CheckOut(ctx context.Context, actor authctx.Context, req CheckOutRequest) (CheckOutResponse, error)

	// Status returns the actor's record for the current UTC calendar day, if any.
	Status(ctx context.Context, actor authctx.Context) (StatusResponse, error)

	// History returns the employee's records from the last filter.SinceDays days.
	History(ctx context.Context, actor authctx.Context, employeeID string, filter HistoryFilter) (HistoryResponse, error)

	// SetMode toggles an employee's attendance mode (admin). Effective on the
	// next check-in; past records are untouched.
	SetMode(ctx context.Context, actor authctx.Context, req SetModeRequest) (ModeResponse, error)

	// GetMode reads an employee's current attendance mode (admin).
	GetMode(ctx context.Context, actor authctx.Context, employeeID string) (ModeResponse, error)
}
