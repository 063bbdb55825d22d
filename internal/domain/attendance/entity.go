package attendance

import (
	"time"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
)

// Record is one check-in/check-out cycle for an employee. A record with a nil
// CheckOut is "open"; the store guarantees at most one open record per
// employee. Records are append-only: a check-out mutates its record exactly
// once and nothing ever deletes one.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string

	CheckIn               time.Time
	CheckInLatitude       float64
	CheckInLongitude      float64
	CheckInStatus         geofence.Status
	CheckInZoneID         *string
	CheckInDistanceMeters *float64
	CheckInProofURL       *string

	CheckOut               *time.Time
	CheckOutLatitude       *float64
	CheckOutLongitude      *float64
	CheckOutStatus         *geofence.Status
	CheckOutZoneID         *string
	CheckOutDistanceMeters *float64
	CheckOutProofURL       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the record has no check-out yet.
func (r Record) IsOpen() bool {
	return r.CheckOut == nil
}

// Mode selects how geofence evaluation is applied to an employee's
// check-in/check-out events.
type Mode string

const (
	// ModeGeofencing surfaces the inside/outside signal as a hard result that
	// upstream policy may enforce.
	ModeGeofencing Mode = "geofencing"

	// ModeLocationTracking still records coordinates and the resolved status,
	// but the result is informational only.
	ModeLocationTracking Mode = "location_tracking"
)

// ModeSetting is the per-employee attendance mode. Employees without a stored
// setting default to geofencing. A change takes effect on the next
// check-in/check-out; past records are never recomputed.
type ModeSetting struct {
	EmployeeID string
	CompanyID  string
	Mode       Mode
	UpdatedAt  time.Time
}
