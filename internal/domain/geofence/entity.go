package geofence

import (
	"time"
)

// Status is the outcome of evaluating a coordinate against a zone set.
type Status string

const (
	StatusInside  Status = "inside"
	StatusOutside Status = "outside"
	// StatusUnknown means the evaluation could not run (no candidate zones).
	// Callers must treat it as "cannot evaluate", never as a pass.
	StatusUnknown Status = "unknown"
)

// Zone is a circular geofence region. CompanyID nil means the zone is global
// and visible to every employee regardless of company.
type Zone struct {
	ID           string
	CompanyID    *string
	Name         string
	Description  *string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
}

// Assignment links an employee to a zone. At most one assignment per employee
// carries IsPrimary; the write path enforces this transactionally.
type Assignment struct {
	ID         string
	EmployeeID string
	ZoneID     string
	IsPrimary  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	ZoneName *string
}
