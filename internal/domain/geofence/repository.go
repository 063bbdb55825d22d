package geofence

import (
	"context"
)

// ZoneRepository defines data access for geofence zones. CompanyID parameters
// scope reads/writes to the caller's company; global zones (company scope
// null) are readable everywhere but only writable by the platform itself.
type ZoneRepository interface {
	// Create inserts a new zone scoped to the given company.
	Create(ctx context.Context, zone Zone) (Zone, error)

	// GetByID retrieves a zone visible to the company (own or global).
	GetByID(ctx context.Context, id string, companyID string) (Zone, error)

	// List retrieves all zones visible to the company, creation order.
	List(ctx context.Context, companyID string) ([]Zone, error)

	// Update patches a company-owned zone.
	Update(ctx context.Context, req UpdateZoneRequest, companyID string) (Zone, error)

	// Deactivate soft-disables a company-owned zone. Historical attendance
	// records keep referencing it; it just stops matching new check-ins.
	Deactivate(ctx context.Context, id string, companyID string) error

	// ListVisibleForEmployee returns the employee's candidate zones: active
	// global zones unioned with the employee's assigned active zones, ordered
	// by created_at then id so the resolver tie-break is deterministic.
	ListVisibleForEmployee(ctx context.Context, employeeID string, companyID string) ([]Zone, error)
}

// AssignmentRepository defines data access for employee-zone assignments.
type AssignmentRepository interface {
	// Upsert creates or updates the (employee, zone) assignment.
	Upsert(ctx context.Context, assignment Assignment) (Assignment, error)

	// DemotePrimary clears the primary flag on all of the employee's
	// assignments. Runs inside the same transaction as the promoting Upsert.
	DemotePrimary(ctx context.Context, employeeID string) error

	// Remove deletes the assignment and reports whether it was the primary
	// one. Returns ErrAssignmentNotFound when absent.
	Remove(ctx context.Context, employeeID string, zoneID string) (wasPrimary bool, err error)

	// ListByEmployee returns the employee's assignments with zone names.
	ListByEmployee(ctx context.Context, employeeID string) ([]Assignment, error)
}
