package geofence

import (
	"context"

	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
)

// ZoneService defines business logic for zone administration and
// employee-zone assignment.
type ZoneService interface {
	// CreateZone creates a company-scoped zone (admin).
	CreateZone(ctx context.Context, actor authctx.Context, req CreateZoneRequest) (ZoneResponse, error)

	// GetZone retrieves a zone visible to the actor's company.
	GetZone(ctx context.Context, actor authctx.Context, id string) (ZoneResponse, error)

	// ListZones lists company zones plus global zones.
	ListZones(ctx context.Context, actor authctx.Context) ([]ZoneResponse, error)

	// UpdateZone patches a company-owned zone (admin).
	UpdateZone(ctx context.Context, actor authctx.Context, req UpdateZoneRequest) (ZoneResponse, error)

	// DeleteZone soft-disables a company-owned zone (admin).
	DeleteZone(ctx context.Context, actor authctx.Context, id string) error

	// AssignZone upserts an employee-zone assignment; promoting to primary
	// demotes the previous primary atomically.
	AssignZone(ctx context.Context, actor authctx.Context, req AssignZoneRequest) (AssignmentResponse, error)

	// RemoveAssignment deletes an assignment. Removing the primary leaves the
	// employee with no primary zone.
	RemoveAssignment(ctx context.Context, actor authctx.Context, employeeID string, zoneID string) (RemoveAssignmentResponse, error)

	// ListEmployeeZones lists an employee's assignments (admin).
	ListEmployeeZones(ctx context.Context, actor authctx.Context, employeeID string) ([]AssignmentResponse, error)
}
