package geofence

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeZoneRepo struct {
	createFn      func(ctx context.Context, zone geofence.Zone) (geofence.Zone, error)
	getByIDFn     func(ctx context.Context, id, companyID string) (geofence.Zone, error)
	listFn        func(ctx context.Context, companyID string) ([]geofence.Zone, error)
	updateFn      func(ctx context.Context, req geofence.UpdateZoneRequest, companyID string) (geofence.Zone, error)
	deactivateFn  func(ctx context.Context, id, companyID string) error
	listVisibleFn func(ctx context.Context, employeeID, companyID string) ([]geofence.Zone, error)
}

func (f *fakeZoneRepo) Create(ctx context.Context, zone geofence.Zone) (geofence.Zone, error) {
	return f.createFn(ctx, zone)
}

func (f *fakeZoneRepo) GetByID(ctx context.Context, id, companyID string) (geofence.Zone, error) {
	return f.getByIDFn(ctx, id, companyID)
}

func (f *fakeZoneRepo) List(ctx context.Context, companyID string) ([]geofence.Zone, error) {
	return f.listFn(ctx, companyID)
}

func (f *fakeZoneRepo) Update(ctx context.Context, req geofence.UpdateZoneRequest, companyID string) (geofence.Zone, error) {
	return f.updateFn(ctx, req, companyID)
}

func (f *fakeZoneRepo) Deactivate(ctx context.Context, id, companyID string) error {
	return f.deactivateFn(ctx, id, companyID)
}

func (f *fakeZoneRepo) ListVisibleForEmployee(ctx context.Context, employeeID, companyID string) ([]geofence.Zone, error) {
	return f.listVisibleFn(ctx, employeeID, companyID)
}

type fakeAssignmentRepo struct {
	upsertFn         func(ctx context.Context, assignment geofence.Assignment) (geofence.Assignment, error)
	demotePrimaryFn  func(ctx context.Context, employeeID string) error
	removeFn         func(ctx context.Context, employeeID, zoneID string) (bool, error)
	listByEmployeeFn func(ctx context.Context, employeeID string) ([]geofence.Assignment, error)
}

func (f *fakeAssignmentRepo) Upsert(ctx context.Context, assignment geofence.Assignment) (geofence.Assignment, error) {
	return f.upsertFn(ctx, assignment)
}

func (f *fakeAssignmentRepo) DemotePrimary(ctx context.Context, employeeID string) error {
	return f.demotePrimaryFn(ctx, employeeID)
}

func (f *fakeAssignmentRepo) Remove(ctx context.Context, employeeID, zoneID string) (bool, error) {
	return f.removeFn(ctx, employeeID, zoneID)
}

func (f *fakeAssignmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]geofence.Assignment, error) {
	return f.listByEmployeeFn(ctx, employeeID)
}

// passthroughTx runs fn directly, standing in for a real transaction.
func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(zoneRepo geofence.ZoneRepository, assignmentRepo geofence.AssignmentRepository) *ZoneServiceImpl {
	return &ZoneServiceImpl{
		zoneRepo:       zoneRepo,
		assignmentRepo: assignmentRepo,
		withTx:         passthroughTx,
	}
}

var adminActor = authctx.Context{
	EmployeeID: "admin-1",
	CompanyID:  "comp-1",
	IsAdmin:    true,
}

func companyZone() geofence.Zone {
	companyID := "comp-1"
	return geofence.Zone{
		ID:           "zone-1",
		CompanyID:    &companyID,
		Name:         "HQ Office",
		Latitude:     12.9716,
		Longitude:    77.5946,
		RadiusMeters: 100,
		IsActive:     true,
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func globalZone() geofence.Zone {
	return geofence.Zone{
		ID:           "zone-global",
		CompanyID:    nil,
		Name:         "Anywhere Hub",
		Latitude:     0,
		Longitude:    0,
		RadiusMeters: 500,
		IsActive:     true,
		CreatedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateZone(t *testing.T) {
	t.Parallel()

	zoneRepo := &fakeZoneRepo{
		createFn: func(ctx context.Context, zone geofence.Zone) (geofence.Zone, error) {
			require.NotNil(t, zone.CompanyID)
			assert.Equal(t, "comp-1", *zone.CompanyID)
			zone.ID = "zone-1"
			zone.IsActive = true
			zone.CreatedAt = time.Now()
			return zone, nil
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	resp, err := service.CreateZone(context.Background(), adminActor, geofence.CreateZoneRequest{
		Name:         "HQ Office",
		Latitude:     12.9716,
		Longitude:    77.5946,
		RadiusMeters: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, "zone-1", resp.ID)
	assert.True(t, resp.IsActive)
	assert.False(t, resp.IsGlobal)
}

func TestCreateZone_Invalid(t *testing.T) {
	t.Parallel()

	service := newTestService(&fakeZoneRepo{}, &fakeAssignmentRepo{})

	cases := []struct {
		name string
		req  geofence.CreateZoneRequest
	}{
		{"missing name", geofence.CreateZoneRequest{Latitude: 1, Longitude: 1, RadiusMeters: 50}},
		{"latitude out of range", geofence.CreateZoneRequest{Name: "x", Latitude: 91, Longitude: 1, RadiusMeters: 50}},
		{"zero radius", geofence.CreateZoneRequest{Name: "x", Latitude: 1, Longitude: 1, RadiusMeters: 0}},
		{"negative radius", geofence.CreateZoneRequest{Name: "x", Latitude: 1, Longitude: 1, RadiusMeters: -5}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.CreateZone(context.Background(), adminActor, tc.req)
			assert.Error(t, err)
		})
	}
}

func TestListZones_MarksGlobal(t *testing.T) {
	t.Parallel()

	zoneRepo := &fakeZoneRepo{
		listFn: func(ctx context.Context, companyID string) ([]geofence.Zone, error) {
			return []geofence.Zone{globalZone(), companyZone()}, nil
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	zones, err := service.ListZones(context.Background(), adminActor)
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.True(t, zones[0].IsGlobal)
	assert.False(t, zones[1].IsGlobal)
}

func TestUpdateZone_GlobalNotEditable(t *testing.T) {
	t.Parallel()

	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return globalZone(), nil
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	name := "Renamed"
	_, err := service.UpdateZone(context.Background(), adminActor, geofence.UpdateZoneRequest{
		ID:   "zone-global",
		Name: &name,
	})
	assert.ErrorIs(t, err, geofence.ErrZoneNotEditable)
}

func TestUpdateZone_NotFound(t *testing.T) {
	t.Parallel()

	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return geofence.Zone{}, geofence.ErrZoneNotFound
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	name := "Renamed"
	_, err := service.UpdateZone(context.Background(), adminActor, geofence.UpdateZoneRequest{
		ID:   "missing",
		Name: &name,
	})
	assert.ErrorIs(t, err, geofence.ErrZoneNotFound)
}

func TestDeleteZone_SoftDisables(t *testing.T) {
	t.Parallel()

	deactivated := false
	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return companyZone(), nil
		},
		deactivateFn: func(ctx context.Context, id, companyID string) error {
			assert.Equal(t, "zone-1", id)
			assert.Equal(t, "comp-1", companyID)
			deactivated = true
			return nil
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	err := service.DeleteZone(context.Background(), adminActor, "zone-1")
	require.NoError(t, err)
	assert.True(t, deactivated)
}

func TestDeleteZone_GlobalNotEditable(t *testing.T) {
	t.Parallel()

	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return globalZone(), nil
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	err := service.DeleteZone(context.Background(), adminActor, "zone-global")
	assert.ErrorIs(t, err, geofence.ErrZoneNotEditable)
}

func TestAssignZone_PrimaryDemotesPrevious(t *testing.T) {
	t.Parallel()

	var demotedFor string
	var upserted geofence.Assignment
	assignmentRepo := &fakeAssignmentRepo{
		demotePrimaryFn: func(ctx context.Context, employeeID string) error {
			demotedFor = employeeID
			return nil
		},
		upsertFn: func(ctx context.Context, assignment geofence.Assignment) (geofence.Assignment, error) {
			// Demotion must land before the new primary is written.
			assert.Equal(t, "emp-1", demotedFor)
			upserted = assignment
			assignment.ID = "assign-1"
			assignment.CreatedAt = time.Now()
			assignment.UpdatedAt = assignment.CreatedAt
			return assignment, nil
		},
	}
	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return companyZone(), nil
		},
	}

	service := newTestService(zoneRepo, assignmentRepo)

	resp, err := service.AssignZone(context.Background(), adminActor, geofence.AssignZoneRequest{
		ZoneID:      "zone-1",
		EmployeeID:  "emp-1",
		MakePrimary: true,
	})
	require.NoError(t, err)

	assert.True(t, upserted.IsPrimary)
	assert.True(t, resp.IsPrimary)
	require.NotNil(t, resp.ZoneName)
	assert.Equal(t, "HQ Office", *resp.ZoneName)
}

func TestAssignZone_NonPrimarySkipsDemotion(t *testing.T) {
	t.Parallel()

	assignmentRepo := &fakeAssignmentRepo{
		demotePrimaryFn: func(ctx context.Context, employeeID string) error {
			t.Fatal("a non-primary assignment must not demote anything")
			return nil
		},
		upsertFn: func(ctx context.Context, assignment geofence.Assignment) (geofence.Assignment, error) {
			assert.False(t, assignment.IsPrimary)
			assignment.ID = "assign-1"
			return assignment, nil
		},
	}
	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return companyZone(), nil
		},
	}

	service := newTestService(zoneRepo, assignmentRepo)

	resp, err := service.AssignZone(context.Background(), adminActor, geofence.AssignZoneRequest{
		ZoneID:     "zone-1",
		EmployeeID: "emp-1",
	})
	require.NoError(t, err)
	assert.False(t, resp.IsPrimary)
}

func TestAssignZone_ZoneNotFound(t *testing.T) {
	t.Parallel()

	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return geofence.Zone{}, geofence.ErrZoneNotFound
		},
	}

	service := newTestService(zoneRepo, &fakeAssignmentRepo{})

	_, err := service.AssignZone(context.Background(), adminActor, geofence.AssignZoneRequest{
		ZoneID:     "missing",
		EmployeeID: "emp-1",
	})
	assert.ErrorIs(t, err, geofence.ErrZoneNotFound)
}

func TestRemoveAssignment_ReportsPrimaryRemoved(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		wasPrimary bool
	}{
		{"primary assignment", true},
		{"secondary assignment", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assignmentRepo := &fakeAssignmentRepo{
				removeFn: func(ctx context.Context, employeeID, zoneID string) (bool, error) {
					return tc.wasPrimary, nil
				},
			}
			zoneRepo := &fakeZoneRepo{
				getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
					return companyZone(), nil
				},
			}

			service := newTestService(zoneRepo, assignmentRepo)

			resp, err := service.RemoveAssignment(context.Background(), adminActor, "emp-1", "zone-1")
			require.NoError(t, err)

			assert.Equal(t, tc.wasPrimary, resp.PrimaryRemoved)
			assert.Equal(t, "emp-1", resp.EmployeeID)
			assert.Equal(t, "zone-1", resp.ZoneID)
		})
	}
}

func TestRemoveAssignment_NotFound(t *testing.T) {
	t.Parallel()

	assignmentRepo := &fakeAssignmentRepo{
		removeFn: func(ctx context.Context, employeeID, zoneID string) (bool, error) {
			return false, geofence.ErrAssignmentNotFound
		},
	}
	zoneRepo := &fakeZoneRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (geofence.Zone, error) {
			return companyZone(), nil
		},
	}

	service := newTestService(zoneRepo, assignmentRepo)

	_, err := service.RemoveAssignment(context.Background(), adminActor, "emp-1", "zone-1")
	assert.ErrorIs(t, err, geofence.ErrAssignmentNotFound)
}

func TestListEmployeeZones(t *testing.T) {
	t.Parallel()

	zoneName := "HQ Office"
	assignmentRepo := &fakeAssignmentRepo{
		listByEmployeeFn: func(ctx context.Context, employeeID string) ([]geofence.Assignment, error) {
			return []geofence.Assignment{
				{
					ID:         "assign-1",
					EmployeeID: employeeID,
					ZoneID:     "zone-1",
					IsPrimary:  true,
					ZoneName:   &zoneName,
					CreatedAt:  time.Now(),
					UpdatedAt:  time.Now(),
				},
			}, nil
		},
	}

	service := newTestService(&fakeZoneRepo{}, assignmentRepo)

	assignments, err := service.ListEmployeeZones(context.Background(), adminActor, "emp-1")
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	assert.True(t, assignments[0].IsPrimary)
	require.NotNil(t, assignments[0].ZoneName)
	assert.Equal(t, "HQ Office", *assignments[0].ZoneName)
}
