package geofence

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/geofence-backend-go/internal/repository/postgresql"
)

type ZoneServiceImpl struct {
	zoneRepo       geofence.ZoneRepository
	assignmentRepo geofence.AssignmentRepository

	// withTx wraps fn in a storage transaction.
	withTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func mapZoneToResponse(zone geofence.Zone) geofence.ZoneResponse {
	return geofence.ZoneResponse{
		ID:           zone.ID,
		CompanyID:    zone.CompanyID,
		Name:         zone.Name,
		Description:  zone.Description,
		Latitude:     zone.Latitude,
		Longitude:    zone.Longitude,
		RadiusMeters: zone.RadiusMeters,
		IsActive:     zone.IsActive,
		IsGlobal:     zone.CompanyID == nil,
		CreatedAt:    zone.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapAssignmentToResponse(assignment geofence.Assignment) geofence.AssignmentResponse {
	return geofence.AssignmentResponse{
		ID:         assignment.ID,
		EmployeeID: assignment.EmployeeID,
		ZoneID:     assignment.ZoneID,
		ZoneName:   assignment.ZoneName,
		IsPrimary:  assignment.IsPrimary,
		CreatedAt:  assignment.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  assignment.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateZone implements geofence.ZoneService.
func (z *ZoneServiceImpl) CreateZone(ctx context.Context, actor authctx.Context, req geofence.CreateZoneRequest) (geofence.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.ZoneResponse{}, err
	}

	companyID := actor.CompanyID
	zone := geofence.Zone{
		CompanyID:    &companyID,
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}

	created, err := z.zoneRepo.Create(ctx, zone)
	if err != nil {
		return geofence.ZoneResponse{}, err
	}

	return mapZoneToResponse(created), nil
}

// GetZone implements geofence.ZoneService.
func (z *ZoneServiceImpl) GetZone(ctx context.Context, actor authctx.Context, id string) (geofence.ZoneResponse, error) {
	zone, err := z.zoneRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return geofence.ZoneResponse{}, err
	}

	return mapZoneToResponse(zone), nil
}

// ListZones implements geofence.ZoneService.
func (z *ZoneServiceImpl) ListZones(ctx context.Context, actor authctx.Context) ([]geofence.ZoneResponse, error) {
	zones, err := z.zoneRepo.List(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	responses := make([]geofence.ZoneResponse, 0, len(zones))
	for _, zone := range zones {
		responses = append(responses, mapZoneToResponse(zone))
	}

	return responses, nil
}

// UpdateZone implements geofence.ZoneService.
func (z *ZoneServiceImpl) UpdateZone(ctx context.Context, actor authctx.Context, req geofence.UpdateZoneRequest) (geofence.ZoneResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.ZoneResponse{}, err
	}

	// The update is scoped to company-owned rows, so a global zone resolves
	// to not-found there. Distinguish it for a clearer error.
	existing, err := z.zoneRepo.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return geofence.ZoneResponse{}, err
	}
	if existing.CompanyID == nil {
		return geofence.ZoneResponse{}, geofence.ErrZoneNotEditable
	}

	updated, err := z.zoneRepo.Update(ctx, req, actor.CompanyID)
	if err != nil {
		return geofence.ZoneResponse{}, err
	}

	return mapZoneToResponse(updated), nil
}

// DeleteZone implements geofence.ZoneService.
//
// Deletion is a soft disable: historical attendance records keep their zone
// reference, and the zone simply stops matching future evaluations.
func (z *ZoneServiceImpl) DeleteZone(ctx context.Context, actor authctx.Context, id string) error {
	existing, err := z.zoneRepo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return err
	}
	if existing.CompanyID == nil {
		return geofence.ErrZoneNotEditable
	}

	return z.zoneRepo.Deactivate(ctx, id, actor.CompanyID)
}

// AssignZone implements geofence.ZoneService.
func (z *ZoneServiceImpl) AssignZone(ctx context.Context, actor authctx.Context, req geofence.AssignZoneRequest) (geofence.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.AssignmentResponse{}, err
	}

	zone, err := z.zoneRepo.GetByID(ctx, req.ZoneID, actor.CompanyID)
	if err != nil {
		return geofence.AssignmentResponse{}, err
	}

	assignment := geofence.Assignment{
		EmployeeID: req.EmployeeID,
		ZoneID:     zone.ID,
		IsPrimary:  req.MakePrimary,
	}

	var result geofence.Assignment
	if req.MakePrimary {
		// Demote-then-promote inside one transaction so the employee never
		// observably holds two primary zones.
		err = z.withTx(ctx, func(ctx context.Context) error {
			if err := z.assignmentRepo.DemotePrimary(ctx, req.EmployeeID); err != nil {
				return err
			}
			result, err = z.assignmentRepo.Upsert(ctx, assignment)
			return err
		})
	} else {
		result, err = z.assignmentRepo.Upsert(ctx, assignment)
	}
	if err != nil {
		return geofence.AssignmentResponse{}, fmt.Errorf("failed to assign zone: %w", err)
	}

	result.ZoneName = &zone.Name
	return mapAssignmentToResponse(result), nil
}

// RemoveAssignment implements geofence.ZoneService.
func (z *ZoneServiceImpl) RemoveAssignment(ctx context.Context, actor authctx.Context, employeeID string, zoneID string) (geofence.RemoveAssignmentResponse, error) {
	if _, err := z.zoneRepo.GetByID(ctx, zoneID, actor.CompanyID); err != nil {
		return geofence.RemoveAssignmentResponse{}, err
	}

	wasPrimary, err := z.assignmentRepo.Remove(ctx, employeeID, zoneID)
	if err != nil {
		return geofence.RemoveAssignmentResponse{}, err
	}

	return geofence.RemoveAssignmentResponse{
		EmployeeID:     employeeID,
		ZoneID:         zoneID,
		PrimaryRemoved: wasPrimary,
	}, nil
}

// ListEmployeeZones implements geofence.ZoneService.
func (z *ZoneServiceImpl) ListEmployeeZones(ctx context.Context, actor authctx.Context, employeeID string) ([]geofence.AssignmentResponse, error) {
	assignments, err := z.assignmentRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]geofence.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, mapAssignmentToResponse(assignment))
	}

	return responses, nil
}

func NewZoneService(
	db *database.DB,
	zoneRepo geofence.ZoneRepository,
	assignmentRepo geofence.AssignmentRepository,
) geofence.ZoneService {
	return &ZoneServiceImpl{
		zoneRepo:       zoneRepo,
		assignmentRepo: assignmentRepo,
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}
