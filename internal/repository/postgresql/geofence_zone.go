package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type zoneRepository struct {
	db *database.DB
}

const zoneColumns = `id, company_id, name, description, latitude, longitude, radius_meters, is_active, created_at`

func scanZone(row pgx.Row) (geofence.Zone, error) {
	var zone geofence.Zone
	err := row.Scan(
		&zone.ID, &zone.CompanyID, &zone.Name, &zone.Description,
		&zone.Latitude, &zone.Longitude, &zone.RadiusMeters,
		&zone.IsActive, &zone.CreatedAt,
	)
	return zone, err
}

// Create implements geofence.ZoneRepository.
func (z *zoneRepository) Create(ctx context.Context, zone geofence.Zone) (geofence.Zone, error) {
	q := GetQuerier(ctx, z.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO geofence_zones (
			id, company_id, name, description, latitude, longitude, radius_meters, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, TRUE
		) RETURNING ` + zoneColumns

	id, err := uuid.NewV7()
	if err != nil {
		return geofence.Zone{}, fmt.Errorf("failed to generate zone id: %w", err)
	}

	created, err := scanZone(q.QueryRow(ctx, query,
		id.String(),
		zone.CompanyID,
		zone.Name,
		zone.Description,
		zone.Latitude,
		zone.Longitude,
		zone.RadiusMeters,
	))
	if err != nil {
		return geofence.Zone{}, fmt.Errorf("failed to create geofence zone: %w", database.MapError(err))
	}

	return created, nil
}

// GetByID implements geofence.ZoneRepository.
func (z *zoneRepository) GetByID(ctx context.Context, id string, companyID string) (geofence.Zone, error) {
	q := GetQuerier(ctx, z.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + zoneColumns + `
		FROM geofence_zones
		WHERE id = $1
		  AND (company_id = $2 OR company_id IS NULL)
	`

	zone, err := scanZone(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Zone{}, geofence.ErrZoneNotFound
		}
		return geofence.Zone{}, fmt.Errorf("failed to get geofence zone: %w", database.MapError(err))
	}

	return zone, nil
}

// List implements geofence.ZoneRepository.
func (z *zoneRepository) List(ctx context.Context, companyID string) ([]geofence.Zone, error) {
	q := GetQuerier(ctx, z.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + zoneColumns + `
		FROM geofence_zones
		WHERE company_id = $1 OR company_id IS NULL
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofence zones: %w", database.MapError(err))
	}
	defer rows.Close()

	zones := make([]geofence.Zone, 0)
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence zone: %w", err)
		}
		zones = append(zones, zone)
	}

	return zones, nil
}

// Update implements geofence.ZoneRepository.
func (z *zoneRepository) Update(ctx context.Context, req geofence.UpdateZoneRequest, companyID string) (geofence.Zone, error) {
	q := GetQuerier(ctx, z.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Latitude != nil {
		updates = append(updates, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, *req.Latitude)
		argIdx++
	}
	if req.Longitude != nil {
		updates = append(updates, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, *req.Longitude)
		argIdx++
	}
	if req.RadiusMeters != nil {
		updates = append(updates, fmt.Sprintf("radius_meters = $%d", argIdx))
		args = append(args, *req.RadiusMeters)
		argIdx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(updates) == 0 {
		return geofence.Zone{}, fmt.Errorf("no updatable fields provided for zone update")
	}

	args = append(args, req.ID)
	idIdx := argIdx
	argIdx++

	args = append(args, companyID)

	// company_id = $n (never IS NULL): global zones are not editable here.
	query := "UPDATE geofence_zones SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND company_id = $%d RETURNING %s", idIdx, argIdx, zoneColumns)

	zone, err := scanZone(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Zone{}, geofence.ErrZoneNotFound
		}
		return geofence.Zone{}, fmt.Errorf("failed to update geofence zone: %w", database.MapError(err))
	}

	return zone, nil
}

// Deactivate implements geofence.ZoneRepository.
func (z *zoneRepository) Deactivate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, z.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `UPDATE geofence_zones SET is_active = FALSE WHERE id = $1 AND company_id = $2`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate geofence zone: %w", database.MapError(err))
	}

	if commandTag.RowsAffected() == 0 {
		return geofence.ErrZoneNotFound
	}

	return nil
}

// ListVisibleForEmployee implements geofence.ZoneRepository.
func (z *zoneRepository) ListVisibleForEmployee(ctx context.Context, employeeID string, companyID string) ([]geofence.Zone, error) {
	q := GetQuerier(ctx, z.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	// Active global zones plus the employee's assigned active zones within
	// the company. Creation order backs the resolver tie-break.
	query := `
		SELECT ` + zoneColumns + `
		FROM geofence_zones
		WHERE is_active = TRUE
		  AND (
			company_id IS NULL
			OR (
				company_id = $2
				AND id IN (
					SELECT zone_id FROM employee_zone_assignments WHERE employee_id = $1
				)
			)
		  )
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible zones: %w", database.MapError(err))
	}
	defer rows.Close()

	zones := make([]geofence.Zone, 0)
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence zone: %w", err)
		}
		zones = append(zones, zone)
	}

	return zones, nil
}

func NewZoneRepository(db *database.DB) geofence.ZoneRepository {
	return &zoneRepository{db: db}
}
