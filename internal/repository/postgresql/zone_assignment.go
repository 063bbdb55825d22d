package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

// Upsert implements geofence.AssignmentRepository.
func (a *assignmentRepository) Upsert(ctx context.Context, assignment geofence.Assignment) (geofence.Assignment, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO employee_zone_assignments (id, employee_id, zone_id, is_primary)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, zone_id)
		DO UPDATE SET is_primary = EXCLUDED.is_primary, updated_at = NOW()
		RETURNING id, employee_id, zone_id, is_primary, created_at, updated_at
	`

	id, err := uuid.NewV7()
	if err != nil {
		return geofence.Assignment{}, fmt.Errorf("failed to generate assignment id: %w", err)
	}

	var result geofence.Assignment
	err = q.QueryRow(ctx, query,
		id.String(),
		assignment.EmployeeID,
		assignment.ZoneID,
		assignment.IsPrimary,
	).Scan(
		&result.ID, &result.EmployeeID, &result.ZoneID,
		&result.IsPrimary, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return geofence.Assignment{}, fmt.Errorf("failed to upsert zone assignment: %w", database.MapError(err))
	}

	return result, nil
}

// DemotePrimary implements geofence.AssignmentRepository.
func (a *assignmentRepository) DemotePrimary(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		UPDATE employee_zone_assignments
		SET is_primary = FALSE, updated_at = NOW()
		WHERE employee_id = $1 AND is_primary = TRUE
	`

	if _, err := q.Exec(ctx, query, employeeID); err != nil {
		return fmt.Errorf("failed to demote primary assignment: %w", database.MapError(err))
	}

	return nil
}

// Remove implements geofence.AssignmentRepository.
func (a *assignmentRepository) Remove(ctx context.Context, employeeID string, zoneID string) (bool, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM employee_zone_assignments
		WHERE employee_id = $1 AND zone_id = $2
		RETURNING is_primary
	`

	var wasPrimary bool
	err := q.QueryRow(ctx, query, employeeID, zoneID).Scan(&wasPrimary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, geofence.ErrAssignmentNotFound
		}
		return false, fmt.Errorf("failed to remove zone assignment: %w", database.MapError(err))
	}

	return wasPrimary, nil
}

// ListByEmployee implements geofence.AssignmentRepository.
func (a *assignmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]geofence.Assignment, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT eza.id, eza.employee_id, eza.zone_id, eza.is_primary,
			   eza.created_at, eza.updated_at,
			   gz.name AS zone_name
		FROM employee_zone_assignments eza
		JOIN geofence_zones gz ON gz.id = eza.zone_id
		WHERE eza.employee_id = $1
		ORDER BY eza.created_at, eza.id
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone assignments: %w", database.MapError(err))
	}
	defer rows.Close()

	assignments := make([]geofence.Assignment, 0)
	for rows.Next() {
		var assignment geofence.Assignment
		err := rows.Scan(
			&assignment.ID, &assignment.EmployeeID, &assignment.ZoneID,
			&assignment.IsPrimary, &assignment.CreatedAt, &assignment.UpdatedAt,
			&assignment.ZoneName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone assignment: %w", err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func NewAssignmentRepository(db *database.DB) geofence.AssignmentRepository {
	return &assignmentRepository{db: db}
}
