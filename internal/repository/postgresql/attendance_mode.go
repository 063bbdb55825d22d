package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type modeRepository struct {
	db *database.DB
}

// Get implements attendance.ModeRepository.
func (m *modeRepository) Get(ctx context.Context, employeeID string) (attendance.Mode, error) {
	q := GetQuerier(ctx, m.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `SELECT mode FROM attendance_mode_settings WHERE employee_id = $1`

	var mode attendance.Mode
	err := q.QueryRow(ctx, query, employeeID).Scan(&mode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No stored setting means the employee-creation default applies.
			return attendance.ModeGeofencing, nil
		}
		return "", fmt.Errorf("failed to get attendance mode: %w", database.MapError(err))
	}

	return mode, nil
}

// Set implements attendance.ModeRepository.
func (m *modeRepository) Set(ctx context.Context, setting attendance.ModeSetting) (attendance.ModeSetting, error) {
	q := GetQuerier(ctx, m.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO attendance_mode_settings (employee_id, company_id, mode)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id)
		DO UPDATE SET mode = EXCLUDED.mode, updated_at = NOW()
		RETURNING employee_id, company_id, mode, updated_at
	`

	var result attendance.ModeSetting
	err := q.QueryRow(ctx, query,
		setting.EmployeeID,
		setting.CompanyID,
		setting.Mode,
	).Scan(&result.EmployeeID, &result.CompanyID, &result.Mode, &result.UpdatedAt)
	if err != nil {
		return attendance.ModeSetting{}, fmt.Errorf("failed to set attendance mode: %w", database.MapError(err))
	}

	return result, nil
}

func NewModeRepository(db *database.DB) attendance.ModeRepository {
	return &modeRepository{db: db}
}
