package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

const recordColumns = `id, employee_id, company_id,
	check_in, check_in_latitude, check_in_longitude, check_in_geofence_status,
	check_in_zone_id, check_in_distance_meters, check_in_proof_url,
	check_out, check_out_latitude, check_out_longitude, check_out_geofence_status,
	check_out_zone_id, check_out_distance_meters, check_out_proof_url,
	created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID,
		&rec.CheckIn, &rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckInStatus,
		&rec.CheckInZoneID, &rec.CheckInDistanceMeters, &rec.CheckInProofURL,
		&rec.CheckOut, &rec.CheckOutLatitude, &rec.CheckOutLongitude, &rec.CheckOutStatus,
		&rec.CheckOutZoneID, &rec.CheckOutDistanceMeters, &rec.CheckOutProofURL,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// CreateOpen implements attendance.Repository.
//
// The conditional insert and the partial unique index on
// (employee_id) WHERE check_out IS NULL together guarantee that two
// concurrent check-ins resolve to exactly one open record.
func (a *attendanceRepository) CreateOpen(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO attendance_records (
			id, employee_id, company_id,
			check_in, check_in_latitude, check_in_longitude, check_in_geofence_status,
			check_in_zone_id, check_in_distance_meters, check_in_proof_url
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE employee_id = $2 AND check_out IS NULL
		)
		RETURNING ` + recordColumns

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to generate record id: %w", err)
	}

	created, err := scanRecord(q.QueryRow(ctx, query,
		id.String(),
		record.EmployeeID,
		record.CompanyID,
		record.CheckIn,
		record.CheckInLatitude,
		record.CheckInLongitude,
		record.CheckInStatus,
		record.CheckInZoneID,
		record.CheckInDistanceMeters,
		record.CheckInProofURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		// The partial unique index catches the race the WHERE NOT EXISTS
		// guard cannot see under concurrent inserts.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", database.MapError(err))
	}

	return created, nil
}

// GetOpen implements attendance.Repository.
func (a *attendanceRepository) GetOpen(ctx context.Context, employeeID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND check_out IS NULL
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get open attendance record: %w", database.MapError(err))
	}

	return rec, nil
}

// CloseOpen implements attendance.Repository.
func (a *attendanceRepository) CloseOpen(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		UPDATE attendance_records
		SET check_out = $2,
			check_out_latitude = $3,
			check_out_longitude = $4,
			check_out_geofence_status = $5,
			check_out_zone_id = $6,
			check_out_distance_meters = $7,
			check_out_proof_url = $8,
			updated_at = NOW()
		WHERE employee_id = $1
		  AND check_out IS NULL
		RETURNING ` + recordColumns

	updated, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID,
		record.CheckOut,
		record.CheckOutLatitude,
		record.CheckOutLongitude,
		record.CheckOutStatus,
		record.CheckOutZoneID,
		record.CheckOutDistanceMeters,
		record.CheckOutProofURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to close attendance record: %w", database.MapError(err))
	}

	return updated, nil
}

// GetForDay implements attendance.Repository.
func (a *attendanceRepository) GetForDay(ctx context.Context, employeeID string, dayStart time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND check_in >= $2
		  AND check_in < $3
		ORDER BY check_in DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, dayStart, dayStart.Add(24*time.Hour)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for the day
		}
		return nil, fmt.Errorf("failed to get attendance record for day: %w", database.MapError(err))
	}

	return &rec, nil
}

// ListSince implements attendance.Repository.
func (a *attendanceRepository) ListSince(ctx context.Context, employeeID string, since time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND check_in >= $2
		ORDER BY check_in DESC
	`

	rows, err := q.Query(ctx, query, employeeID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", database.MapError(err))
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}
