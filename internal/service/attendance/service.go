package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	modeRepo       attendance.ModeRepository
	zoneRepo       geofence.ZoneRepository
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func statusPtrToString(s *geofence.Status) *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}

// mapRecordToResponse converts a Record entity to RecordResponse
func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,

		CheckIn:               rec.CheckIn.UTC().Format(time.RFC3339),
		CheckInLatitude:       rec.CheckInLatitude,
		CheckInLongitude:      rec.CheckInLongitude,
		CheckInStatus:         string(rec.CheckInStatus),
		CheckInZoneID:         rec.CheckInZoneID,
		CheckInDistanceMeters: rec.CheckInDistanceMeters,
		CheckInProofURL:       rec.CheckInProofURL,

		CheckOut:               timePtrToString(rec.CheckOut),
		CheckOutLatitude:       rec.CheckOutLatitude,
		CheckOutLongitude:      rec.CheckOutLongitude,
		CheckOutStatus:         statusPtrToString(rec.CheckOutStatus),
		CheckOutZoneID:         rec.CheckOutZoneID,
		CheckOutDistanceMeters: rec.CheckOutDistanceMeters,
		CheckOutProofURL:       rec.CheckOutProofURL,

		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// resolveForEmployee loads the employee's candidate zones and evaluates the
// coordinate against them. A zone-load failure propagates as an error; the
// engine never substitutes a guessed status.
func (a *AttendanceServiceImpl) resolveForEmployee(ctx context.Context, actor authctx.Context, employeeID string, lat, lng float64) (geofence.Evaluation, error) {
	zones, err := a.zoneRepo.ListVisibleForEmployee(ctx, employeeID, actor.CompanyID)
	if err != nil {
		return geofence.Evaluation{}, fmt.Errorf("failed to load candidate zones: %w", err)
	}
	return geofence.Resolve(lat, lng, zones), nil
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, actor authctx.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}
	if !geo.IsValidCoordinate(req.Latitude, req.Longitude) {
		return attendance.CheckInResponse{}, attendance.ErrInvalidCoordinate
	}

	mode, err := a.modeRepo.Get(ctx, actor.EmployeeID)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get attendance mode: %w", err)
	}

	eval, err := a.resolveForEmployee(ctx, actor, actor.EmployeeID, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	checkIn := req.EventTime(time.Now())

	record := attendance.Record{
		EmployeeID: actor.EmployeeID,
		CompanyID:  actor.CompanyID,

		CheckIn:          checkIn,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInStatus:    eval.Status,
		CheckInProofURL:  req.ProofURL,
	}
	if eval.Zone != nil {
		record.CheckInZoneID = &eval.Zone.ID
	}
	record.CheckInDistanceMeters = eval.DistanceMeters

	// Location-tracking mode records the same status; only enforcement
	// upstream is relaxed.
	created, err := a.attendanceRepo.CreateOpen(ctx, record)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		Record:   mapRecordToResponse(created),
		Geofence: eval.ToResult(),
		Mode:     string(mode),
	}, nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, actor authctx.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}
	if !geo.IsValidCoordinate(req.Latitude, req.Longitude) {
		return attendance.CheckOutResponse{}, attendance.ErrInvalidCoordinate
	}

	open, err := a.attendanceRepo.GetOpen(ctx, actor.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	checkOut := req.EventTime(time.Now())
	if !checkOut.After(open.CheckIn) {
		return attendance.CheckOutResponse{}, attendance.ErrInvalidCheckoutTime
	}

	mode, err := a.modeRepo.Get(ctx, actor.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get attendance mode: %w", err)
	}

	eval, err := a.resolveForEmployee(ctx, actor, actor.EmployeeID, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	status := eval.Status
	record := attendance.Record{
		EmployeeID: actor.EmployeeID,
		CompanyID:  actor.CompanyID,

		CheckOut:          &checkOut,
		CheckOutLatitude:  &req.Latitude,
		CheckOutLongitude: &req.Longitude,
		CheckOutStatus:    &status,
		CheckOutProofURL:  req.ProofURL,
	}
	if eval.Zone != nil {
		record.CheckOutZoneID = &eval.Zone.ID
	}
	record.CheckOutDistanceMeters = eval.DistanceMeters

	updated, err := a.attendanceRepo.CloseOpen(ctx, record)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	duration := checkOut.Sub(open.CheckIn)

	return attendance.CheckOutResponse{
		Record:          mapRecordToResponse(updated),
		Geofence:        eval.ToResult(),
		Mode:            string(mode),
		DurationSeconds: duration.Seconds(),
	}, nil
}

// Status implements attendance.Service.
//
// "Today" is the current UTC calendar day. Nothing this core owns carries a
// per-employee timezone, so UTC is the one boundary that is consistent for
// every caller.
func (a *AttendanceServiceImpl) Status(ctx context.Context, actor authctx.Context) (attendance.StatusResponse, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)

	rec, err := a.attendanceRepo.GetForDay(ctx, actor.EmployeeID, dayStart)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if rec == nil {
		return attendance.StatusResponse{CheckedIn: false, TodayRecord: nil}, nil
	}

	resp := mapRecordToResponse(*rec)
	return attendance.StatusResponse{
		CheckedIn:   rec.IsOpen(),
		TodayRecord: &resp,
	}, nil
}

// History implements attendance.Service.
func (a *AttendanceServiceImpl) History(ctx context.Context, actor authctx.Context, employeeID string, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	if employeeID == "" {
		employeeID = actor.EmployeeID
	}

	since := time.Now().UTC().AddDate(0, 0, -filter.SinceDays)

	records, err := a.attendanceRepo.ListSince(ctx, employeeID, since)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return attendance.HistoryResponse{
		EmployeeID: employeeID,
		SinceDays:  filter.SinceDays,
		Records:    responses,
	}, nil
}

// SetMode implements attendance.Service.
func (a *AttendanceServiceImpl) SetMode(ctx context.Context, actor authctx.Context, req attendance.SetModeRequest) (attendance.ModeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ModeResponse{}, err
	}

	setting, err := a.modeRepo.Set(ctx, attendance.ModeSetting{
		EmployeeID: req.EmployeeID,
		CompanyID:  actor.CompanyID,
		Mode:       attendance.Mode(req.Mode),
	})
	if err != nil {
		return attendance.ModeResponse{}, err
	}

	return attendance.ModeResponse{
		EmployeeID: setting.EmployeeID,
		Mode:       string(setting.Mode),
	}, nil
}

// GetMode implements attendance.Service.
func (a *AttendanceServiceImpl) GetMode(ctx context.Context, actor authctx.Context, employeeID string) (attendance.ModeResponse, error) {
	mode, err := a.modeRepo.Get(ctx, employeeID)
	if err != nil {
		return attendance.ModeResponse{}, err
	}

	return attendance.ModeResponse{
		EmployeeID: employeeID,
		Mode:       string(mode),
	}, nil
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	modeRepo attendance.ModeRepository,
	zoneRepo geofence.ZoneRepository,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		modeRepo:       modeRepo,
		zoneRepo:       zoneRepo,
	}
}
