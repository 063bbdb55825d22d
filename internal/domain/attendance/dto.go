package attendance

import (
	"time"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN / CHECK-OUT DTOs
// ========================================

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Optional RFC3339 event time; server time is used when absent.
	Timestamp *string `json:"timestamp,omitempty"`
	// Opaque photo-proof reference stored alongside the record, never interpreted.
	ProofURL *string `json:"proof_url,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	errs := geofence.ValidateCoordinate(r.Latitude, r.Longitude)

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EventTime resolves the request timestamp, falling back to now. Stored UTC.
func (r *CheckInRequest) EventTime(now time.Time) time.Time {
	if r.Timestamp != nil && *r.Timestamp != "" {
		if t, valid := validator.IsValidDateTime(*r.Timestamp); valid {
			return t.UTC()
		}
	}
	return now.UTC()
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp *string `json:"timestamp,omitempty"`
	ProofURL  *string `json:"proof_url,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	errs := geofence.ValidateCoordinate(r.Latitude, r.Longitude)

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CheckOutRequest) EventTime(now time.Time) time.Time {
	if r.Timestamp != nil && *r.Timestamp != "" {
		if t, valid := validator.IsValidDateTime(*r.Timestamp); valid {
			return t.UTC()
		}
	}
	return now.UTC()
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	CheckIn               string   `json:"check_in"`
	CheckInLatitude       float64  `json:"check_in_latitude"`
	CheckInLongitude      float64  `json:"check_in_longitude"`
	CheckInStatus         string   `json:"check_in_geofence_status"`
	CheckInZoneID         *string  `json:"check_in_zone_id,omitempty"`
	CheckInDistanceMeters *float64 `json:"check_in_distance_meters,omitempty"`
	CheckInProofURL       *string  `json:"check_in_proof_url,omitempty"`

	CheckOut               *string  `json:"check_out,omitempty"`
	CheckOutLatitude       *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude      *float64 `json:"check_out_longitude,omitempty"`
	CheckOutStatus         *string  `json:"check_out_geofence_status,omitempty"`
	CheckOutZoneID         *string  `json:"check_out_zone_id,omitempty"`
	CheckOutDistanceMeters *float64 `json:"check_out_distance_meters,omitempty"`
	CheckOutProofURL       *string  `json:"check_out_proof_url,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CheckInResponse struct {
	Record   RecordResponse          `json:"record"`
	Geofence geofence.GeofenceResult `json:"geofence"`
	Mode     string                  `json:"mode"`
}

type CheckOutResponse struct {
	Record          RecordResponse          `json:"record"`
	Geofence        geofence.GeofenceResult `json:"geofence"`
	Mode            string                  `json:"mode"`
	DurationSeconds float64                 `json:"duration_seconds"`
}

type StatusResponse struct {
	CheckedIn   bool            `json:"checked_in"`
	TodayRecord *RecordResponse `json:"today_record"`
}

// ========================================
// HISTORY DTOs
// ========================================

type HistoryFilter struct {
	SinceDays int `json:"since_days"`
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.SinceDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "since_days",
			Message: "since_days must be a positive number",
		})
	}
	if f.SinceDays == 0 {
		f.SinceDays = 30 // Default window
	}
	if f.SinceDays > 365 {
		errs = append(errs, validator.ValidationError{
			Field:   "since_days",
			Message: "since_days must not exceed 365",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryResponse struct {
	EmployeeID string           `json:"employee_id"`
	SinceDays  int              `json:"since_days"`
	Records    []RecordResponse `json:"records"`
}

// ========================================
// MODE DTOs
// ========================================

type SetModeRequest struct {
	EmployeeID string `json:"employee_id"`
	Mode       string `json:"mode"`
}

func (r *SetModeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	validModes := []string{string(ModeGeofencing), string(ModeLocationTracking)}
	if !validator.IsInSlice(r.Mode, validModes) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: geofencing, location_tracking",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ModeResponse struct {
	EmployeeID string `json:"employee_id"`
	Mode       string `json:"mode"`
}
