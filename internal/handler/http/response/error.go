package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee already has an open attendance record")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Employee has no open attendance record")
	case errors.Is(err, attendance.ErrInvalidCheckoutTime):
		ValidationError(w, map[string]string{"timestamp": "check-out time must be after check-in time"})
	case errors.Is(err, attendance.ErrInvalidCoordinate):
		ValidationError(w, map[string]string{"latitude": "coordinate is outside the valid range"})
	case errors.Is(err, attendance.ErrInvalidMode):
		BadRequest(w, "Unknown attendance mode", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Geofence domain errors
	case errors.Is(err, geofence.ErrZoneNotFound):
		NotFound(w, "Geofence zone not found")
	case errors.Is(err, geofence.ErrAssignmentNotFound):
		NotFound(w, "Zone assignment not found")
	case errors.Is(err, geofence.ErrZoneNotEditable):
		Forbidden(w, "Global zones cannot be modified")

	// Infrastructure errors
	case errors.Is(err, authctx.ErrMissingClaims):
		Unauthorized(w, "Missing or invalid authentication claims")
	case errors.Is(err, database.ErrUnavailable):
		ServiceUnavailable(w, "Storage is temporarily unavailable, retry the request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
