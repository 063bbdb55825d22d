package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out errors
	ErrAlreadyCheckedIn    = errors.New("employee already has an open attendance record")
	ErrNotCheckedIn        = errors.New("employee has no open attendance record")
	ErrInvalidCheckoutTime = errors.New("check-out time must be after check-in time")
	ErrInvalidCoordinate   = errors.New("coordinate is outside the valid latitude/longitude range")

	// Mode errors
	ErrInvalidMode = errors.New("attendance mode must be geofencing or location_tracking")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
