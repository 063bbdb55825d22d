package geofence

import (
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/validator"
)

// ========================================
// ZONE DTOs
// ========================================

type CreateZoneRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

func (r *CreateZoneRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateZoneRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func (r *UpdateZoneRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "radius_meters",
			Message: "radius_meters must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ZoneResponse struct {
	ID           string  `json:"id"`
	CompanyID    *string `json:"company_id,omitempty"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
	IsGlobal     bool    `json:"is_global"`
	CreatedAt    string  `json:"created_at"`
}

// ========================================
// ASSIGNMENT DTOs
// ========================================

type AssignZoneRequest struct {
	ZoneID      string `json:"-"`
	EmployeeID  string `json:"employee_id"`
	MakePrimary bool   `json:"make_primary"`
}

func (r *AssignZoneRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ZoneID) {
		errs = append(errs, validator.ValidationError{
			Field:   "zone_id",
			Message: "zone_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	ZoneID     string  `json:"zone_id"`
	ZoneName   *string `json:"zone_name,omitempty"`
	IsPrimary  bool    `json:"is_primary"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// RemoveAssignmentResponse surfaces whether the removed assignment was the
// primary one: the employee is then left with no primary zone on purpose,
// nothing is auto-promoted.
type RemoveAssignmentResponse struct {
	EmployeeID     string `json:"employee_id"`
	ZoneID         string `json:"zone_id"`
	PrimaryRemoved bool   `json:"primary_removed"`
}

// ========================================
// EVALUATION DTO
// ========================================

// GeofenceResult is the client-facing shape of an Evaluation.
type GeofenceResult struct {
	Status         string   `json:"status"`
	ZoneID         *string  `json:"zone_id,omitempty"`
	ZoneName       *string  `json:"zone_name,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

// ToResult converts an Evaluation for client responses.
func (e Evaluation) ToResult() GeofenceResult {
	result := GeofenceResult{Status: string(e.Status)}
	if e.Zone != nil {
		result.ZoneID = &e.Zone.ID
		result.ZoneName = &e.Zone.Name
	}
	result.DistanceMeters = e.DistanceMeters
	return result
}

// ValidateCoordinate is shared by check-in/check-out requests.
func ValidateCoordinate(lat, lng float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !geo.IsValidCoordinate(lat, lng) {
		if lat < -90 || lat > 90 {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if lng < -180 || lng > 180 {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
		if len(errs) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "coordinate is not a valid number",
			})
		}
	}

	return errs
}
