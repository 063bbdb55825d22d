package geofence

import "errors"

// Geofence domain errors
var (
	ErrZoneNotFound       = errors.New("geofence zone not found")
	ErrAssignmentNotFound = errors.New("zone assignment not found")
	ErrZoneNotEditable    = errors.New("global zones cannot be modified by a company administrator")
)
