package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/geofence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type GeofenceHandler interface {
	CreateZone(w http.ResponseWriter, r *http.Request)
	GetZone(w http.ResponseWriter, r *http.Request)
	ListZones(w http.ResponseWriter, r *http.Request)
	UpdateZone(w http.ResponseWriter, r *http.Request)
	DeleteZone(w http.ResponseWriter, r *http.Request)
	AssignZone(w http.ResponseWriter, r *http.Request)
	RemoveAssignment(w http.ResponseWriter, r *http.Request)
	ListEmployeeZones(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	zoneService geofence.ZoneService
}

func NewGeofenceHandler(zoneService geofence.ZoneService) GeofenceHandler {
	return &geofenceHandlerImpl{
		zoneService: zoneService,
	}
}

// CreateZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) CreateZone(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req geofence.CreateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.zoneService.CreateZone(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Zone created successfully", result)
}

// GetZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) GetZone(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.zoneService.GetZone(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListZones implements GeofenceHandler.
func (h *geofenceHandlerImpl) ListZones(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.zoneService.ListZones(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) UpdateZone(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req geofence.UpdateZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.zoneService.UpdateZone(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone updated successfully", result)
}

// DeleteZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) DeleteZone(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.zoneService.DeleteZone(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone deactivated successfully", nil)
}

// AssignZone implements GeofenceHandler.
func (h *geofenceHandlerImpl) AssignZone(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req geofence.AssignZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ZoneID = chi.URLParam(r, "id")

	result, err := h.zoneService.AssignZone(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Zone assigned successfully", result)
}

// RemoveAssignment implements GeofenceHandler.
func (h *geofenceHandlerImpl) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	zoneID := chi.URLParam(r, "id")
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.zoneService.RemoveAssignment(r.Context(), actor, employeeID, zoneID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Zone assignment removed successfully", result)
}

// ListEmployeeZones implements GeofenceHandler.
func (h *geofenceHandlerImpl) ListEmployeeZones(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	results, err := h.zoneService.ListEmployeeZones(r.Context(), actor, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
