package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/geofence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/geofence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/authctx"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	HistoryForEmployee(w http.ResponseWriter, r *http.Request)
	SetMode(w http.ResponseWriter, r *http.Request)
	GetMode(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Status(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func historyFilterFromQuery(r *http.Request) attendance.HistoryFilter {
	filter := attendance.HistoryFilter{}
	if d := r.URL.Query().Get("since_days"); d != "" {
		if days, err := strconv.Atoi(d); err == nil {
			filter.SinceDays = days
		}
	}
	return filter
}

// History implements AttendanceHandler. It always scopes to the caller.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.History(r.Context(), actor, actor.EmployeeID, historyFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HistoryForEmployee implements AttendanceHandler. Admin-gated by the router.
func (h *attendanceHandlerImpl) HistoryForEmployee(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.History(r.Context(), actor, employeeID, historyFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetMode implements AttendanceHandler.
func (h *attendanceHandlerImpl) SetMode(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SetMode(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance mode updated successfully", result)
}

// GetMode implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMode(w http.ResponseWriter, r *http.Request) {
	actor, err := authctx.FromRequestContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.GetMode(r.Context(), actor, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
