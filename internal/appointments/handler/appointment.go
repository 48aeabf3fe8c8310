package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/appointments/service"
	"docportal/internal/auth"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
)

type AppointmentHandler struct {
	service service.AppointmentService
	guard   *auth.Guard
	log     *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, guard *auth.Guard, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

func (h *AppointmentHandler) GetOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")

	options, err := h.service.GetOptionsForDate(r.Context(), date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOptions", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, options); err != nil {
		h.log.Error("failed to write success response", "handler", "GetOptions", "error", err)
	}
}

func (h *AppointmentHandler) GetSpecialties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	specialties, err := h.service.GetSpecialties(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetSpecialties", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, specialties); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSpecialties", "error", err)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/appointmentOptions", h.GetOptions)
	router.GET("/doctor/specialties", h.guard.Authenticated(h.guard.AdminOnly(h.GetSpecialties)))
}
