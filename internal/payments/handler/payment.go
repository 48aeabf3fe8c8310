package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/auth"
	"docportal/internal/payments/service"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type PaymentHandler struct {
	service service.PaymentService
	guard   *auth.Guard
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, guard *auth.Guard, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

type intentRequest struct {
	Price float64 `json:"price"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateIntent", "error", writeErr)
		}
		return
	}

	clientSecret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateIntent", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, intentResponse{ClientSecret: clientSecret}); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateIntent", "error", err)
	}
}

func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Record", "error", writeErr)
		}
		return
	}

	result, err := h.service.Record(r.Context(), &payment)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Record", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Record", "error", err)
	}
}

func (h *PaymentHandler) GetByBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Missing verified identity")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByBooking", "error", writeErr)
		}
		return
	}

	payments, err := h.service.GetByBooking(r.Context(), ps.ByName("bookingId"), claims.Email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByBooking", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, payments); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByBooking", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/create-payment-intent", h.guard.Authenticated(h.CreateIntent))
	router.POST("/payments", h.guard.Authenticated(h.Record))
	router.GET("/payments/:bookingId", h.guard.Authenticated(h.GetByBooking))
}
