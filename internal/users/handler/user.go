package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/auth"
	"docportal/internal/users/service"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type UserHandler struct {
	service service.UserService
	guard   *auth.Guard
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, guard *auth.Guard, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		guard:   guard,
		log:     log,
	}
}

type registerResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	UID          string `json:"uid"`
}

type toggleRoleRequest struct {
	Email string `json:"email"`
}

type adminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "error", writeErr)
		}
		return
	}

	if _, err := h.service.Register(r.Context(), &user); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, registerResponse{Acknowledged: true, UID: user.UID}); err != nil {
		h.log.Error("failed to write success response", "handler", "Register", "error", err)
	}
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, users); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "error", err)
	}
}

// ToggleRole flips the target user's role. The admin gate has already
// verified the caller; the claim identity is recorded as the actor.
func (h *UserHandler) ToggleRole(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Missing verified identity")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleRole", "error", writeErr)
		}
		return
	}

	var req toggleRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ToggleRole", "error", writeErr)
		}
		return
	}

	user, err := h.service.ToggleRole(r.Context(), req.Email, claims.Email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleRole", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "ToggleRole", "error", err)
	}
}

// CheckAdmin lets the portal probe the caller's own admin status; a
// non-admin gets {isAdmin:false}, not a 403.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Missing verified identity")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAdmin", "error", writeErr)
		}
		return
	}

	isAdmin, err := h.service.IsAdmin(r.Context(), claims.Email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAdmin", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, adminResponse{IsAdmin: isAdmin}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAdmin", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users", h.Register)
	router.GET("/users", h.guard.Authenticated(h.GetAll))
	router.PUT("/user", h.guard.Authenticated(h.guard.AdminOnly(h.ToggleRole)))
	router.GET("/admin", h.guard.Authenticated(h.CheckAdmin))
}
