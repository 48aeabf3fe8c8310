package auth

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/sanitizer"
)

type TokenRequest struct {
	Email string `json:"email"`
	UID   string `json:"uid,omitempty"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	tokens *TokenService
	log    *logger.Logger
}

func NewHandler(tokens *TokenService, log *logger.Logger) *Handler {
	return &Handler{
		tokens: tokens,
		log:    log,
	}
}

// IssueToken signs a short-lived token for the identity claim in the
// body. The portal calls this right after its own sign-in flow.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "IssueToken", "error", writeErr)
		}
		return
	}

	req.Email = sanitizer.NormalizeEmail(req.Email)
	if req.Email == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "email is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "IssueToken", "error", writeErr)
		}
		return
	}

	token, err := h.tokens.Issue(req.Email, req.UID)
	if err != nil {
		h.log.Error("Failed to sign token", "email", req.Email, "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error: "Failed to issue token",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "IssueToken", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, TokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "IssueToken", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/jwt", h.IssueToken)
}
