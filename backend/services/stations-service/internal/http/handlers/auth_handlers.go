package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/http/middleware"
	"stationhub/backend/services/stations-service/internal/models"
)

// AccountService registers users and issues credentials.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// Authenticator resolves a bearer credential to the acting user.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*models.User, error)
}

// AuthHandlers serves /api/auth endpoints.
type AuthHandlers struct {
	accounts AccountService
	auth     Authenticator
	logger   *zap.Logger
}

// NewAuthHandlers returns handler struct.
func NewAuthHandlers(accounts AccountService, auth Authenticator, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{accounts: accounts, auth: auth, logger: logger}
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	token, user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	token, user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

// Me handles GET /api/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), middleware.BearerToken(r))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
