package http

import (
	"net/http"

	"github.com/taskboard/backend/internal/auth/service"
	commonhttp "github.com/taskboard/backend/internal/common/http"
	"github.com/taskboard/backend/internal/common/logger"
	"github.com/taskboard/backend/internal/session"
	userdomain "github.com/taskboard/backend/internal/user/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", commonhttp.RequireMethod(http.MethodPost)(h.register))
	mux.HandleFunc("/api/auth/login", commonhttp.RequireMethod(http.MethodPost)(h.login))
	mux.HandleFunc("/api/auth/logout", commonhttp.RequireMethod(http.MethodPost)(h.logout))
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	session.SetCookie(w, r, result.Token, result.ExpiresAt)
	commonhttp.WriteJSON(w, http.StatusCreated, toUserResponse(result.User))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	session.SetCookie(w, r, result.Token, result.ExpiresAt)
	commonhttp.WriteJSON(w, http.StatusOK, toUserResponse(result.User))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// MeHandler reports the authenticated identity; it is mounted behind the
// session middleware.
func MeHandler(log *logger.Logger) http.HandlerFunc {
	return commonhttp.RequireMethod(http.MethodGet)(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.FromContext(r.Context())
		if !ok {
			commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		commonhttp.WriteJSON(w, http.StatusOK, userResponse{
			ID:       identity.UserID,
			Username: identity.Username,
		})
	})
}

func toUserResponse(u userdomain.Summary) userResponse {
	return userResponse{
		ID:       string(u.ID),
		Username: u.Username,
	}
}
