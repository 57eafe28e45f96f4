package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/config"
	"github.com/erazemk/stockroom/internal/model"
)

// AuthHandler handles the admin credential check.
type AuthHandler struct {
	Admin config.AdminConfig
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin handles POST /api/admin-login. The credentials are compared
// with the configured admin username and password; the admin_user table is
// not consulted. With no credentials configured every attempt fails.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.Admin.Configured() || !equal(req.Username, h.Admin.Username) || !equal(req.Password, h.Admin.Password) {
		slog.Warn("admin login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	slog.Info("admin logged in", "username", req.Username)
	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    model.AdminSessionUser,
	})
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
