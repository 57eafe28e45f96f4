package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/db"
)

// HealthHandler serves liveness and schema setup.
type HealthHandler struct {
	DB *sql.DB
}

// Home handles GET /.
func (h *HealthHandler) Home(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Inventory API is running"})
}

// InitDB handles GET /api/init-db. Creating the schema is idempotent.
func (h *HealthHandler) InitDB(w http.ResponseWriter, r *http.Request) {
	if err := db.EnsureSchema(h.DB); err != nil {
		slog.Error("creating schema", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create database")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Database created",
	})
}
