package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/store"
)

// StatsHandler serves inventory aggregates.
type StatsHandler struct {
	DB    *sql.DB
	Cache StatsCache
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Cache != nil {
		stats, ok, err := h.Cache.Get(ctx)
		if err != nil {
			slog.Warn("reading stats cache", "error", err)
		}
		if ok {
			jsonResponse(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
			return
		}
	}

	stats, err := store.GetStats(ctx, h.DB)
	if err != nil {
		slog.Error("computing stats", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, stats); err != nil {
			slog.Warn("writing stats cache", "error", err)
		}
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}
