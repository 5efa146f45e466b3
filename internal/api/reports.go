package api

import (
	"net/http"
	"strconv"

	"pharmapos/m/domain"
)

// Reports

func (h *Handler) reportSales(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.SalesByDay(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build sales report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) reportExpiry(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.NearExpiry(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build expiry report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) reportLowStock(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.LowStock(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build low-stock report")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// Notifications

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notify.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list notifications")
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *Handler) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notify.MarkAllRead(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to mark notifications read")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) checkNotifications(w http.ResponseWriter, r *http.Request) {
	// Optional override of the configured threshold.
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	count, err := h.notify.CheckExpiry(r.Context(), days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to check expiring batches")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

// Settings

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	var settings []domain.Setting
	if err := h.db.SelectContext(r.Context(), &settings, `SELECT key, value FROM settings`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	respondJSON(w, http.StatusOK, out)
}

type settingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handler) updateSetting(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, "admin") {
		return
	}
	var req settingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Key == "" {
		respondError(w, http.StatusBadRequest, "key is required")
		return
	}
	if _, err := h.db.ExecContext(r.Context(), `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, req.Key, req.Value); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save setting")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
