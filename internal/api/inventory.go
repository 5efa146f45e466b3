package api

import (
	"errors"
	"net/http"

	"pharmapos/m/internal/ledger"
)

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalog.Inventory(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list inventory")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

type adjustRequest struct {
	BatchID  int64  `json:"batch_id"`
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BatchID == 0 || req.Quantity == 0 {
		respondError(w, http.StatusBadRequest, "batch_id and a non-zero quantity are required")
		return
	}
	err := h.ledger.Adjust(r.Context(), ledger.AdjustInput{
		BatchID:  req.BatchID,
		Type:     req.Type,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		UserID:   userID(r),
	})
	switch {
	case errors.Is(err, ledger.ErrBatchNotFound), errors.Is(err, ledger.ErrNegativeStock):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "unable to adjust stock")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type batchUpdateRequest struct {
	ExpiryDate  string  `json:"expiry_date"`
	MRP         float64 `json:"mrp"`
	SellingRate float64 `json:"selling_rate"`
}

func (h *Handler) updateBatch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid batch id")
		return
	}
	var req batchUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.catalog.UpdateBatch(r.Context(), id, req.ExpiryDate, req.MRP, req.SellingRate); err != nil {
		respondError(w, http.StatusBadRequest, "unable to update batch: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) batchAdjustments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid batch id")
		return
	}
	rows, err := h.catalog.BatchAdjustments(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list adjustments")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) allAdjustments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalog.AllAdjustments(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list adjustments")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
