package api

import (
	"errors"
	"net/http"
	"strings"

	"pharmapos/m/internal/ledger"
)

func (h *Handler) posSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	rows, err := h.catalog.SearchPOS(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to search stock")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

type saleRequest struct {
	CustomerName   string                 `json:"customer_name"`
	CustomerPhone  string                 `json:"customer_phone"`
	Items          []ledger.SaleItemInput `json:"items"`
	TotalAmount    float64                `json:"total_amount"`
	TaxAmount      float64                `json:"tax_amount"`
	DiscountAmount float64                `json:"discount_amount"`
	PaymentMethod  string                 `json:"payment_method"`
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "at least one item is required")
		return
	}
	for _, item := range req.Items {
		if item.BatchID == 0 || item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "batch_id and a positive quantity are required for each item")
			return
		}
	}

	saleID, err := h.ledger.Sell(r.Context(), ledger.SaleInput{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		TotalAmount:    req.TotalAmount,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		PaymentMethod:  req.PaymentMethod,
		UserID:         userID(r),
		Items:          req.Items,
	})
	var insufficient ledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient), errors.Is(err, ledger.ErrNoItems):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "unable to complete sale")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "saleId": saleID})
}

func (h *Handler) salesHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.SalesHistory(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list sales")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

type purchaseRequest struct {
	SupplierID    int64                      `json:"supplier_id"`
	InvoiceNumber string                     `json:"invoice_number"`
	Items         []ledger.PurchaseItemInput `json:"items"`
	TotalAmount   float64                    `json:"total_amount"`
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SupplierID == 0 || len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "supplier_id and at least one item are required")
		return
	}

	purchaseID, err := h.ledger.Purchase(r.Context(), ledger.PurchaseInput{
		SupplierID:    req.SupplierID,
		InvoiceNumber: req.InvoiceNumber,
		TotalAmount:   req.TotalAmount,
		UserID:        userID(r),
		Items:         req.Items,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to record purchase: "+err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "purchaseId": purchaseID})
}

func (h *Handler) purchaseHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.PurchaseHistory(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list purchases")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) purchaseItems(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	rows, err := h.reports.PurchaseItems(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list purchase items")
		return
	}
	respondJSON(w, http.StatusOK, rows)
}
