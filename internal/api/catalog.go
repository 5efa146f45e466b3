package api

import (
	"errors"
	"net/http"

	"pharmapos/m/domain"
	"pharmapos/m/internal/catalog"
)

// Medicine handlers

type medicineRequest struct {
	BrandName       string `json:"brand_name"`
	GenericName     string `json:"generic_name"`
	Strength        string `json:"strength"`
	DosageForm      string `json:"dosage_form"`
	PackSize        string `json:"pack_size"`
	Barcode         string `json:"barcode"`
	Manufacturer    string `json:"manufacturer"`
	SaltComposition string `json:"salt_composition"`
	StorageNotes    string `json:"storage_notes"`
}

func (req medicineRequest) toDomain() domain.Medicine {
	return domain.Medicine{
		BrandName:       req.BrandName,
		GenericName:     req.GenericName,
		Strength:        req.Strength,
		DosageForm:      req.DosageForm,
		PackSize:        req.PackSize,
		Barcode:         nullIfEmpty(req.Barcode),
		Manufacturer:    req.Manufacturer,
		SaltComposition: req.SaltComposition,
		StorageNotes:    req.StorageNotes,
	}
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.catalog.ListMedicines(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BrandName == "" {
		respondError(w, http.StatusBadRequest, "brand_name is required")
		return
	}
	id, err := h.catalog.CreateMedicine(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to create medicine: "+err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BrandName == "" {
		respondError(w, http.StatusBadRequest, "brand_name is required")
		return
	}
	if err := h.catalog.UpdateMedicine(r.Context(), id, req.toDomain()); err != nil {
		respondError(w, http.StatusBadRequest, "unable to update medicine: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	err = h.catalog.DeleteMedicine(r.Context(), id)
	if errors.Is(err, catalog.ErrReferenced) {
		respondError(w, http.StatusBadRequest, "Cannot delete medicine with existing stock batches")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete medicine")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Supplier handlers

type supplierRequest struct {
	Name          string `json:"name"`
	ContactInfo   string `json:"contact_info"`
	LicenseNumber string `json:"license_number"`
	PaymentTerms  string `json:"payment_terms"`
}

func (req supplierRequest) toDomain() domain.Supplier {
	return domain.Supplier{
		Name:          req.Name,
		ContactInfo:   req.ContactInfo,
		LicenseNumber: req.LicenseNumber,
		PaymentTerms:  req.PaymentTerms,
	}
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.catalog.ListSuppliers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list suppliers")
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := h.catalog.CreateSupplier(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, http.StatusBadRequest, "unable to create supplier: "+err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := h.catalog.UpdateSupplier(r.Context(), id, req.toDomain()); err != nil {
		respondError(w, http.StatusBadRequest, "unable to update supplier: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	err = h.catalog.DeleteSupplier(r.Context(), id)
	if errors.Is(err, catalog.ErrReferenced) {
		respondError(w, http.StatusBadRequest, "Cannot delete supplier with associated stock batches")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete supplier")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) supplierPurchases(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	purchases, err := h.catalog.SupplierPurchases(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list supplier purchases")
		return
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (h *Handler) supplierMedicines(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	medicines, err := h.catalog.SupplierMedicines(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list supplier medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}
