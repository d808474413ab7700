package handlers

import (
	"net/http"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/domain/equipment"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// EquipmentHandler serves equipment CRUD endpoints
type EquipmentHandler struct {
	service   equipment.Service
	validator *validator.Validator
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(service equipment.Service, v *validator.Validator) *EquipmentHandler {
	return &EquipmentHandler{service: service, validator: v}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	q := r.URL.Query()

	filter := equipment.Filter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
	}

	items, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(items, params.Page, params.PageSize, total))
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEquipmentRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	e := &equipment.Equipment{
		Name:     req.Name,
		Category: req.Category,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	id, err := h.service.Create(r.Context(), e)
	if err != nil {
		respondErr(w, err)
		return
	}

	e.ID = id
	utils.WriteSuccess(w, http.StatusCreated, e)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, e)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdateEquipmentRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Update(r.Context(), id, req.Updates()); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "equipment updated", nil)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "equipment deleted", nil)
}

// Summary handles GET /equipment/summary
func (h *EquipmentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.GetSummary(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, counts)
}
