package handlers

import (
	"net/http"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/domain/plan"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// PlanHandler serves membership-plan CRUD endpoints
type PlanHandler struct {
	service   plan.Service
	validator *validator.Validator
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(service plan.Service, v *validator.Validator) *PlanHandler {
	return &PlanHandler{service: service, validator: v}
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plans)
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlanRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	p := &plan.Plan{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Description:  req.Description,
	}
	id, err := h.service.Create(r.Context(), p)
	if err != nil {
		respondErr(w, err)
		return
	}

	p.ID = id
	utils.WriteSuccess(w, http.StatusCreated, p)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdatePlanRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Update(r.Context(), id, req.Updates()); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "plan updated", nil)
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "plan deleted", nil)
}
