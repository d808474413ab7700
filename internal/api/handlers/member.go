package handlers

import (
	"net/http"
	"strconv"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/domain/member"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// MemberHandler serves member CRUD endpoints
type MemberHandler struct {
	service   member.Service
	validator *validator.Validator
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(service member.Service, v *validator.Validator) *MemberHandler {
	return &MemberHandler{service: service, validator: v}
}

// List handles GET /members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	q := r.URL.Query()

	filter := member.Filter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if planID, err := strconv.ParseInt(q.Get("plan_id"), 10, 64); err == nil {
		filter.PlanID = planID
	}

	members, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(members, params.Page, params.PageSize, total))
}

// Create handles POST /members
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMemberRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	m := &member.Member{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		PlanID:   req.PlanID,
	}
	id, err := h.service.Create(r.Context(), m)
	if err != nil {
		respondErr(w, err)
		return
	}

	m.ID = id
	utils.WriteSuccess(w, http.StatusCreated, m)
}

// Get handles GET /members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	m, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, m)
}

// Update handles PATCH /members/{id}
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdateMemberRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Update(r.Context(), id, req.Updates()); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "member updated", nil)
}

// Delete handles DELETE /members/{id}
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "member deleted", nil)
}

// Summary handles GET /members/summary
func (h *MemberHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.GetSummary(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, counts)
}
