package handlers

import (
	"net/http"
	"strconv"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/domain/payment"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// PaymentHandler serves payment endpoints
type PaymentHandler struct {
	service   payment.Service
	validator *validator.Validator
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service payment.Service, v *validator.Validator) *PaymentHandler {
	return &PaymentHandler{service: service, validator: v}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)
	q := r.URL.Query()

	filter := payment.Filter{
		Status: q.Get("status"),
		Method: q.Get("method"),
	}
	if memberID, err := strconv.ParseInt(q.Get("member_id"), 10, 64); err == nil {
		filter.MemberID = memberID
	}

	payments, total, err := h.service.List(r.Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(payments, params.Page, params.PageSize, total))
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	p := &payment.Payment{
		MemberID: req.MemberID,
		PlanID:   req.PlanID,
		Amount:   req.Amount,
		Method:   req.Method,
	}
	id, err := h.service.Create(r.Context(), p)
	if err != nil {
		respondErr(w, err)
		return
	}

	p.ID = id
	utils.WriteSuccess(w, http.StatusCreated, p)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// UpdateStatus handles PATCH /payments/{id}/status
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "payment "+req.Status, nil)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "payment deleted", nil)
}
