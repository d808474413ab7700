package handlers

import (
	"net/http"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/domain/feedback"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// FeedbackHandler serves feedback endpoints
type FeedbackHandler struct {
	service   feedback.Service
	validator *validator.Validator
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(service feedback.Service, v *validator.Validator) *FeedbackHandler {
	return &FeedbackHandler{service: service, validator: v}
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	entries, total, err := h.service.List(r.Context(), params.PageSize, params.Offset)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(entries, params.Page, params.PageSize, total))
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	f := &feedback.Feedback{
		MemberID: req.MemberID,
		Subject:  req.Subject,
		Message:  req.Message,
		Rating:   req.Rating,
	}
	id, err := h.service.Create(r.Context(), f)
	if err != nil {
		respondErr(w, err)
		return
	}

	f.ID = id
	utils.WriteSuccess(w, http.StatusCreated, f)
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	f, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, f)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "feedback deleted", nil)
}
