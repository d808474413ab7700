package handlers

import (
	"net/http"

	"github.com/gymdesk/gymdesk/internal/api/dto"
	"github.com/gymdesk/gymdesk/internal/domain/attendance"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
	"github.com/gymdesk/gymdesk/internal/pkg/validator"
)

// AttendanceHandler serves check-in endpoints
type AttendanceHandler struct {
	service   attendance.Service
	validator *validator.Validator
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(service attendance.Service, v *validator.Validator) *AttendanceHandler {
	return &AttendanceHandler{service: service, validator: v}
}

// CheckIn handles POST /attendance
func (h *AttendanceHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckInRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	id, err := h.service.CheckIn(r.Context(), req.MemberID, req.Source)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, map[string]int64{"id": id})
}

// History handles GET /members/{id}/attendance
func (h *AttendanceHandler) History(w http.ResponseWriter, r *http.Request) {
	memberID, appErr := idParam(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	params := utils.ParsePaginationParams(r)
	records, total, err := h.service.History(r.Context(), memberID, params.PageSize, params.Offset)
	if err != nil {
		respondErr(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(records, params.Page, params.PageSize, total))
}
