package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	m "github.com/gymdesk/gymdesk/settings/models"
	u "github.com/gymdesk/gymdesk/settings/utils"
)

// In-memory state, reset on restart. This service fronts the admin settings
// screens; nothing here is consulted by the main API at runtime.
var (
	mu sync.Mutex

	profile = m.GymProfile{ID: 1, Name: "GymDesk Fitness", Address: "123 Main St"}

	hours = []m.OpeningHours{
		{Weekday: "monday", Opens: "06:00", Closes: "22:00"},
		{Weekday: "tuesday", Opens: "06:00", Closes: "22:00"},
		{Weekday: "wednesday", Opens: "06:00", Closes: "22:00"},
		{Weekday: "thursday", Opens: "06:00", Closes: "22:00"},
		{Weekday: "friday", Opens: "06:00", Closes: "22:00"},
		{Weekday: "saturday", Opens: "08:00", Closes: "20:00"},
		{Weekday: "sunday", Closed: true},
	}

	thresholds = m.AlertThresholds{
		ExpiryWindowDays:   7,
		LowAttendanceDays:  14,
		InactiveDays:       30,
		HighValueAmount:    1000,
		SalesDeltaPercent:  20,
		GrowthTargetPct:    10,
		PlanImbalanceRatio: 5,
	}

	staff = []m.StaffMember{}
)

// Profile

func GetProfile(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	u.JSON(c, http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	var req m.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Email != nil {
		profile.Email = req.Email
	}
	u.JSON(c, http.StatusOK, profile)
}

// Opening hours

func GetHours(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	u.JSON(c, http.StatusOK, hours)
}

func UpdateHours(c *gin.Context) {
	var req m.UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Hours) == 0 {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	hours = req.Hours
	u.JSON(c, http.StatusOK, hours)
}

// Alert thresholds

func GetThresholds(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	u.JSON(c, http.StatusOK, thresholds)
}

func UpdateThresholds(c *gin.Context) {
	var req m.UpdateThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	if req.ExpiryWindowDays != nil {
		thresholds.ExpiryWindowDays = *req.ExpiryWindowDays
	}
	if req.LowAttendanceDays != nil {
		thresholds.LowAttendanceDays = *req.LowAttendanceDays
	}
	if req.InactiveDays != nil {
		thresholds.InactiveDays = *req.InactiveDays
	}
	if req.HighValueAmount != nil {
		thresholds.HighValueAmount = *req.HighValueAmount
	}
	if req.SalesDeltaPercent != nil {
		thresholds.SalesDeltaPercent = *req.SalesDeltaPercent
	}
	if req.GrowthTargetPct != nil {
		thresholds.GrowthTargetPct = *req.GrowthTargetPct
	}
	if req.PlanImbalanceRatio != nil {
		thresholds.PlanImbalanceRatio = *req.PlanImbalanceRatio
	}
	u.JSON(c, http.StatusOK, thresholds)
}

// Staff

func ListStaff(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	u.JSON(c, http.StatusOK, staff)
}

func InviteStaff(c *gin.Context) {
	var req m.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		u.Error(c, http.StatusBadRequest, "invalid invite")
		return
	}
	if req.Role == "" {
		req.Role = "staff"
	}

	member := m.StaffMember{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Role:      req.Role,
		Status:    "invited",
		CreatedAt: time.Now(),
	}

	mu.Lock()
	defer mu.Unlock()
	staff = append(staff, member)
	u.JSON(c, http.StatusCreated, member)
}

func UpdateStaff(c *gin.Context) {
	var req m.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	mu.Lock()
	defer mu.Unlock()
	for i := range staff {
		if staff[i].ID == c.Param("id") {
			if req.Role != nil {
				staff[i].Role = *req.Role
			}
			if req.Status != nil {
				staff[i].Status = *req.Status
			}
			u.JSON(c, http.StatusOK, staff[i])
			return
		}
	}
	u.Error(c, http.StatusNotFound, "staff member not found")
}

func DeleteStaff(c *gin.Context) {
	mu.Lock()
	defer mu.Unlock()
	for i := range staff {
		if staff[i].ID == c.Param("id") {
			staff = append(staff[:i], staff[i+1:]...)
			u.JSON(c, http.StatusOK, gin.H{"status": "removed"})
			return
		}
	}
	u.Error(c, http.StatusNotFound, "staff member not found")
}
