package models

import "time"

// ---- Gym profile ----

type GymProfile struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// ---- Opening hours ----

type OpeningHours struct {
	Weekday string `json:"weekday"`
	Opens   string `json:"opens"`
	Closes  string `json:"closes"`
	Closed  bool   `json:"closed"`
}

type UpdateHoursRequest struct {
	Hours []OpeningHours `json:"hours"`
}

// ---- Alert thresholds ----

type AlertThresholds struct {
	ExpiryWindowDays   int     `json:"expiryWindowDays"`
	LowAttendanceDays  int     `json:"lowAttendanceDays"`
	InactiveDays       int     `json:"inactiveDays"`
	HighValueAmount    float64 `json:"highValueAmount"`
	SalesDeltaPercent  float64 `json:"salesDeltaPercent"`
	GrowthTargetPct    float64 `json:"growthTargetPct"`
	PlanImbalanceRatio float64 `json:"planImbalanceRatio"`
}

type UpdateThresholdsRequest struct {
	ExpiryWindowDays   *int     `json:"expiryWindowDays"`
	LowAttendanceDays  *int     `json:"lowAttendanceDays"`
	InactiveDays       *int     `json:"inactiveDays"`
	HighValueAmount    *float64 `json:"highValueAmount"`
	SalesDeltaPercent  *float64 `json:"salesDeltaPercent"`
	GrowthTargetPct    *float64 `json:"growthTargetPct"`
	PlanImbalanceRatio *float64 `json:"planImbalanceRatio"`
}

// ---- Staff ----

type StaffMember struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UpdateStaffRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}
