package member

import "time"

// Member represents a gym member
type Member struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	PlanID    int64     `json:"plan_id"`
	Status    string    `json:"status"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Member status
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// Filter contains member filtering options
type Filter struct {
	Status string
	PlanID int64
	Search string
}
