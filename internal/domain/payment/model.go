package payment

import "time"

// Payment represents a membership payment
type Payment struct {
	ID        int64      `json:"id"`
	MemberID  int64      `json:"member_id"`
	PlanID    int64      `json:"plan_id"`
	Amount    float64    `json:"amount"`
	Method    string     `json:"method"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// Payment status
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Payment methods
const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodGCash    = "gcash"
	MethodTransfer = "transfer"
)

// Filter contains payment filtering options
type Filter struct {
	MemberID int64
	Status   string
	Method   string
}
