package dto

// CreatePaymentRequest is the payment creation payload
type CreatePaymentRequest struct {
	MemberID int64   `json:"member_id" validate:"required,gt=0"`
	PlanID   int64   `json:"plan_id" validate:"required,gt=0"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Method   string  `json:"method" validate:"required,oneof=cash card gcash transfer"`
}

// UpdatePaymentStatusRequest transitions a pending payment
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
