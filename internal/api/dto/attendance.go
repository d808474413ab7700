package dto

// CheckInRequest records a member check-in
type CheckInRequest struct {
	MemberID int64  `json:"member_id" validate:"required,gt=0"`
	Source   string `json:"source" validate:"required,oneof=front_desk qr"`
}
