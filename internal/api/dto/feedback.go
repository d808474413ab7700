package dto

// CreateFeedbackRequest is the feedback submission payload
type CreateFeedbackRequest struct {
	MemberID int64  `json:"member_id" validate:"required,gt=0"`
	Subject  string `json:"subject" validate:"omitempty,max=200"`
	Message  string `json:"message" validate:"required,min=1,max=2000"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}
