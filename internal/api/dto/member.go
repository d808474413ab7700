package dto

// CreateMemberRequest is the member creation payload
type CreateMemberRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	PlanID   int64  `json:"plan_id" validate:"required,gt=0"`
}

// UpdateMemberRequest is a partial member update; absent fields are untouched
type UpdateMemberRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	PlanID   *int64  `json:"plan_id" validate:"omitempty,gt=0"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// Updates flattens the set fields into the service's update map
func (r *UpdateMemberRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.FullName != nil {
		updates["full_name"] = *r.FullName
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.PlanID != nil {
		updates["plan_id"] = float64(*r.PlanID)
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	return updates
}
