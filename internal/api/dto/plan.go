package dto

// CreatePlanRequest is the plan creation payload
type CreatePlanRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Price        float64 `json:"price" validate:"gte=0"`
	DurationDays int     `json:"duration_days" validate:"required,gt=0"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
}

// UpdatePlanRequest is a partial plan update
type UpdatePlanRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	DurationDays *int     `json:"duration_days" validate:"omitempty,gt=0"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
}

// Updates flattens the set fields into the service's update map
func (r *UpdatePlanRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.DurationDays != nil {
		updates["duration_days"] = float64(*r.DurationDays)
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	return updates
}
