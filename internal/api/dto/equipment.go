package dto

// CreateEquipmentRequest is the equipment creation payload
type CreateEquipmentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Category string `json:"category" validate:"omitempty,max=50"`
	Status   string `json:"status" validate:"omitempty,oneof=Available 'In Use' Maintenance Retired"`
	Notes    string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateEquipmentRequest is a partial equipment update
type UpdateEquipmentRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Category *string `json:"category" validate:"omitempty,max=50"`
	Status   *string `json:"status" validate:"omitempty,oneof=Available 'In Use' Maintenance Retired"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
}

// Updates flattens the set fields into the service's update map
func (r *UpdateEquipmentRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	return updates
}
