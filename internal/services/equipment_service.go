package services

import (
	"context"
	"strings"

	"github.com/gymdesk/gymdesk/internal/domain/equipment"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// EquipmentService implements equipment.Service
type EquipmentService struct {
	repo   equipment.Repository
	logger *logger.Logger
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(repo equipment.Repository, log *logger.Logger) equipment.Service {
	return &EquipmentService{repo: repo, logger: log}
}

func validEquipmentStatus(status string) bool {
	switch status {
	case equipment.StatusAvailable, equipment.StatusInUse, equipment.StatusMaintenance, equipment.StatusRetired:
		return true
	}
	return false
}

func (s *EquipmentService) Create(ctx context.Context, e *equipment.Equipment) (int64, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return 0, errors.BadRequest("name is required")
	}
	if e.Status == "" {
		e.Status = equipment.StatusAvailable
	}
	if !validEquipmentStatus(e.Status) {
		return 0, errors.BadRequest("invalid equipment status: " + e.Status)
	}
	return s.repo.Create(ctx, e)
}

func (s *EquipmentService) GetByID(ctx context.Context, id int64) (*equipment.Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EquipmentService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if v, ok := updates["name"].(string); ok && strings.TrimSpace(v) != "" {
		e.Name = strings.TrimSpace(v)
	}
	if v, ok := updates["category"].(string); ok {
		e.Category = v
	}
	if v, ok := updates["status"].(string); ok && v != "" {
		if !validEquipmentStatus(v) {
			return errors.BadRequest("invalid equipment status: " + v)
		}
		e.Status = v
	}
	if v, ok := updates["notes"].(string); ok {
		e.Notes = v
	}

	return s.repo.Update(ctx, e)
}

func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *EquipmentService) List(ctx context.Context, filter equipment.Filter, limit, offset int) ([]*equipment.Equipment, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

func (s *EquipmentService) GetSummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}
