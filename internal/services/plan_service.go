package services

import (
	"context"
	"strings"

	"github.com/gymdesk/gymdesk/internal/domain/plan"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// PlanService implements plan.Service
type PlanService struct {
	repo   plan.Repository
	logger *logger.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(repo plan.Repository, log *logger.Logger) plan.Service {
	return &PlanService{repo: repo, logger: log}
}

func (s *PlanService) Create(ctx context.Context, p *plan.Plan) (int64, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return 0, errors.BadRequest("name is required")
	}
	if p.Price < 0 {
		return 0, errors.BadRequest("price must not be negative")
	}
	if p.DurationDays <= 0 {
		return 0, errors.BadRequest("duration_days must be positive")
	}
	return s.repo.Create(ctx, p)
}

func (s *PlanService) GetByID(ctx context.Context, id int64) (*plan.Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PlanService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if v, ok := updates["name"].(string); ok && strings.TrimSpace(v) != "" {
		p.Name = strings.TrimSpace(v)
	}
	if v, ok := updates["price"].(float64); ok {
		if v < 0 {
			return errors.BadRequest("price must not be negative")
		}
		p.Price = v
	}
	if v, ok := updates["duration_days"].(float64); ok {
		if v <= 0 {
			return errors.BadRequest("duration_days must be positive")
		}
		p.DurationDays = int(v)
	}
	if v, ok := updates["description"].(string); ok {
		p.Description = v
	}

	return s.repo.Update(ctx, p)
}

func (s *PlanService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *PlanService) List(ctx context.Context) ([]*plan.Plan, error) {
	return s.repo.List(ctx)
}
