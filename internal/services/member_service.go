package services

import (
	"context"
	"strings"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/member"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// MemberService implements member.Service
type MemberService struct {
	repo   member.Repository
	logger *logger.Logger
}

// NewMemberService creates a new member service
func NewMemberService(repo member.Repository, log *logger.Logger) member.Service {
	return &MemberService{repo: repo, logger: log}
}

// Create creates a new member
func (s *MemberService) Create(ctx context.Context, m *member.Member) (int64, error) {
	m.FullName = strings.TrimSpace(m.FullName)
	if m.FullName == "" {
		return 0, errors.BadRequest("full_name is required")
	}
	if m.Status == "" {
		m.Status = member.StatusActive
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("created member %d (%s)", id, m.FullName)
	return id, nil
}

// GetByID retrieves a member by ID
func (s *MemberService) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update to a member
func (s *MemberService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if v, ok := updates["full_name"].(string); ok && strings.TrimSpace(v) != "" {
		m.FullName = strings.TrimSpace(v)
	}
	if v, ok := updates["email"].(string); ok {
		m.Email = strings.TrimSpace(v)
	}
	if v, ok := updates["phone"].(string); ok {
		m.Phone = v
	}
	if v, ok := updates["plan_id"].(float64); ok && v > 0 {
		m.PlanID = int64(v)
	}
	if v, ok := updates["status"].(string); ok && v != "" {
		switch v {
		case member.StatusActive, member.StatusInactive, member.StatusSuspended:
			m.Status = v
		default:
			return errors.BadRequest("invalid member status: " + v)
		}
	}

	return s.repo.Update(ctx, m)
}

// Delete deletes a member
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("deleted member %d", id)
	return nil
}

// List retrieves members with filters and pagination
func (s *MemberService) List(ctx context.Context, filter member.Filter, limit, offset int) ([]*member.Member, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}

// GetSummary gets member counts by status
func (s *MemberService) GetSummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}
