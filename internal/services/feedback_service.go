package services

import (
	"context"
	"strings"

	"github.com/gymdesk/gymdesk/internal/domain/feedback"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// FeedbackService implements feedback.Service
type FeedbackService struct {
	repo   feedback.Repository
	logger *logger.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo feedback.Repository, log *logger.Logger) feedback.Service {
	return &FeedbackService{repo: repo, logger: log}
}

func (s *FeedbackService) Create(ctx context.Context, f *feedback.Feedback) (int64, error) {
	if f.MemberID <= 0 {
		return 0, errors.BadRequest("member_id is required")
	}
	if strings.TrimSpace(f.Message) == "" {
		return 0, errors.BadRequest("message is required")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return 0, errors.BadRequest("rating must be between 1 and 5")
	}
	return s.repo.Create(ctx, f)
}

func (s *FeedbackService) GetByID(ctx context.Context, id int64) (*feedback.Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *FeedbackService) List(ctx context.Context, limit, offset int) ([]*feedback.Feedback, int64, error) {
	return s.repo.ListWithPagination(ctx, limit, offset)
}
