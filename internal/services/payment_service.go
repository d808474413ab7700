package services

import (
	"context"

	"github.com/gymdesk/gymdesk/internal/domain/payment"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// PaymentService implements payment.Service
type PaymentService struct {
	repo   payment.Repository
	logger *logger.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo payment.Repository, log *logger.Logger) payment.Service {
	return &PaymentService{repo: repo, logger: log}
}

func (s *PaymentService) Create(ctx context.Context, p *payment.Payment) (int64, error) {
	if p.MemberID <= 0 {
		return 0, errors.BadRequest("member_id is required")
	}
	if p.Amount <= 0 {
		return 0, errors.BadRequest("amount must be positive")
	}
	switch p.Method {
	case payment.MethodCash, payment.MethodCard, payment.MethodGCash, payment.MethodTransfer:
	default:
		return 0, errors.BadRequest("invalid payment method: " + p.Method)
	}

	// New payments always start pending; approval is a separate step.
	p.Status = payment.StatusPending

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return 0, err
	}

	s.logger.Infof("recorded payment %d for member %d (%.2f)", id, p.MemberID, p.Amount)
	return id, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus transitions a payment. Only pending payments can move, and only
// to approved or rejected.
func (s *PaymentService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if status != payment.StatusApproved && status != payment.StatusRejected {
		return errors.BadRequest("status must be approved or rejected")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != payment.StatusPending {
		return errors.Conflict("payment has already been " + p.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Infof("payment %d %s", id, status)
	return nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *PaymentService) List(ctx context.Context, filter payment.Filter, limit, offset int) ([]*payment.Payment, int64, error) {
	return s.repo.ListWithPagination(ctx, filter, limit, offset)
}
