package services

import (
	"context"
	"time"

	"github.com/gymdesk/gymdesk/internal/domain/attendance"
	"github.com/gymdesk/gymdesk/internal/domain/member"
	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// AttendanceService implements attendance.Service
type AttendanceService struct {
	repo    attendance.Repository
	members member.Repository
	logger  *logger.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(repo attendance.Repository, members member.Repository, log *logger.Logger) attendance.Service {
	return &AttendanceService{repo: repo, members: members, logger: log}
}

// CheckIn records a check-in for an active member
func (s *AttendanceService) CheckIn(ctx context.Context, memberID int64, source string) (int64, error) {
	if source != attendance.SourceFrontDesk && source != attendance.SourceQR {
		return 0, errors.BadRequest("invalid check-in source: " + source)
	}

	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return 0, err
	}
	if m.Status != member.StatusActive {
		return 0, errors.Conflict("member is not active")
	}

	id, err := s.repo.Create(ctx, &attendance.Record{
		MemberID:    memberID,
		CheckedInAt: time.Now(),
		Source:      source,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debugf("member %d checked in via %s", memberID, source)
	return id, nil
}

// History retrieves a member's check-in history, newest first
func (s *AttendanceService) History(ctx context.Context, memberID int64, limit, offset int) ([]*attendance.Record, int64, error) {
	return s.repo.ListByMember(ctx, memberID, limit, offset)
}
