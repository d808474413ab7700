package attendance

import (
	"context"
	"time"
)

// Record represents one member check-in
type Record struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// Check-in sources
const (
	SourceFrontDesk = "front_desk"
	SourceQR        = "qr"
)

// Repository defines the interface for attendance data access
type Repository interface {
	// Create records a check-in
	Create(ctx context.Context, rec *Record) (int64, error)

	// ListByMember retrieves a member's check-in history, newest first
	ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]*Record, int64, error)

	// ListRecent retrieves check-ins since the given time, newest first
	ListRecent(ctx context.Context, since time.Time, limit int) ([]*Record, error)
}

// Service defines the interface for attendance business logic
type Service interface {
	CheckIn(ctx context.Context, memberID int64, source string) (int64, error)
	History(ctx context.Context, memberID int64, limit, offset int) ([]*Record, int64, error)
}
