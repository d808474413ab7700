package feed

import "context"

// EventSink receives named events from a feed stream. A Send error means the
// client is gone and the stream loop must stop.
type EventSink interface {
	Send(event string, payload interface{}) error
}

// Service defines the interface for the notification feed
type Service interface {
	// Stream runs the polling/diff loop for one admin connection, emitting
	// events into sink until ctx is done or a tick fails
	Stream(ctx context.Context, adminID int64, email string, sink EventSink) error

	// Evaluate runs every alert predicate and returns the eligible alerts for
	// the admin: condition true, not marked read, sorted and truncated
	Evaluate(ctx context.Context, adminID int64) ([]Alert, error)

	// UnreadCount returns the number of currently eligible alerts
	UnreadCount(ctx context.Context, adminID int64) (int, error)

	// MarkRead acknowledges one alert id and returns the new unread count
	MarkRead(ctx context.Context, adminID int64, alertID, category string) (int, error)

	// MarkAllRead acknowledges every currently raised alert id
	MarkAllRead(ctx context.Context, adminID int64) error

	// ClearAll deletes the admin's read-markers
	ClearAll(ctx context.Context, adminID int64) error
}
