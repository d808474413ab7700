package dto

// MarkReadResponse answers the mark-read endpoint. The shape is fixed for the
// browser client: success plus the recomputed unread count.
type MarkReadResponse struct {
	Success        bool   `json:"success"`
	UnreadCount    int    `json:"unread_count"`
	NotificationID string `json:"notification_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

// SyncResponse answers the sync endpoint (mark_all_read / clear_all)
type SyncResponse struct {
	Success     bool   `json:"success"`
	UnreadCount int    `json:"unread_count"`
	Error       string `json:"error,omitempty"`
}

// Sync actions
const (
	SyncActionMarkAllRead = "mark_all_read"
	SyncActionClearAll    = "clear_all"
)
