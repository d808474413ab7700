package client

import "time"

// Admin is an admin account as returned by the API
type Admin struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Member is a gym member as returned by the API
type Member struct {
	ID       int64     `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	PlanID   int64     `json:"plan_id"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// Alert is one notification feed entry
type Alert struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Priority  string `json:"priority"`
	Read      bool   `json:"read"`
	Timestamp int64  `json:"timestamp"`
}

// NotificationsPayload is the payload of a notifications event
type NotificationsPayload struct {
	Notifications []Alert `json:"notifications"`
	UnreadCount   int     `json:"unread_count"`
}

// CountPayload is the payload of a count_update event
type CountPayload struct {
	UnreadCount int `json:"unread_count"`
}

// MarkReadResult answers a mark-read call
type MarkReadResult struct {
	Success        bool   `json:"success"`
	UnreadCount    int    `json:"unread_count"`
	NotificationID string `json:"notification_id,omitempty"`
	Error          string `json:"error,omitempty"`
}

// SyncResult answers a sync call
type SyncResult struct {
	Success     bool   `json:"success"`
	UnreadCount int    `json:"unread_count"`
	Error       string `json:"error,omitempty"`
}

// PaginatedMembers is a page of members
type PaginatedMembers struct {
	Data       []Member `json:"data"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalItems int64    `json:"total_items"`
	TotalPages int      `json:"total_pages"`
}
