package client

import (
	"context"
	"net/url"
)

// MarkNotificationRead acknowledges one alert id
func (c *Client) MarkNotificationRead(ctx context.Context, alertID, category string) (*MarkReadResult, error) {
	form := url.Values{}
	form.Set("notification_id", alertID)
	if category != "" {
		form.Set("notification_type", category)
	}

	var result MarkReadResult
	if err := c.doForm(ctx, "/api/v1/notifications/read", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkAllNotificationsRead acknowledges every currently raised alert
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (*SyncResult, error) {
	return c.sync(ctx, "mark_all_read")
}

// ClearAllNotifications deletes the admin's read-markers
func (c *Client) ClearAllNotifications(ctx context.Context) (*SyncResult, error) {
	return c.sync(ctx, "clear_all")
}

func (c *Client) sync(ctx context.Context, action string) (*SyncResult, error) {
	form := url.Values{}
	form.Set("action", action)

	var result SyncResult
	if err := c.doForm(ctx, "/api/v1/notifications/sync", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
