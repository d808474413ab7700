package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// MemberFilter narrows a member listing
type MemberFilter struct {
	Status string
	PlanID int64
	Search string
	Page   int
}

// ListMembers returns a page of members
func (c *Client) ListMembers(ctx context.Context, filter MemberFilter) (*PaginatedMembers, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.PlanID > 0 {
		q.Set("plan_id", strconv.FormatInt(filter.PlanID, 10))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}

	path := "/api/v1/members/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page PaginatedMembers
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMember returns one member by id
func (c *Client) GetMember(ctx context.Context, id int64) (*Member, error) {
	var m Member
	path := fmt.Sprintf("/api/v1/members/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberSummary returns member counts keyed by status
func (c *Client) MemberSummary(ctx context.Context) (map[string]int, error) {
	var counts map[string]int
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/members/summary", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
