package client

import (
	"context"
	"fmt"
	"net/http"
)

type NotificationService struct {
	client *Client
}

func (s *NotificationService) List(ctx context.Context, opts *NotificationListOptions) (*Page[Notification], error) {
	return list[Notification](ctx, s.client, "notifications", opts)
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int64, error) {
	var out count
	if err := s.client.do(ctx, http.MethodGet, "notifications/unread-count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (s *NotificationService) Get(ctx context.Context, id uint) (*Notification, error) {
	return s.send(ctx, http.MethodGet, fmt.Sprintf("notifications/%d", id))
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint) (*Notification, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("notifications/%d/read", id))
}

// MarkAllRead returns the number of notifications that changed.
func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	var out struct {
		Updated int64 `json:"updated"`
	}
	if err := s.client.do(ctx, http.MethodPut, "notifications/read-all", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

func (s *NotificationService) Archive(ctx context.Context, id uint) (*Notification, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("notifications/%d/archive", id))
}

func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("notifications/%d", id), nil, nil, nil)
}

func (s *NotificationService) send(ctx context.Context, method, path string) (*Notification, error) {
	var n Notification
	if err := s.client.do(ctx, method, path, nil, nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
