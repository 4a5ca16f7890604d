package client

import (
	"context"
	"fmt"
	"net/http"
)

type MessageService struct {
	client *Client
}

func (s *MessageService) Send(ctx context.Context, req *SendMessageRequest) (*Message, error) {
	return s.send(ctx, http.MethodPost, "messages", req)
}

// List returns messages addressed to the signed-in user.
func (s *MessageService) List(ctx context.Context, opts *MessageListOptions) (*Page[Message], error) {
	return list[Message](ctx, s.client, "messages", opts)
}

func (s *MessageService) UnreadCount(ctx context.Context) (int64, error) {
	var out count
	if err := s.client.do(ctx, http.MethodGet, "messages/unread-count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// WithUser returns the direct conversation with userID, oldest first.
func (s *MessageService) WithUser(ctx context.Context, userID uint, opts *ListOptions) (*Page[Message], error) {
	return list[Message](ctx, s.client, fmt.Sprintf("messages/chat/user/%d", userID), opts)
}

// InProject returns the project's channel, oldest first.
func (s *MessageService) InProject(ctx context.Context, projectID uint, opts *ListOptions) (*Page[Message], error) {
	return list[Message](ctx, s.client, fmt.Sprintf("messages/chat/project/%d", projectID), opts)
}

func (s *MessageService) Get(ctx context.Context, id uint) (*Message, error) {
	return s.send(ctx, http.MethodGet, fmt.Sprintf("messages/%d", id), nil)
}

func (s *MessageService) Edit(ctx context.Context, id uint, content string) (*Message, error) {
	body := map[string]string{"content": content}
	return s.send(ctx, http.MethodPut, fmt.Sprintf("messages/%d", id), body)
}

func (s *MessageService) MarkRead(ctx context.Context, id uint) (*Message, error) {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("messages/%d/read", id), nil)
}

func (s *MessageService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("messages/%d", id), nil, nil, nil)
}

func (s *MessageService) send(ctx context.Context, method, path string, body interface{}) (*Message, error) {
	var msg Message
	if err := s.client.do(ctx, method, path, nil, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
