package client

import (
	"context"
	"fmt"
	"net/http"
)

// UserService covers account and user administration endpoints.
type UserService struct {
	client *Client
}

// Register creates an account and stores the returned session.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	return s.authenticate(ctx, "users/register", req)
}

// Login signs in and stores the returned session.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	return s.authenticate(ctx, "users/login", req)
}

func (s *UserService) authenticate(ctx context.Context, path string, body interface{}) (*AuthResult, error) {
	var result AuthResult
	if err := s.client.do(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return nil, err
	}
	s.client.session.Set(result.Token, result.User)
	return &result, nil
}

// Logout clears the local session even when the server call fails.
func (s *UserService) Logout(ctx context.Context) error {
	defer s.client.session.Clear()
	return s.client.do(ctx, http.MethodPost, "users/logout", nil, nil, nil)
}

func (s *UserService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "users/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile also refreshes the user held by the session.
func (s *UserService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodPut, "users/profile", nil, req, &user); err != nil {
		return nil, err
	}
	if token := s.client.session.Token(); token != "" {
		s.client.session.Set(token, &user)
	}
	return &user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	return s.client.do(ctx, http.MethodPut, "users/password", nil, req, nil)
}

func (s *UserService) List(ctx context.Context, opts *UserListOptions) (*Page[User], error) {
	return list[User](ctx, s.client, "users/all", opts)
}

func (s *UserService) AssignRole(ctx context.Context, id uint, role string) (*User, error) {
	var user User
	body := map[string]string{"role": role}
	if err := s.client.do(ctx, http.MethodPut, fmt.Sprintf("users/%d/role", id), nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("users/%d", id), nil, nil, nil)
}
