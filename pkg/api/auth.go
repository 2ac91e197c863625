package api

import (
	"context"
	"fmt"
)

// LoginRequest — тело /auth/login/admin.
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken,omitempty"`
}

// Profile — текущий авторизованный админ (/auth/profile).
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

// Login выполняет вход администратора.
//
// Session cookie сохраняется в jar клиента — все последующие запросы
// авторизованы автоматически.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Profile, error) {
	var resp ItemResponse[Profile]
	if err := c.Post(ctx, "auth_login", "/auth/login/admin", req, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp.Data, nil
}

// Logout завершает сессию на backend.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Post(ctx, "auth_logout", "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// GetProfile возвращает профиль текущей сессии.
//
// 401 означает истекшую сессию — вызывающий показывает экран логина.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var resp ItemResponse[Profile]
	if err := c.Get(ctx, "auth_profile", "/auth/profile", nil, &resp); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &resp.Data, nil
}
