package api

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
)

// Register регистрирует пользователя и возвращает текст ответа бэкенда
func (c *Client) Register(ctx context.Context, registration model.Registration) (string, error) {
	var message string
	err := c.do(ctx, request{method: http.MethodPost, path: "auth/register", body: registration}, &message)
	if err != nil {
		return "", err
	}
	return message, nil
}

// Login обменивает email и пароль на токен
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "auth/login", body: creds}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
