package service

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
)

// Ошибки клиентской валидации: запрос в сеть не уходит
var (
	ErrLoginRequired  = errors.New("login required")
	ErrWrongRole      = errors.New("wrong role for this page")
	ErrMissingTimes   = errors.New("both start and end times are required")
	ErrInvalidTime    = errors.New("time must look like 2006-01-02 15:04")
	ErrInvalidRange   = errors.New("end time must be after start time")
	ErrMissingRate    = errors.New("at least one rate is required")
	ErrInvalidRate    = errors.New("rate must be a non-negative number")
	ErrSessionExpired = errors.New("session expired")
	ErrPageNotLoaded  = errors.New("booking page is not loaded")
)

// ValidationError ошибки полей формы
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}

// ErrorText текст для пользователя по ошибке сервиса
func ErrorText(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "❌ " + strings.Join(verr.Fields, "\n❌ ")
	case errors.Is(err, ErrSessionExpired):
		return "🔒 Session expired or unauthorized access. Please log in again."
	case errors.Is(err, ErrLoginRequired):
		return "🔒 Please log in first: /login"
	case errors.Is(err, ErrWrongRole):
		return "🚫 This page is not available for your role. Log in with another account: /login"
	case errors.Is(err, ErrMissingTimes):
		return "⚠️ Please fill in both start and end times."
	case errors.Is(err, ErrInvalidTime):
		return "⚠️ Use the format 2025-01-31 18:00"
	case errors.Is(err, ErrInvalidRange):
		return "⚠️ End time must be after start time."
	case errors.Is(err, ErrMissingRate):
		return "⚠️ Please enter at least one rate."
	case errors.Is(err, ErrInvalidRate):
		return "⚠️ Rate must be a non-negative number."
	case errors.Is(err, ErrPageNotLoaded):
		return MsgPageNotLoaded
	}

	if apiErr, ok := api.AsError(err); ok && apiErr.Detail() != "" {
		return "❌ Error: " + apiErr.Detail()
	}
	return "❌ Something went wrong. Please try again."
}
