package common

import (
	"errors"

	"github.com/Freeeeeet/skilllink_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoBookingPage = errors.New("no booking page open in chat")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ Could not process this message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid button data"
	case errors.Is(err, ErrNoBookingPage):
		return service.MsgPageNotLoaded
	default:
		return service.ErrorText(err)
	}
}
