package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithContext создаёт HandlerContext без проверок
func WithContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	handler(NewHandlerContext(ctx, b, callback, h))
}

// WithRole создаёт HandlerContext и проверяет вход и роль.
// Без нужной роли пользователь отправляется на вход
func WithRole(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	role model.Role,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireRole(role); err != nil {
		h.Logger.Info("Route guard rejected callback",
			zap.Int64("chat_id", hc.ChatID),
			zap.String("required_role", string(role)),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		RedirectToLogin(hc)
		return
	}

	handler(hc)
}

// RedirectToLogin показывает кнопку входа
func RedirectToLogin(hc *HandlerContext) {
	kb := keyboard.NewBuilder().Row(keyboard.LoginButton()).Build()
	if err := hc.SendMessage("🔑 Please log in to continue.", kb); err != nil {
		hc.Handler.Logger.Error("Failed to send login redirect", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	}
}

// ReportError показывает ошибку действия. Истёкшая сессия ведёт на вход
func ReportError(hc *HandlerContext, err error) {
	hc.Handler.Logger.Warn("Callback action failed", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))

	if errors.Is(err, service.ErrSessionExpired) {
		RedirectToLogin(hc)
	}
}
