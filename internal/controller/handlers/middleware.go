package handlers

import (
	"context"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession проверяет что в чате выполнен вход.
// Возвращает сессию и true если OK, иначе предлагает войти
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (model.Session, bool) {
	if update.Message == nil {
		return model.Session{}, false
	}

	chatID := update.Message.Chat.ID
	session := h.sessions.Get(chatID)
	if !session.IsAuthenticated {
		h.sendLoginPrompt(ctx, b, chatID, service.ErrorText(service.ErrLoginRequired))
		return model.Session{}, false
	}

	return session, true
}

// requireRole охрана страниц кабинетов: без входа или с чужой ролью
// пользователь отправляется на вход
func (h *Handlers) requireRole(ctx context.Context, b *bot.Bot, chatID int64, role model.Role) (model.Session, bool) {
	session := h.sessions.Get(chatID)
	if err := service.RequireRole(session, role); err != nil {
		h.logger.Info("Route guard rejected command",
			zap.Int64("chat_id", chatID),
			zap.String("required_role", string(role)),
			zap.String("role", string(session.Role)),
			zap.Error(err))
		h.sendLoginPrompt(ctx, b, chatID, service.ErrorText(err))
		return model.Session{}, false
	}

	return session, true
}
