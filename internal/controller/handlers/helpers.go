package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет экран с разметкой HTML и клавиатурой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send screen",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendLoginPrompt предлагает войти
func (h *Handlers) sendLoginPrompt(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	kb := keyboard.NewBuilder().Row(keyboard.LoginButton()).Build()
	h.sendHTML(ctx, b, chatID, text, kb)
}

// reportError показывает ошибку операции. Истёкшая сессия ведёт на вход
func (h *Handlers) reportError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	h.logger.Warn("Action failed", zap.Int64("chat_id", chatID), zap.Error(err))

	text := service.ErrorText(err)
	if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrLoginRequired) || errors.Is(err, service.ErrWrongRole) {
		h.stateManager.ClearState(chatID)
		h.sendLoginPrompt(ctx, b, chatID, text)
		return
	}
	h.sendError(ctx, b, chatID, text)
}

// deleteUserMessage удаляет сообщение пользователя (например, с паролем)
func (h *Handlers) deleteUserMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	if err != nil {
		h.logger.Debug("Failed to delete user message", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
	}
}

// commandArgs текст после команды: "/trainer 42" -> "42"
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	idx := strings.IndexAny(text, " \n\t")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+1:])
}

// optional превращает "-" в пустое значение
func optional(text string) string {
	text = strings.TrimSpace(text)
	if text == skipValue {
		return ""
	}
	return text
}
