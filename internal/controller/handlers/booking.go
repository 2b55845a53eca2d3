package handlers

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTrainer обрабатывает команду /trainer <id>: открывает страницу бронирования
func (h *Handlers) HandleTrainer(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	trainerID, err := strconv.ParseInt(commandArgs(update.Message.Text), 10, 64)
	if err != nil || trainerID <= 0 {
		h.sendError(ctx, b, chatID, "❌ Usage: /trainer <id>\n\nFind trainers with /search.")
		return
	}

	h.OpenBookingPage(ctx, b, chatID, trainerID)
}

// OpenBookingPage загружает профиль и слоты тренера и показывает первую страницу
func (h *Handlers) OpenBookingPage(ctx context.Context, b *bot.Bot, chatID, trainerID int64) {
	page := h.booking.Open(ctx, chatID, trainerID)
	h.stateManager.SetData(chatID, common.KeySlotsPage, 0)

	view := page.View()
	h.logger.Info("Booking page opened",
		zap.Int64("chat_id", chatID),
		zap.Int64("trainer_id", trainerID),
		zap.String("state", view.State.String()),
		zap.Int("slots", len(view.Slots)))

	text, kb := common.BuildBookingScreen(view, 0, h.location)
	h.sendHTML(ctx, b, chatID, text, kb)
}
