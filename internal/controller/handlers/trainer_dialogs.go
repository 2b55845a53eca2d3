package handlers

import (
	"context"
	"errors"
	"fmt"

	cmdfmt "github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const timeFormatHint = "Format: 2025-01-31 18:00"

// ===== Добавление слота =====

// StartAddAvailability начинает диалог добавления слота
func (h *Handlers) StartAddAvailability(ctx context.Context, b *bot.Bot, chatID int64) {
	if _, ok := h.requireRole(ctx, b, chatID, model.RoleTrainer); !ok {
		return
	}

	h.stateManager.StartDialog(chatID, state.StateAddAvailabilityStart)
	h.sendMessage(ctx, b, chatID, "➕ New availability slot\n\nStep 1 of 2: When does it start?\n"+timeFormatHint+msgCancelHint)
}

func (h *Handlers) handleAvailabilityStartStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	start, err := h.dashboards.ParseAvailabilityTime(update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, chatID, service.ErrorText(err)+"\n\nTry again:")
		return
	}

	h.stateManager.SetData(chatID, state.KeyStart, update.Message.Text)
	h.stateManager.SetState(chatID, state.StateAddAvailabilityEnd)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"Step 2 of 2: When does it end?\nStart: %s\n%s",
		cmdfmt.FormatDateTime(start, h.location), timeFormatHint))
}

func (h *Handlers) handleAvailabilityEndStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	startRaw := h.stateManager.GetString(chatID, state.KeyStart)

	slot, err := h.dashboards.AddAvailability(ctx, chatID, startRaw, update.Message.Text)
	if err != nil {
		// Ошибку ввода можно исправить, оставаясь на шаге
		if errors.Is(err, service.ErrInvalidTime) || errors.Is(err, service.ErrInvalidRange) || errors.Is(err, service.ErrMissingTimes) {
			h.sendError(ctx, b, chatID, service.ErrorText(err)+"\n\nSend the end time again:")
			return
		}
		h.stateManager.ClearState(chatID)
		h.reportError(ctx, b, chatID, err)
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "✅ Availability added: "+cmdfmt.FormatTimeRange(slot.StartTime, slot.EndTime, h.location))
	h.showTrainerDashboard(ctx, b, chatID)
}

// ===== Тарифы =====

// StartRateUpdate начинает ввод тарифов выбранной единицы
func (h *Handlers) StartRateUpdate(ctx context.Context, b *bot.Bot, chatID int64, rateType model.RateType) {
	if _, ok := h.requireRole(ctx, b, chatID, model.RoleTrainer); !ok {
		return
	}

	h.stateManager.StartDialog(chatID, state.StateRateHourly)
	h.stateManager.SetData(chatID, state.KeyRateType, string(rateType))

	h.sendMessage(ctx, b, chatID,
		"💰 Step 1 of 2: Hourly rate in ₹\nSend "+skipValue+" to keep the current one."+msgCancelHint)
}

func (h *Handlers) handleRateHourlyStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	h.stateManager.SetData(chatID, state.KeyHourly, optional(update.Message.Text))
	h.stateManager.SetState(chatID, state.StateRateDaily)

	h.sendMessage(ctx, b, chatID, "💰 Step 2 of 2: Daily rate in ₹\nSend "+skipValue+" to keep the current one.")
}

func (h *Handlers) handleRateDailyStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	hourly := h.stateManager.GetString(chatID, state.KeyHourly)
	rateType := model.RateType(h.stateManager.GetString(chatID, state.KeyRateType))
	h.stateManager.ClearState(chatID)

	profile, err := h.dashboards.UpdateRates(ctx, chatID, hourly, optional(update.Message.Text), rateType)
	if err != nil {
		if errors.Is(err, service.ErrMissingRate) || errors.Is(err, service.ErrInvalidRate) {
			h.sendError(ctx, b, chatID, service.ErrorText(err)+"\n\nUse the dashboard button to try again.")
			return
		}
		h.reportError(ctx, b, chatID, err)
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Rates updated: "+cmdfmt.FormatRates(profile))
	h.showTrainerDashboard(ctx, b, chatID)
}
