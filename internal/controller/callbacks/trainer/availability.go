package trainer

import (
	"context"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleAddSlot начинает диалог добавления слота
func HandleAddSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, model.RoleTrainer, func(hc *common.HandlerContext) {
		hc.Answer("")
		h.StartAddAvailability(ctx, b, hc.ChatID)
	})
}

// HandleDeleteSlot спрашивает подтверждение удаления
func HandleDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, model.RoleTrainer, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		hc.Answer("")
		text, kb := common.BuildDeleteSlotConfirm(slotID)
		if err := hc.SendMessage(text, kb); err != nil {
			h.Logger.Error("Failed to send delete confirmation", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		}
	})
}

// HandleConfirmDeleteSlot удаляет слот и перерисовывает кабинет
func HandleConfirmDeleteSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, model.RoleTrainer, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		if err := h.Dashboards.DeleteAvailability(ctx, hc.ChatID, slotID); err != nil {
			common.ReportError(hc, err)
			return
		}

		hc.Answer("🗑 Slot deleted")
		if err := hc.DeleteMessage(); err != nil {
			h.Logger.Debug("Failed to delete confirmation message", zap.Error(err))
		}
		h.ShowDashboard(ctx, b, hc.ChatID)
	})
}
