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

// HandleUpdateRates показывает выбор единицы тарифа
func HandleUpdateRates(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, model.RoleTrainer, func(hc *common.HandlerContext) {
		hc.Answer("")
		if err := hc.SendMessage("💱 <b>Update your rates</b>\n\nChoose the rate type:", common.RateTypeKeyboard()); err != nil {
			h.Logger.Error("Failed to send rate type keyboard", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		}
	})
}

// HandleRateType запоминает единицу тарифа и переходит к вводу сумм
func HandleRateType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, model.RoleTrainer, func(hc *common.HandlerContext) {
		raw, ok := common.ParseValueFromCallback(callback.Data, common.CbRateType)
		rateType := model.RateType(raw)
		if !ok || (rateType != model.RateTypeHour && rateType != model.RateTypeDay) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("💱 Rate type: "+string(rateType), nil); err != nil {
			h.Logger.Debug("Failed to edit rate type message", zap.Error(err))
		}
		h.StartRateUpdate(ctx, b, hc.ChatID, rateType)
	})
}
