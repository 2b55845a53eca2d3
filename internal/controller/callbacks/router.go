package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/trainee"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/trainer"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Common Navigation =====
	case data == common.CbNoop:
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == common.CbDashboard:
		common.HandleShowDashboard(ctx, b, callback, h)
	case data == common.CbToLogin:
		common.HandleToLogin(ctx, b, callback, h)
	case data == common.CbShowChart:
		common.HandleShowChart(ctx, b, callback, h)

	// ===== Auth & Search dialogs =====
	case strings.HasPrefix(data, common.CbRegisterRole):
		common.HandleRegisterRole(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CbSearchRun):
		common.HandleSearchRun(ctx, b, callback, h)

	// ===== Booking page =====
	case strings.HasPrefix(data, common.CbViewTrainer):
		trainee.HandleViewTrainer(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CbBookSlot):
		trainee.HandleBookSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CbSlotsPage):
		trainee.HandleSlotsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CbRefreshSlots):
		trainee.HandleRefreshSlots(ctx, b, callback, h)

	// ===== Trainer dashboard =====
	case data == common.CbAddSlot:
		trainer.HandleAddSlot(ctx, b, callback, h)
	// del_slot_confirm: проверяется раньше del_slot:, у них общий префикс "del_slot"
	case strings.HasPrefix(data, common.CbConfirmDelete):
		trainer.HandleConfirmDeleteSlot(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CbDeleteSlot):
		trainer.HandleDeleteSlot(ctx, b, callback, h)
	case data == common.CbUpdateRates:
		trainer.HandleUpdateRates(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CbRateType):
		trainer.HandleRateType(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Unknown action")
	}
}
