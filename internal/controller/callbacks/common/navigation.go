package common

import (
	"context"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Общие переходы, доступные с любого экрана

// HandleShowDashboard перерисовывает кабинет по роли
func HandleShowDashboard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Answer("")
		hc.ClearState()
		h.ShowDashboard(ctx, b, hc.ChatID)
	})
}

// HandleToLogin начинает диалог входа
func HandleToLogin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Answer("")
		h.StartLogin(ctx, b, hc.ChatID)
	})
}

// HandleShowChart отправляет график заработка или трат
func HandleShowChart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.Answer("📈 Drawing chart…")
		h.SendChart(ctx, b, hc.ChatID)
	})
}

// HandleRegisterRole выбор роли в диалоге регистрации
func HandleRegisterRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		raw, ok := ParseValueFromCallback(callback.Data, CbRegisterRole)
		role := model.ParseRole(raw)
		if !ok || role == model.RoleNone {
			hc.AnswerAlert(ErrorMessage(ErrInvalidFormat))
			return
		}

		hc.Answer("")
		if err := hc.EditMessage("✅ Role: "+string(role), nil); err != nil {
			h.Logger.Debug("Failed to edit role message", zap.Error(err))
		}
		h.ChooseRegisterRole(ctx, b, hc.ChatID, role)
	})
}

// HandleSearchRun запускает поиск с фильтром верификации
func HandleSearchRun(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		raw, ok := ParseValueFromCallback(callback.Data, CbSearchRun)
		if !ok {
			hc.AnswerAlert(ErrorMessage(ErrInvalidFormat))
			return
		}

		hc.Answer("🔎 Searching…")
		if err := hc.DeleteMessage(); err != nil {
			h.Logger.Debug("Failed to delete search prompt", zap.Error(err))
		}
		h.RunSearch(ctx, b, hc.ChatID, raw == "1")
	})
}
