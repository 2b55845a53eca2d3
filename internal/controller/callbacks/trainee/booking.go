package trainee

import (
	"context"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleViewTrainer открывает страницу бронирования тренера из результатов поиска
func HandleViewTrainer(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		trainerID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		hc.Answer("⏳ Loading…")
		page := h.Booking.Open(ctx, hc.ChatID, trainerID)
		hc.SetData(common.KeySlotsPage, 0)

		text, kb := common.BuildBookingScreen(page.View(), 0, h.Location)
		if err := hc.SendMessage(text, kb); err != nil {
			h.Logger.Error("Failed to send booking page", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		}
	})
}

// HandleRefreshSlots перезагружает профиль и слоты открытой страницы
func HandleRefreshSlots(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		trainerID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		page := h.Booking.Open(ctx, hc.ChatID, trainerID)
		hc.SetData(common.KeySlotsPage, 0)

		hc.Answer("🔄 Updated")
		renderPage(hc, page, 0)
	})
}

// HandleSlotsPage листает слоты без перезагрузки
func HandleSlotsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		pageNum, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		page, ok := h.Booking.Page(hc.ChatID)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoBookingPage))
			return
		}

		hc.SetData(common.KeySlotsPage, int(pageNum))
		hc.Answer("")
		renderPage(hc, page, int(pageNum))
	})
}

// HandleBookSlot бронирует слот с открытой страницы.
// Итог показывается во всплывающем окне, страница перерисовывается из кэша
func HandleBookSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		slotID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		page, ok := h.Booking.Page(hc.ChatID)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoBookingPage))
			return
		}

		result := page.Submit(ctx, hc.Session, slotID)

		h.Logger.Info("Booking attempt",
			zap.Int64("chat_id", hc.ChatID),
			zap.Int64("trainer_id", page.TrainerID()),
			zap.Int64("slot_id", slotID),
			zap.String("outcome", result.Outcome.String()))

		hc.AnswerAlert(result.Message)

		switch result.Outcome {
		case service.OutcomeLoginRequired:
			common.RedirectToLogin(hc)
		case service.OutcomeBooked:
			current := currentPage(hc)
			renderPage(hc, page, current)
		}
	})
}

func currentPage(hc *common.HandlerContext) int {
	value, ok := hc.Handler.StateManager.GetData(hc.ChatID, common.KeySlotsPage)
	if !ok {
		return 0
	}
	n, _ := value.(int)
	return n
}

func renderPage(hc *common.HandlerContext, page *service.BookingPage, pageNum int) {
	text, kb := common.BuildBookingScreen(page.View(), pageNum, hc.Handler.Location)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render booking page", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	}
}
