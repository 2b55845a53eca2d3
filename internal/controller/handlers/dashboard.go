package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDashboard обрабатывает команду /dashboard: кабинет выбирается по роли
func (h *Handlers) HandleDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}
	h.ShowDashboard(ctx, b, update.Message.Chat.ID)
}

// HandleTrainerDashboard обрабатывает команду /trainer_dashboard
func (h *Handlers) HandleTrainerDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if _, ok := h.requireRole(ctx, b, chatID, model.RoleTrainer); !ok {
		return
	}
	h.showTrainerDashboard(ctx, b, chatID)
}

// HandleTraineeDashboard обрабатывает команду /trainee_dashboard
func (h *Handlers) HandleTraineeDashboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if _, ok := h.requireRole(ctx, b, chatID, model.RoleTrainee); !ok {
		return
	}
	h.showTraineeDashboard(ctx, b, chatID)
}

// ShowDashboard показывает кабинет по роли текущей сессии
func (h *Handlers) ShowDashboard(ctx context.Context, b *bot.Bot, chatID int64) {
	role, err := service.DashboardRole(h.sessions.Get(chatID))
	if err != nil {
		h.reportError(ctx, b, chatID, err)
		return
	}

	switch role {
	case model.RoleTrainer:
		h.showTrainerDashboard(ctx, b, chatID)
	default:
		h.showTraineeDashboard(ctx, b, chatID)
	}
}

func (h *Handlers) showTrainerDashboard(ctx context.Context, b *bot.Bot, chatID int64) {
	data, err := h.dashboards.TrainerDashboard(ctx, chatID)
	if err != nil {
		h.reportError(ctx, b, chatID, err)
		return
	}

	text, kb := common.BuildTrainerDashboard(data, h.sessions.Get(chatID), h.location)
	h.sendHTML(ctx, b, chatID, text, kb)
}

func (h *Handlers) showTraineeDashboard(ctx context.Context, b *bot.Bot, chatID int64) {
	view, err := h.dashboards.TraineeDashboard(ctx, chatID)
	if err != nil {
		h.reportError(ctx, b, chatID, err)
		return
	}

	text, kb := common.BuildTraineeDashboard(view, h.sessions.Get(chatID), h.location)
	h.sendHTML(ctx, b, chatID, text, kb)
}

// SendChart рисует помесячный график: заработок тренера или траты ученика
func (h *Handlers) SendChart(ctx context.Context, b *bot.Bot, chatID int64) {
	role, err := service.DashboardRole(h.sessions.Get(chatID))
	if err != nil {
		h.reportError(ctx, b, chatID, err)
		return
	}

	var (
		title  string
		points []model.MonthlyPoint
	)
	switch role {
	case model.RoleTrainer:
		data, err := h.dashboards.TrainerDashboard(ctx, chatID)
		if err != nil {
			h.reportError(ctx, b, chatID, err)
			return
		}
		title, points = "Monthly earnings", data.MonthlyEarnings.Points()
	default:
		view, err := h.dashboards.TraineeDashboard(ctx, chatID)
		if err != nil {
			h.reportError(ctx, b, chatID, err)
			return
		}
		title, points = "Monthly spending", view.Dashboard.MonthlySpending.Points()
	}

	if len(points) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 No monthly data yet.")
		return
	}

	img, err := common.GenerateMonthlyChart(title, points)
	if err != nil {
		h.logger.Error("Failed to generate chart", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Could not draw the chart. Please try again.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "chart.png", Data: bytes.NewReader(img)},
		Caption: fmt.Sprintf("📈 %s (%d months)", title, len(points)),
	})
	if err != nil {
		h.logger.Error("Failed to send chart", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
