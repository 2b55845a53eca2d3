package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// StateManager данные диалогов чата, доступные из callbacks
type StateManager interface {
	ClearState(chatID int64)
	SetData(chatID int64, key string, value interface{})
	GetData(chatID int64, key string) (interface{}, bool)
}

// ChatAction действие контроллера, которое можно вызвать из callback
type ChatAction func(ctx context.Context, b *bot.Bot, chatID int64)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Sessions     *service.SessionStore
	Booking      *service.BookingFlow
	Dashboards   *service.DashboardService
	StateManager StateManager
	Location     *time.Location
	Logger       *zap.Logger

	// Функции-хэндлеры из основного контроллера
	ShowDashboard        ChatAction
	StartLogin           ChatAction
	StartAddAvailability ChatAction
	SendChart            ChatAction
	RunSearch            func(ctx context.Context, b *bot.Bot, chatID int64, verified bool)
	ChooseRegisterRole   func(ctx context.Context, b *bot.Bot, chatID int64, role model.Role)
	StartRateUpdate      func(ctx context.Context, b *bot.Bot, chatID int64, rateType model.RateType)
}
