package handlers

import (
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	sessions     *service.SessionStore
	auth         *service.AuthService
	search       *service.SearchService
	booking      *service.BookingFlow
	dashboards   *service.DashboardService
	stateManager *state.Manager
	location     *time.Location
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	sessions *service.SessionStore,
	auth *service.AuthService,
	search *service.SearchService,
	booking *service.BookingFlow,
	dashboards *service.DashboardService,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sessions:     sessions,
		auth:         auth,
		search:       search,
		booking:      booking,
		dashboards:   dashboards,
		stateManager: stateManager,
		location:     location,
		logger:       logger,
	}
}
