package controller

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/handlers"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services сервисы, с которыми работает бот
type Services struct {
	Sessions   *service.SessionStore
	Auth       *service.AuthService
	Search     *service.SearchService
	Booking    *service.BookingFlow
	Dashboards *service.DashboardService
}

type BotController struct {
	bot             *bot.Bot
	services        Services
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger

	baseCtx     context.Context
	unsubscribe func()
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		services.Sessions,
		services.Auth,
		services.Search,
		services.Booking,
		services.Dashboards,
		stateManager,
		location,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(&callbacktypes.Handler{
		Sessions:     services.Sessions,
		Booking:      services.Booking,
		Dashboards:   services.Dashboards,
		StateManager: state.NewAdapter(stateManager),
		Location:     location,
		Logger:       logger,

		ShowDashboard:        cmdHandlers.ShowDashboard,
		StartLogin:           cmdHandlers.StartLogin,
		StartAddAvailability: cmdHandlers.StartAddAvailability,
		SendChart:            cmdHandlers.SendChart,
		RunSearch:            cmdHandlers.RunSearch,
		ChooseRegisterRole:   cmdHandlers.ChooseRegisterRole,
		StartRateUpdate:      cmdHandlers.StartRateUpdate,
	})

	return &BotController{
		bot:             botInstance,
		services:        services,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
		baseCtx:         context.Background(),
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.baseCtx = ctx

	// Команды сравниваются целиком: /trainer не должен ловить /trainer_dashboard
	c.command("start", c.handlers.HandleStart)
	c.command("help", c.handlers.HandleHelp)
	c.command("cancel", c.handlers.HandleCancel)

	// Вход и регистрация
	c.command("login", c.handlers.HandleLogin)
	c.command("register", c.handlers.HandleRegister)
	c.command("logout", c.handlers.HandleLogout)

	// Поиск и бронирование
	c.command("search", c.handlers.HandleSearch)
	c.command("trainer", c.handlers.HandleTrainer)

	// Кабинеты
	c.command("dashboard", c.handlers.HandleDashboard)
	c.command("trainer_dashboard", c.handlers.HandleTrainerDashboard)
	c.command("trainee_dashboard", c.handlers.HandleTraineeDashboard)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandlerMatchFunc(isDialogText, c.handlers.HandleTextMessage)

	// Подсказки навыков в inline режиме
	c.bot.RegisterHandlerMatchFunc(isInlineQuery, c.handlers.HandleInlineQuery)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Меню команд чата меняется при входе и выходе
	c.unsubscribe = c.services.Sessions.Subscribe(c.onSessionChange)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

func (c *BotController) command(name string, handler bot.HandlerFunc) {
	c.bot.RegisterHandlerMatchFunc(matchCommand(name), handler)
}

// matchCommand совпадает с "/name", "/name args" и "/name@bot args"
func matchCommand(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		fields := strings.Fields(update.Message.Text)
		if len(fields) == 0 {
			return false
		}
		cmd, _, _ := strings.Cut(fields[0], "@")
		return cmd == "/"+name
	}
}

func isDialogText(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/")
}

func isInlineQuery(update *models.Update) bool {
	return update.InlineQuery != nil
}

// commandsFor меню команд для роли; без роли - общее меню
func commandsFor(role model.Role) []models.BotCommand {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start"},
		{Command: "search", Description: "🔎 Find trainers"},
		{Command: "help", Description: "❓ Help"},
	}

	switch role {
	case model.RoleTrainer:
		commands = append(commands,
			models.BotCommand{Command: "dashboard", Description: "📊 Trainer dashboard"},
			models.BotCommand{Command: "logout", Description: "👋 Log out"},
		)
	case model.RoleTrainee:
		commands = append(commands,
			models.BotCommand{Command: "dashboard", Description: "📊 My sessions"},
			models.BotCommand{Command: "logout", Description: "👋 Log out"},
		)
	default:
		commands = append(commands,
			models.BotCommand{Command: "login", Description: "🔑 Log in"},
			models.BotCommand{Command: "register", Description: "📝 Create an account"},
		)
	}

	return append(commands, models.BotCommand{Command: "cancel", Description: "✖️ Cancel dialog"})
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commandsFor(model.RoleNone),
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// onSessionChange обновляет меню команд конкретного чата
func (c *BotController) onSessionChange(chatID int64, session model.Session) {
	role := model.RoleNone
	if session.IsAuthenticated {
		role = session.Role
	}

	go func() {
		_, err := c.bot.SetMyCommands(c.baseCtx, &bot.SetMyCommandsParams{
			Commands: commandsFor(role),
			Scope:    &models.BotCommandScopeChat{ChatID: chatID},
		})
		if err != nil {
			c.logger.Warn("Failed to set chat commands", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}()
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// Stop отписывается от сессий и отменяет ожидающие подсказки
func (c *BotController) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.services.Search.Stop()
	c.logger.Info("Bot stopped")
}
