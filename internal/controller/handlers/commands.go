package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	session := h.sessions.Get(chatID)

	status := "You are not logged in. Use /login or /register."
	if session.IsAuthenticated {
		status = fmt.Sprintf("You are logged in as %s (%s). Open /dashboard.", session.Email, session.Role)
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"Welcome to SkillLink: find a trainer and book a session.\n\n"+
			"%s\n\n"+
			"/search - Find trainers by skill\n"+
			"/help - All commands",
		update.Message.From.FirstName,
		status,
	)

	h.sendMessage(ctx, b, chatID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Commands:\n\n" +
		"/search [skill] - Find trainers\n" +
		"/trainer <id> - Open a trainer's booking page\n" +
		"/login - Log in\n" +
		"/register - Create an account\n" +
		"/logout - Log out\n" +
		"/dashboard - Your dashboard\n" +
		"/cancel - Abort the current dialog\n\n" +
		"💡 Type @" + botUsername(ctx, b) + " <skill> in any chat to get skill suggestions."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if h.stateManager.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "❌ Nothing to cancel.")
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "✅ Cancelled.\n\nUse /help to see the available commands.")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.stateManager.ClearState(chatID)
	h.booking.Close(chatID)

	if err := h.auth.Logout(ctx, chatID); err != nil {
		// Сессия в памяти уже очищена, не удалось только хранилище
		h.logger.Error("Failed to remove stored session", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	h.sendMessage(ctx, b, chatID, "👋 You have been logged out.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	currentState := h.stateManager.GetState(chatID)

	h.logger.Debug("Text message",
		zap.Int64("chat_id", chatID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, chatID, "🤔 I don't understand. Use /help to see the available commands.")

	// Вход
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)

	// Регистрация
	case state.StateRegisterEmail:
		h.handleRegisterEmailStep(ctx, b, update)
	case state.StateRegisterPassword:
		h.handleRegisterPasswordStep(ctx, b, update)
	case state.StateRegisterRole:
		h.sendMessage(ctx, b, chatID, "👆 Please choose a role with the buttons above.")
	case state.StateRegisterFirstName:
		h.handleRegisterFirstNameStep(ctx, b, update)
	case state.StateRegisterLastName:
		h.handleRegisterLastNameStep(ctx, b, update)
	case state.StateRegisterMainSkill:
		h.handleRegisterMainSkillStep(ctx, b, update)

	// Поиск
	case state.StateSearchSkill:
		h.handleSearchSkillStep(ctx, b, update)
	case state.StateSearchLocation:
		h.handleSearchLocationStep(ctx, b, update)
	case state.StateSearchVerified:
		h.sendMessage(ctx, b, chatID, "👆 Please choose a filter with the buttons above.")

	// Кабинет тренера
	case state.StateAddAvailabilityStart:
		h.handleAvailabilityStartStep(ctx, b, update)
	case state.StateAddAvailabilityEnd:
		h.handleAvailabilityEndStep(ctx, b, update)
	case state.StateRateHourly:
		h.handleRateHourlyStep(ctx, b, update)
	case state.StateRateDaily:
		h.handleRateDailyStep(ctx, b, update)

	default:
		h.logger.Warn("Unknown dialog state", zap.Int64("chat_id", chatID), zap.String("state", string(currentState)))
		h.stateManager.ClearState(chatID)
	}
}

// botUsername имя бота для подсказки об inline режиме
func botUsername(ctx context.Context, b *bot.Bot) string {
	me, err := b.GetMe(ctx)
	if err != nil || me.Username == "" {
		return "bot"
	}
	return me.Username
}
