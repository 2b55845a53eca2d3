package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ===== Вход =====

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.StartLogin(ctx, b, update.Message.Chat.ID)
}

// StartLogin начинает диалог входа
func (h *Handlers) StartLogin(ctx context.Context, b *bot.Bot, chatID int64) {
	if session := h.sessions.Get(chatID); session.IsAuthenticated {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"✅ You are already logged in as %s.\n\nUse /logout to switch accounts.", session.Email))
		return
	}

	h.stateManager.StartDialog(chatID, state.StateLoginEmail)
	h.sendMessage(ctx, b, chatID, "🔑 Log in\n\nStep 1 of 2: Enter your email:"+msgCancelHint)
}

func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	h.stateManager.SetData(chatID, state.KeyEmail, strings.TrimSpace(update.Message.Text))
	h.stateManager.SetState(chatID, state.StateLoginPassword)

	h.sendMessage(ctx, b, chatID, "Step 2 of 2: Enter your password:")
}

func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// Пароль не должен оставаться в истории чата
	h.deleteUserMessage(ctx, b, update.Message)

	creds := model.Credentials{
		Email:    h.stateManager.GetString(chatID, state.KeyEmail),
		Password: password,
	}

	session, err := h.auth.Login(ctx, chatID, creds)
	if err != nil {
		h.logger.Info("Login failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorText(err))

		// Начинаем заново с email
		h.stateManager.StartDialog(chatID, state.StateLoginEmail)
		h.sendMessage(ctx, b, chatID, "🔑 Enter your email:"+msgCancelHint)
		return
	}

	h.stateManager.ClearState(chatID)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Welcome back, %s!", session.Email))
	h.ShowDashboard(ctx, b, chatID)
}

// ===== Регистрация =====

// HandleRegister обрабатывает команду /register
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.stateManager.StartDialog(chatID, state.StateRegisterEmail)
	h.sendMessage(ctx, b, chatID, "📝 Create an account\n\nEnter your email:"+msgCancelHint)
}

func (h *Handlers) handleRegisterEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	h.stateManager.SetData(chatID, state.KeyEmail, strings.TrimSpace(update.Message.Text))
	h.stateManager.SetState(chatID, state.StateRegisterPassword)

	h.sendMessage(ctx, b, chatID, "🔒 Choose a password (at least 6 characters):")
}

func (h *Handlers) handleRegisterPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	h.deleteUserMessage(ctx, b, update.Message)

	h.stateManager.SetData(chatID, state.KeyPassword, update.Message.Text)
	h.stateManager.SetState(chatID, state.StateRegisterRole)

	h.sendHTML(ctx, b, chatID, "👤 Who are you?", common.RoleKeyboard())
}

// ChooseRegisterRole сохраняет роль из кнопки и переходит к имени
func (h *Handlers) ChooseRegisterRole(ctx context.Context, b *bot.Bot, chatID int64, role model.Role) {
	if h.stateManager.GetState(chatID) != state.StateRegisterRole {
		h.sendMessage(ctx, b, chatID, "⌛ This registration form has expired. Use /register to start again.")
		return
	}

	h.stateManager.SetData(chatID, state.KeyRole, string(role))
	h.stateManager.SetState(chatID, state.StateRegisterFirstName)

	h.sendMessage(ctx, b, chatID, "Enter your first name:")
}

func (h *Handlers) handleRegisterFirstNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	h.stateManager.SetData(chatID, state.KeyFirstName, strings.TrimSpace(update.Message.Text))
	h.stateManager.SetState(chatID, state.StateRegisterLastName)

	h.sendMessage(ctx, b, chatID, "Enter your last name:")
}

func (h *Handlers) handleRegisterLastNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	h.stateManager.SetData(chatID, state.KeyLastName, strings.TrimSpace(update.Message.Text))

	// Основной навык спрашиваем только у тренера
	if model.Role(h.stateManager.GetString(chatID, state.KeyRole)) == model.RoleTrainer {
		h.stateManager.SetState(chatID, state.StateRegisterMainSkill)
		h.sendMessage(ctx, b, chatID, "🏋️ What is your main skill? (e.g. Yoga, Boxing)")
		return
	}

	h.submitRegistration(ctx, b, chatID)
}

func (h *Handlers) handleRegisterMainSkillStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	h.stateManager.SetData(chatID, state.KeySkill, strings.TrimSpace(update.Message.Text))
	h.submitRegistration(ctx, b, chatID)
}

// submitRegistration отправляет форму. После успеха сессия не создаётся,
// пользователь переходит к диалогу входа
func (h *Handlers) submitRegistration(ctx context.Context, b *bot.Bot, chatID int64) {
	registration := model.Registration{
		Email:     h.stateManager.GetString(chatID, state.KeyEmail),
		Password:  h.stateManager.GetString(chatID, state.KeyPassword),
		Role:      model.Role(h.stateManager.GetString(chatID, state.KeyRole)),
		FirstName: h.stateManager.GetString(chatID, state.KeyFirstName),
		LastName:  h.stateManager.GetString(chatID, state.KeyLastName),
		MainSkill: h.stateManager.GetString(chatID, state.KeySkill),
	}

	message, err := h.auth.Register(ctx, registration)
	h.stateManager.ClearState(chatID)
	if err != nil {
		h.logger.Info("Registration failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorText(err)+"\n\nUse /register to try again.")
		return
	}

	text := "✅ Registration successful! You can now log in."
	if message = strings.TrimSpace(message); message != "" {
		text = "✅ " + message + "\n\n" + text
	}
	h.sendMessage(ctx, b, chatID, text)

	h.StartLogin(ctx, b, chatID)
}
