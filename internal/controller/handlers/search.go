package handlers

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Максимум подсказок в ответе на inline запрос
const maxSuggestions = 20

// HandleSearch обрабатывает команду /search [навык].
// Навык из аргумента (или из inline подсказки) пропускает первый шаг
func (h *Handlers) HandleSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.stateManager.StartDialog(chatID, state.StateSearchSkill)

	if skill := commandArgs(update.Message.Text); skill != "" {
		h.saveSearchSkill(ctx, b, chatID, skill)
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.InlineQueryButton("💡 Suggest skills", "")).
		Build()
	h.sendHTML(ctx, b, chatID,
		"🔎 <b>Find a trainer</b>\n\nStep 1 of 3: Which skill are you looking for?\n"+
			"Send "+skipValue+" to search all skills.", kb)
}

func (h *Handlers) handleSearchSkillStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.saveSearchSkill(ctx, b, update.Message.Chat.ID, update.Message.Text)
}

func (h *Handlers) saveSearchSkill(ctx context.Context, b *bot.Bot, chatID int64, raw string) {
	skill := optional(raw)
	if utf8.RuneCountInString(skill) > SkillMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Skill is too long. Maximum %d characters.\n\nTry again:", SkillMaxLength))
		return
	}

	h.stateManager.SetData(chatID, state.KeySkill, skill)
	h.stateManager.SetState(chatID, state.StateSearchLocation)

	h.sendMessage(ctx, b, chatID, "📍 Step 2 of 3: Which city or area?\nSend "+skipValue+" to skip.")
}

func (h *Handlers) handleSearchLocationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID

	location := optional(update.Message.Text)
	if utf8.RuneCountInString(location) > LocationMaxLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Location is too long. Maximum %d characters.\n\nTry again:", LocationMaxLength))
		return
	}

	h.stateManager.SetData(chatID, state.KeyLocation, location)
	h.stateManager.SetState(chatID, state.StateSearchVerified)

	h.sendHTML(ctx, b, chatID, "✅ Step 3 of 3: Show only certified trainers?", common.SearchVerifiedKeyboard())
}

// RunSearch выполняет поиск по собранным фильтрам и показывает результаты
func (h *Handlers) RunSearch(ctx context.Context, b *bot.Bot, chatID int64, verified bool) {
	if h.stateManager.GetState(chatID) != state.StateSearchVerified {
		h.sendMessage(ctx, b, chatID, "⌛ This search has expired. Use /search to start again.")
		return
	}

	search := model.TrainerSearch{
		Skill:    h.stateManager.GetString(chatID, state.KeySkill),
		Location: h.stateManager.GetString(chatID, state.KeyLocation),
		Verified: verified,
	}
	h.stateManager.ClearState(chatID)

	trainers := h.search.Search(ctx, search)

	h.logger.Info("Trainer search",
		zap.Int64("chat_id", chatID),
		zap.String("skill", search.Skill),
		zap.String("location", search.Location),
		zap.Bool("verified", search.Verified),
		zap.Int("found", len(trainers)))

	text, kb := common.BuildSearchResults(trainers, search)
	h.sendHTML(ctx, b, chatID, text, kb)
}

// HandleInlineQuery подсказки навыков в inline режиме.
// Каждый новый ввод пользователя откладывает запрос, старый ответ не отправляется
func (h *Handlers) HandleInlineQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	query := update.InlineQuery
	if query == nil {
		return
	}

	h.search.Suggest(ctx, query.From.ID, query.Query, func(skills []model.Skill) {
		h.answerSuggestions(ctx, b, query.ID, skills)
	})
}

func (h *Handlers) answerSuggestions(ctx context.Context, b *bot.Bot, queryID string, skills []model.Skill) {
	if len(skills) > maxSuggestions {
		skills = skills[:maxSuggestions]
	}

	results := make([]models.InlineQueryResult, 0, len(skills))
	for i, skill := range skills {
		id := strconv.FormatInt(skill.ID, 10)
		if skill.ID == 0 {
			id = "s" + strconv.Itoa(i)
		}
		results = append(results, &models.InlineQueryResultArticle{
			ID:          id,
			Title:       skill.Name,
			Description: skill.Category,
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: "/search " + skill.Name,
			},
		})
	}

	_, err := b.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: queryID,
		Results:       results,
		CacheTime:     1,
		IsPersonal:    true,
	})
	if err != nil {
		// Устаревший запрос Telegram отклоняет, это не ошибка бота
		h.logger.Debug("Failed to answer inline query", zap.String("query_id", queryID), zap.Error(err))
	}
}
