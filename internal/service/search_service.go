package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/debounce"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"go.uber.org/zap"
)

// SearchAPI поиск тренеров и подсказки навыков. Обе функции молча деградируют до пустого списка
type SearchAPI interface {
	SearchTrainers(ctx context.Context, search model.TrainerSearch) []model.TrainerProfile
	SuggestSkills(ctx context.Context, q string) []model.Skill
}

// SearchService поиск тренеров и отложенные подсказки навыков для каждого пользователя
type SearchService struct {
	api       SearchAPI
	debouncer *debounce.Group
	logger    *zap.Logger
}

func NewSearchService(searchAPI SearchAPI, debounceDelay time.Duration, logger *zap.Logger) *SearchService {
	return &SearchService{
		api:       searchAPI,
		debouncer: debounce.NewGroup(debounceDelay),
		logger:    logger,
	}
}

// Search ищет тренеров по навыку, городу и флагу верификации
func (s *SearchService) Search(ctx context.Context, search model.TrainerSearch) []model.TrainerProfile {
	search.Skill = strings.TrimSpace(search.Skill)
	search.Location = strings.TrimSpace(search.Location)

	trainers := s.api.SearchTrainers(ctx, search)

	s.logger.Debug("Trainers search",
		zap.String("skill", search.Skill),
		zap.String("location", search.Location),
		zap.Bool("verified", search.Verified),
		zap.Int("found", len(trainers)))

	return trainers
}

// Suggest планирует подсказку для пользователя. Каждый новый ввод отменяет
// ожидающий запрос; короткий ввод сразу отдаёт пустой ответ без запроса.
// deliver вызывается ровно для последнего ввода, если его не сменил следующий
func (s *SearchService) Suggest(ctx context.Context, userID int64, query string, deliver func([]model.Skill)) {
	query = strings.TrimSpace(query)

	if utf8.RuneCountInString(query) < api.MinSuggestQueryLength {
		s.debouncer.Cancel(userID)
		deliver(nil)
		return
	}

	s.debouncer.Trigger(userID, func() {
		deliver(s.api.SuggestSkills(ctx, query))
	})
}

// Stop отменяет все ожидающие подсказки (при остановке бота)
func (s *SearchService) Stop() {
	s.debouncer.Stop()
}
