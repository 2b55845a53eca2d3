package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"go.uber.org/zap"
)

// MinSuggestQueryLength минимальная длина запроса для подсказок
const MinSuggestQueryLength = 2

// SearchTrainers ищет тренеров. Любая ошибка даёт пустой список:
// поиск не должен заметно падать
func (c *Client) SearchTrainers(ctx context.Context, search model.TrainerSearch) []model.TrainerProfile {
	query := url.Values{}
	query.Set("skill", search.Skill)
	query.Set("location", search.Location)
	query.Set("verified", strconv.FormatBool(search.Verified))

	var trainers []model.TrainerProfile
	err := c.do(ctx, request{method: http.MethodGet, path: "search/trainers", query: query}, &trainers)
	if err != nil {
		c.logger.Warn("Error fetching trainers", zap.String("skill", search.Skill), zap.Error(err))
		return []model.TrainerProfile{}
	}
	if trainers == nil {
		return []model.TrainerProfile{}
	}
	return trainers
}

// SuggestSkills возвращает подсказки навыков. Короткие запросы не уходят в сеть,
// ошибки дают пустой список
func (c *Client) SuggestSkills(ctx context.Context, q string) []model.Skill {
	if len([]rune(q)) < MinSuggestQueryLength {
		return []model.Skill{}
	}

	query := url.Values{}
	query.Set("query", q)

	var skills []model.Skill
	err := c.do(ctx, request{method: http.MethodGet, path: "search/skills/suggest", query: query}, &skills)
	if err != nil {
		c.logger.Warn("Error fetching suggestions", zap.String("query", q), zap.Error(err))
		return []model.Skill{}
	}
	if skills == nil {
		return []model.Skill{}
	}
	return skills
}

// GetTrainer получает профиль тренера по ID.
// Пустое тело или null означают, что тренера нет: nil без ошибки
func (c *Client) GetTrainer(ctx context.Context, trainerID int64) (*model.TrainerProfile, error) {
	var profile *model.TrainerProfile
	err := c.do(ctx, request{method: http.MethodGet, path: idPath("search/trainers/%d", trainerID)}, &profile)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.ID == 0 {
		return nil, nil
	}
	return profile, nil
}
