package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"go.uber.org/zap"
)

// Форматы ввода времени в диалоге добавления слота
var availabilityLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02.01.2006 15:04",
}

// DashboardAPI вызовы кабинетов тренера и ученика
type DashboardAPI interface {
	GetTrainerDashboardData(ctx context.Context, token string) (*model.TrainerDashboard, error)
	GetTraineeDashboardData(ctx context.Context, token string) (*model.TraineeDashboard, error)
	GetTrainerProfile(ctx context.Context, token string) (*model.TrainerProfile, error)
	UpdateTrainerProfile(ctx context.Context, token string, update model.RateUpdate) (*model.TrainerProfile, error)
	AddAvailability(ctx context.Context, token string, trainerID int64, slot model.AvailabilityRequest) (*model.Slot, error)
	DeleteAvailability(ctx context.Context, token string, availabilityID int64) error
}

// TraineeView кабинет ученика с занятиями, разделёнными на момент отрисовки
type TraineeView struct {
	Dashboard *model.TraineeDashboard
	Upcoming  []model.Booking
	Past      []model.Booking
}

// DashboardService кабинеты с проверкой роли. Ответ 401 завершает сессию чата
type DashboardService struct {
	api      DashboardAPI
	sessions *SessionStore
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewDashboardService(dashboardAPI DashboardAPI, sessions *SessionStore, location *time.Location, logger *zap.Logger) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		api:      dashboardAPI,
		sessions: sessions,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// RequireRole охрана маршрута: нужен вход и нужная роль
func RequireRole(session model.Session, role model.Role) error {
	if !session.IsAuthenticated {
		return ErrLoginRequired
	}
	if session.Role != role {
		return ErrWrongRole
	}
	return nil
}

// DashboardRole решает, какой кабинет показать по /dashboard
func DashboardRole(session model.Session) (model.Role, error) {
	if !session.IsAuthenticated {
		return model.RoleNone, ErrLoginRequired
	}
	switch session.Role {
	case model.RoleTrainer, model.RoleTrainee:
		return session.Role, nil
	default:
		return model.RoleNone, ErrWrongRole
	}
}

// TrainerDashboard загружает кабинет тренера целиком
func (s *DashboardService) TrainerDashboard(ctx context.Context, chatID int64) (*model.TrainerDashboard, error) {
	session, err := s.require(chatID, model.RoleTrainer)
	if err != nil {
		return nil, err
	}

	data, err := s.api.GetTrainerDashboardData(ctx, session.Token)
	if err != nil {
		return nil, s.handleAPIError(ctx, chatID, err)
	}
	return data, nil
}

// TraineeDashboard загружает кабинет ученика и делит занятия на предстоящие и прошедшие
func (s *DashboardService) TraineeDashboard(ctx context.Context, chatID int64) (*TraineeView, error) {
	session, err := s.require(chatID, model.RoleTrainee)
	if err != nil {
		return nil, err
	}

	data, err := s.api.GetTraineeDashboardData(ctx, session.Token)
	if err != nil {
		return nil, s.handleAPIError(ctx, chatID, err)
	}

	upcoming, past := model.SplitSessions(data.Sessions, s.now())
	return &TraineeView{Dashboard: data, Upcoming: upcoming, Past: past}, nil
}

// ParseAvailabilityTime разбирает время из диалога в часовом поясе бота
func (s *DashboardService) ParseAvailabilityTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrMissingTimes
	}
	for _, layout := range availabilityLayouts {
		if t, err := time.ParseInLocation(layout, raw, s.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}

// AddAvailability добавляет слот. Оба времени обязательны, конец позже начала;
// при нарушении запрос не отправляется
func (s *DashboardService) AddAvailability(ctx context.Context, chatID int64, startRaw, endRaw string) (*model.Slot, error) {
	session, err := s.require(chatID, model.RoleTrainer)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(startRaw) == "" || strings.TrimSpace(endRaw) == "" {
		return nil, ErrMissingTimes
	}
	start, err := s.ParseAvailabilityTime(startRaw)
	if err != nil {
		return nil, err
	}
	end, err := s.ParseAvailabilityTime(endRaw)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	// Слот привязывается к профилю тренера, а не к userId
	profile, err := s.api.GetTrainerProfile(ctx, session.Token)
	if err != nil {
		return nil, s.handleAPIError(ctx, chatID, err)
	}

	slot, err := s.api.AddAvailability(ctx, session.Token, profile.ID, model.AvailabilityRequest{
		StartTime: model.NewTimestamp(start),
		EndTime:   model.NewTimestamp(end),
	})
	if err != nil {
		return nil, s.handleAPIError(ctx, chatID, err)
	}

	s.logger.Info("Availability added",
		zap.Int64("chat_id", chatID),
		zap.Int64("trainer_id", profile.ID),
		zap.Int64("slot_id", slot.ID),
		zap.Time("start", start))

	return slot, nil
}

// DeleteAvailability удаляет свободный слот тренера
func (s *DashboardService) DeleteAvailability(ctx context.Context, chatID, availabilityID int64) error {
	session, err := s.require(chatID, model.RoleTrainer)
	if err != nil {
		return err
	}

	if err := s.api.DeleteAvailability(ctx, session.Token, availabilityID); err != nil {
		return s.handleAPIError(ctx, chatID, err)
	}

	s.logger.Info("Availability deleted", zap.Int64("chat_id", chatID), zap.Int64("slot_id", availabilityID))
	return nil
}

// UpdateRates меняет тарифы. Нужен хотя бы один тариф;
// незаполненный берётся из текущего профиля
func (s *DashboardService) UpdateRates(ctx context.Context, chatID int64, hourlyRaw, dailyRaw string, rateType model.RateType) (*model.TrainerProfile, error) {
	session, err := s.require(chatID, model.RoleTrainer)
	if err != nil {
		return nil, err
	}

	hourlyRaw, dailyRaw = strings.TrimSpace(hourlyRaw), strings.TrimSpace(dailyRaw)
	if hourlyRaw == "" && dailyRaw == "" {
		return nil, ErrMissingRate
	}
	for _, raw := range []string{hourlyRaw, dailyRaw} {
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidRate
		}
	}
	if rateType != model.RateTypeDay {
		rateType = model.RateTypeHour
	}

	if hourlyRaw == "" || dailyRaw == "" {
		profile, err := s.api.GetTrainerProfile(ctx, session.Token)
		if err != nil {
			return nil, s.handleAPIError(ctx, chatID, err)
		}
		if hourlyRaw == "" {
			hourlyRaw = strconv.FormatFloat(profile.HourlyRate, 'f', -1, 64)
		}
		if dailyRaw == "" {
			dailyRaw = strconv.FormatFloat(profile.DailyRateOrZero(), 'f', -1, 64)
		}
	}

	profile, err := s.api.UpdateTrainerProfile(ctx, session.Token, model.RateUpdate{
		HourlyRate: hourlyRaw,
		DailyRate:  dailyRaw,
		RateType:   rateType,
	})
	if err != nil {
		return nil, s.handleAPIError(ctx, chatID, err)
	}

	s.logger.Info("Rates updated",
		zap.Int64("chat_id", chatID),
		zap.String("hourly", hourlyRaw),
		zap.String("daily", dailyRaw),
		zap.String("rate_type", string(rateType)))

	return profile, nil
}

func (s *DashboardService) require(chatID int64, role model.Role) (model.Session, error) {
	session := s.sessions.Get(chatID)
	if err := RequireRole(session, role); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// handleAPIError на 401 выходит из сессии и возвращает ErrSessionExpired
func (s *DashboardService) handleAPIError(ctx context.Context, chatID int64, err error) error {
	if !api.IsUnauthorized(err) {
		return err
	}

	s.logger.Warn("Session rejected by backend, logging out", zap.Int64("chat_id", chatID), zap.Error(err))
	if logoutErr := s.sessions.Logout(ctx, chatID); logoutErr != nil {
		s.logger.Error("Failed to remove expired session", zap.Int64("chat_id", chatID), zap.Error(logoutErr))
	}
	return errors.Join(ErrSessionExpired, err)
}
