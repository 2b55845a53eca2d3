package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthAPI вход на бэкенде
type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
}

// fieldMessages тексты ошибок полей формы (Field.Tag или Field для любого тега)
var fieldMessages = map[string]string{
	"Email.required":    "Email is required",
	"Email.email":       "Email must be valid",
	"Password.required": "Password is required",
	"Password.min":      "Password must be at least 6 characters",
	"Role":              "Role is required (TRAINER/TRAINEE)",
	"FirstName":         "First name is required",
	"LastName":          "Last name is required",
	"MainSkill":         "Main skill is required for trainers",
}

// AuthService регистрация и вход поверх хранилища сессий
type AuthService struct {
	api      AuthAPI
	sessions *SessionStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthService(authAPI AuthAPI, sessions *SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      authAPI,
		sessions: sessions,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register проверяет форму и регистрирует пользователя.
// Сессия не создаётся: после успеха пользователь входит отдельно
func (s *AuthService) Register(ctx context.Context, registration model.Registration) (string, error) {
	registration = normalizeRegistration(registration)

	if err := s.check(registration); err != nil {
		return "", err
	}

	message, err := s.sessions.Register(ctx, registration)
	if err != nil {
		return "", fmt.Errorf("register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("email", registration.Email),
		zap.String("role", string(registration.Role)))

	return message, nil
}

// Login обменивает учётные данные на токен и сохраняет сессию чата
func (s *AuthService) Login(ctx context.Context, chatID int64, creds model.Credentials) (model.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)

	if err := s.check(creds); err != nil {
		return model.Session{}, err
	}

	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return model.Session{}, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return model.Session{}, errors.New("login: empty token in response")
	}

	if err := s.sessions.Login(ctx, chatID, resp.Token, resp.Role, creds.Email, resp.UserID); err != nil {
		return model.Session{}, err
	}

	return s.sessions.Get(chatID), nil
}

// Logout завершает сессию чата
func (s *AuthService) Logout(ctx context.Context, chatID int64) error {
	return s.sessions.Logout(ctx, chatID)
}

// check прогоняет validator и превращает ошибки полей в ValidationError
func (s *AuthService) check(form interface{}) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate form: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fieldMessage(fe.Field(), fe.Tag()))
	}
	return verr
}

func fieldMessage(field, tag string) string {
	if msg, ok := fieldMessages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return field + " is invalid"
}

// normalizeRegistration убирает пробелы; у ученика навыка нет
func normalizeRegistration(r model.Registration) model.Registration {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.MainSkill = strings.TrimSpace(r.MainSkill)
	r.Role = model.ParseRole(strings.ToUpper(strings.TrimSpace(string(r.Role))))

	if r.Role != model.RoleTrainer {
		r.MainSkill = ""
	}
	return r
}
