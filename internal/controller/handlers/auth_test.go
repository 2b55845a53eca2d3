package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/telegramtest"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testChatID int64 = 42

type memStorage struct {
	saved int
}

func (m *memStorage) LoadAll(context.Context) (map[int64]map[string]string, error) {
	return nil, nil
}

func (m *memStorage) SaveAll(context.Context, int64, map[string]string) error {
	m.saved++
	return nil
}

func (m *memStorage) RemoveAll(context.Context, int64, []string) error {
	return nil
}

type stubRegistrar struct {
	got     []model.Registration
	message string
	err     error
}

func (s *stubRegistrar) Register(_ context.Context, r model.Registration) (string, error) {
	s.got = append(s.got, r)
	return s.message, s.err
}

type stubAuthAPI struct{}

func (stubAuthAPI) Login(context.Context, model.Credentials) (*model.AuthResponse, error) {
	return nil, errors.New("login is not expected")
}

type authFixture struct {
	h         *Handlers
	tg        *telegramtest.Server
	storage   *memStorage
	registrar *stubRegistrar
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	logger := zap.NewNop()
	storage := &memStorage{}
	registrar := &stubRegistrar{}
	sessions := service.NewSessionStore(storage, registrar, logger)
	auth := service.NewAuthService(stubAuthAPI{}, sessions, logger)

	h := NewHandlers(sessions, auth, nil, nil, nil, state.NewManager(), time.UTC, logger)
	return &authFixture{h: h, tg: telegramtest.NewServer(t), storage: storage, registrar: registrar}
}

func chatText(text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   7,
		Chat: models.Chat{ID: testChatID},
		Text: text,
	}}
}

// runTraineeRegistration проходит диалог регистрации стажёра до отправки формы
func (f *authFixture) runTraineeRegistration(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	b := f.tg.Bot(t)

	f.h.HandleRegister(ctx, b, chatText("/register"))
	f.h.HandleTextMessage(ctx, b, chatText("ann@example.com"))
	f.h.HandleTextMessage(ctx, b, chatText("secret1"))
	f.h.ChooseRegisterRole(ctx, b, testChatID, model.RoleTrainee)
	f.h.HandleTextMessage(ctx, b, chatText("Ann"))
	f.h.HandleTextMessage(ctx, b, chatText("Lee"))
}

func TestRegistrationSwitchesToLoginWithoutSession(t *testing.T) {
	f := newAuthFixture(t)

	f.runTraineeRegistration(t)

	require.Len(t, f.registrar.got, 1)
	assert.Equal(t, model.Registration{
		Email:     "ann@example.com",
		Password:  "secret1",
		Role:      model.RoleTrainee,
		FirstName: "Ann",
		LastName:  "Lee",
	}, f.registrar.got[0])

	assert.Equal(t, state.StateLoginEmail, f.h.stateManager.GetState(testChatID))
	assert.False(t, f.h.sessions.Get(testChatID).IsAuthenticated)
	assert.Zero(t, f.storage.saved)

	texts := f.tg.Texts()
	require.GreaterOrEqual(t, len(texts), 2)
	assert.Equal(t, "✅ Registration successful! You can now log in.", texts[len(texts)-2])
	assert.Contains(t, texts[len(texts)-1], "Step 1 of 2: Enter your email:")

	// Пароль удаляется из истории чата
	assert.Len(t, f.tg.Calls("deleteMessage"), 1)
}

func TestRegistrationShowsBackendMessage(t *testing.T) {
	f := newAuthFixture(t)
	f.registrar.message = "Check your inbox"

	f.runTraineeRegistration(t)

	texts := f.tg.Texts()
	require.GreaterOrEqual(t, len(texts), 2)
	assert.Equal(t, "✅ Check your inbox\n\n✅ Registration successful! You can now log in.", texts[len(texts)-2])
	assert.Equal(t, state.StateLoginEmail, f.h.stateManager.GetState(testChatID))
}

func TestRegistrationFailureEndsDialog(t *testing.T) {
	f := newAuthFixture(t)
	f.registrar.err = errors.New("email already taken")

	f.runTraineeRegistration(t)

	assert.Equal(t, state.StateNone, f.h.stateManager.GetState(testChatID))
	assert.False(t, f.h.sessions.Get(testChatID).IsAuthenticated)

	texts := f.tg.Texts()
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[len(texts)-1], "Use /register to try again.")
	for _, text := range texts {
		assert.NotContains(t, text, "Registration successful")
	}
}
