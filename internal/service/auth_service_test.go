package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuthAPI struct {
	calls int
	resp  *model.AuthResponse
	err   error
}

func (s *stubAuthAPI) Login(context.Context, model.Credentials) (*model.AuthResponse, error) {
	s.calls++
	return s.resp, s.err
}

func newAuthFixture() (*AuthService, *stubAuthAPI, *stubRegistrar, *memoryStorage) {
	storage := newMemoryStorage()
	registrar := &stubRegistrar{message: "User registered successfully. Role: TRAINER. Name: Ann Lee"}
	authAPI := &stubAuthAPI{}
	store := NewSessionStore(storage, registrar, zap.NewNop())
	return NewAuthService(authAPI, store, zap.NewNop()), authAPI, registrar, storage
}

func validRegistration() model.Registration {
	return model.Registration{
		Email:     " ann@example.com ",
		Password:  "secret1",
		Role:      "trainer",
		FirstName: "Ann",
		LastName:  "Lee",
		MainSkill: "Yoga",
	}
}

func TestRegisterDoesNotCreateSession(t *testing.T) {
	svc, _, registrar, storage := newAuthFixture()

	msg, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Contains(t, msg, "registered successfully")
	assert.Equal(t, "ann@example.com", registrar.last.Email)
	assert.Equal(t, model.RoleTrainer, registrar.last.Role)
	assert.Zero(t, storage.saves)
}

func TestRegisterTraineeDropsMainSkill(t *testing.T) {
	svc, _, registrar, _ := newAuthFixture()
	reg := validRegistration()
	reg.Role = model.RoleTrainee

	_, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)
	assert.Empty(t, registrar.last.MainSkill)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Registration)
		want   string
	}{
		{"bad email", func(r *model.Registration) { r.Email = "nope" }, "Email must be valid"},
		{"missing email", func(r *model.Registration) { r.Email = "" }, "Email is required"},
		{"short password", func(r *model.Registration) { r.Password = "123" }, "Password must be at least 6 characters"},
		{"unknown role", func(r *model.Registration) { r.Role = "ADMIN" }, "Role is required (TRAINER/TRAINEE)"},
		{"no first name", func(r *model.Registration) { r.FirstName = " " }, "First name is required"},
		{"trainer without skill", func(r *model.Registration) { r.MainSkill = "" }, "Main skill is required for trainers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, registrar, _ := newAuthFixture()
			reg := validRegistration()
			tc.mutate(&reg)

			_, err := svc.Register(context.Background(), reg)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.want)
			assert.Zero(t, registrar.calls)
		})
	}
}

func TestRegisterPassesBackendError(t *testing.T) {
	svc, _, registrar, _ := newAuthFixture()
	registrar.err = &api.Error{StatusCode: 400, Text: "Email already exists"}

	_, err := svc.Register(context.Background(), validRegistration())

	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Email already exists", apiErr.Text)
}

func TestLoginStoresSession(t *testing.T) {
	svc, authAPI, _, storage := newAuthFixture()
	authAPI.resp = &model.AuthResponse{Token: "jwt", Role: model.RoleTrainee, UserID: 12}

	session, err := svc.Login(context.Background(), 77, model.Credentials{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	assert.True(t, session.HasIdentity())
	assert.Equal(t, int64(12), *session.UserID)
	assert.Equal(t, "a@b.co", session.Email)
	assert.Equal(t, "jwt", storage.entries(77)["token"])
}

func TestLoginRejectedLeavesNoSession(t *testing.T) {
	svc, authAPI, _, storage := newAuthFixture()
	authAPI.err = &api.Error{StatusCode: 401, Text: "Invalid username or password."}

	_, err := svc.Login(context.Background(), 77, model.Credentials{Email: "a@b.co", Password: "pw"})

	assert.True(t, api.IsUnauthorized(err))
	assert.Zero(t, storage.saves)
}

func TestLoginValidatesBeforeCall(t *testing.T) {
	svc, authAPI, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), 77, model.Credentials{Email: "", Password: ""})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, authAPI.calls)
}

func TestErrorTextForValidation(t *testing.T) {
	text := ErrorText(&ValidationError{Fields: []string{"Email is required", "Last name is required"}})
	assert.Equal(t, "❌ Email is required\n❌ Last name is required", text)
}
