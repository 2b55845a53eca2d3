package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDashboardAPI struct {
	trainerData *model.TrainerDashboard
	traineeData *model.TraineeDashboard
	profile     *model.TrainerProfile
	err         error

	calls        int
	added        []model.AvailabilityRequest
	addedFor     int64
	deleted      []int64
	rateUpdates  []model.RateUpdate
	profileCalls int
}

func (s *stubDashboardAPI) GetTrainerDashboardData(context.Context, string) (*model.TrainerDashboard, error) {
	s.calls++
	return s.trainerData, s.err
}

func (s *stubDashboardAPI) GetTraineeDashboardData(context.Context, string) (*model.TraineeDashboard, error) {
	s.calls++
	return s.traineeData, s.err
}

func (s *stubDashboardAPI) GetTrainerProfile(context.Context, string) (*model.TrainerProfile, error) {
	s.calls++
	s.profileCalls++
	return s.profile, s.err
}

func (s *stubDashboardAPI) UpdateTrainerProfile(_ context.Context, _ string, update model.RateUpdate) (*model.TrainerProfile, error) {
	s.calls++
	s.rateUpdates = append(s.rateUpdates, update)
	return s.profile, s.err
}

func (s *stubDashboardAPI) AddAvailability(_ context.Context, _ string, trainerID int64, slot model.AvailabilityRequest) (*model.Slot, error) {
	s.calls++
	s.added = append(s.added, slot)
	s.addedFor = trainerID
	return &model.Slot{ID: 31, StartTime: slot.StartTime, EndTime: slot.EndTime, Available: true}, s.err
}

func (s *stubDashboardAPI) DeleteAvailability(_ context.Context, _ string, availabilityID int64) error {
	s.calls++
	s.deleted = append(s.deleted, availabilityID)
	return s.err
}

func newDashboardFixture(t *testing.T, role model.Role) (*DashboardService, *stubDashboardAPI, *SessionStore) {
	t.Helper()
	store := NewSessionStore(newMemoryStorage(), &stubRegistrar{}, zap.NewNop())
	if role != model.RoleNone {
		require.NoError(t, store.Login(context.Background(), 1, "tok", role, "u@x.io", 5))
	}
	stub := &stubDashboardAPI{profile: &model.TrainerProfile{ID: 40, HourlyRate: 500}}
	return NewDashboardService(stub, store, time.UTC, zap.NewNop()), stub, store
}

func TestRouteGuards(t *testing.T) {
	anonymous := model.Session{}
	trainer := authenticated(1)
	trainer.Role = model.RoleTrainer
	trainee := authenticated(1)

	assert.ErrorIs(t, RequireRole(anonymous, model.RoleTrainer), ErrLoginRequired)
	assert.ErrorIs(t, RequireRole(trainee, model.RoleTrainer), ErrWrongRole)
	assert.ErrorIs(t, RequireRole(trainer, model.RoleTrainee), ErrWrongRole)
	assert.NoError(t, RequireRole(trainer, model.RoleTrainer))

	_, err := DashboardRole(anonymous)
	assert.ErrorIs(t, err, ErrLoginRequired)

	role, err := DashboardRole(trainer)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTrainer, role)

	role, err = DashboardRole(trainee)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTrainee, role)

	noRole := authenticated(1)
	noRole.Role = model.RoleNone
	_, err = DashboardRole(noRole)
	assert.ErrorIs(t, err, ErrWrongRole)
}

func TestTrainerDashboardWrongRoleMakesNoCall(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainee)

	_, err := svc.TrainerDashboard(context.Background(), 1)

	assert.ErrorIs(t, err, ErrWrongRole)
	assert.Zero(t, stub.calls)
}

func TestDashboardUnauthorizedLogsOut(t *testing.T) {
	svc, stub, store := newDashboardFixture(t, model.RoleTrainee)
	stub.err = &api.Error{StatusCode: 401, Text: "Unauthorized"}

	_, err := svc.TraineeDashboard(context.Background(), 1)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "🔒 Session expired or unauthorized access. Please log in again.", ErrorText(err))
	assert.False(t, store.Get(1).IsAuthenticated)
}

func TestDashboardOtherErrorKeepsSession(t *testing.T) {
	svc, stub, store := newDashboardFixture(t, model.RoleTrainer)
	stub.err = &api.Error{StatusCode: 500, Text: "Internal error"}

	_, err := svc.TrainerDashboard(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.True(t, store.Get(1).IsAuthenticated)
}

func TestTraineeDashboardSplitsSessions(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainee)
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	stub.traineeData = &model.TraineeDashboard{Sessions: []model.Booking{
		{ID: 1, SessionStart: model.NewTimestamp(now.Add(time.Hour))},
		{ID: 2, SessionStart: model.NewTimestamp(now.Add(-time.Hour))},
		{ID: 3, SessionStart: model.NewTimestamp(now)},
	}}

	view, err := svc.TraineeDashboard(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, view.Upcoming, 1)
	assert.Equal(t, int64(1), view.Upcoming[0].ID)
	require.Len(t, view.Past, 2)
}

func TestAddAvailabilityValidation(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       error
	}{
		{"missing start", "", "2030-01-01 11:00", ErrMissingTimes},
		{"missing end", "2030-01-01 10:00", "  ", ErrMissingTimes},
		{"garbage", "tomorrow", "2030-01-01 11:00", ErrInvalidTime},
		{"reversed", "2030-01-01 11:00", "2030-01-01 10:00", ErrInvalidRange},
		{"empty range", "2030-01-01 10:00", "2030-01-01 10:00", ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, stub, _ := newDashboardFixture(t, model.RoleTrainer)

			_, err := svc.AddAvailability(context.Background(), 1, tc.start, tc.end)

			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, stub.calls)
		})
	}
}

func TestAddAvailabilityUsesProfileIDAndLocation(t *testing.T) {
	store := NewSessionStore(newMemoryStorage(), &stubRegistrar{}, zap.NewNop())
	require.NoError(t, store.Login(context.Background(), 1, "tok", model.RoleTrainer, "u@x.io", 5))
	stub := &stubDashboardAPI{profile: &model.TrainerProfile{ID: 40}}
	loc := time.FixedZone("IST", 5*3600+1800)
	svc := NewDashboardService(stub, store, loc, zap.NewNop())

	slot, err := svc.AddAvailability(context.Background(), 1, "2030-01-01 10:00", "01.01.2030 11:30")
	require.NoError(t, err)

	assert.Equal(t, int64(31), slot.ID)
	assert.Equal(t, int64(40), stub.addedFor)
	require.Len(t, stub.added, 1)
	assert.Equal(t, time.Date(2030, 1, 1, 4, 30, 0, 0, time.UTC), stub.added[0].StartTime.UTC())
	assert.Equal(t, time.Date(2030, 1, 1, 6, 0, 0, 0, time.UTC), stub.added[0].EndTime.UTC())
}

func TestDeleteAvailability(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainer)

	require.NoError(t, svc.DeleteAvailability(context.Background(), 1, 17))
	assert.Equal(t, []int64{17}, stub.deleted)
}

func TestUpdateRatesRequiresOneRate(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainer)

	_, err := svc.UpdateRates(context.Background(), 1, " ", "", model.RateTypeHour)
	assert.ErrorIs(t, err, ErrMissingRate)

	for _, raw := range []string{"-5", "NaN", "Inf", "-Inf", "1e400", "abc"} {
		_, err = svc.UpdateRates(context.Background(), 1, raw, "", model.RateTypeHour)
		assert.ErrorIs(t, err, ErrInvalidRate, raw)

		_, err = svc.UpdateRates(context.Background(), 1, "", raw, model.RateTypeDay)
		assert.ErrorIs(t, err, ErrInvalidRate, raw)
	}

	assert.Zero(t, stub.calls)
}

func TestUpdateRatesFallsBackToProfile(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainer)
	daily := 3000.0
	stub.profile = &model.TrainerProfile{ID: 40, HourlyRate: 450.5, DailyRate: &daily}

	_, err := svc.UpdateRates(context.Background(), 1, "", "3500", model.RateTypeDay)
	require.NoError(t, err)

	require.Len(t, stub.rateUpdates, 1)
	assert.Equal(t, model.RateUpdate{HourlyRate: "450.5", DailyRate: "3500", RateType: model.RateTypeDay}, stub.rateUpdates[0])
}

func TestUpdateRatesMissingDailyDefaultsToZero(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainer)

	_, err := svc.UpdateRates(context.Background(), 1, "600", "", "")
	require.NoError(t, err)

	require.Len(t, stub.rateUpdates, 1)
	assert.Equal(t, model.RateUpdate{HourlyRate: "600", DailyRate: "0", RateType: model.RateTypeHour}, stub.rateUpdates[0])
}

func TestUpdateRatesBothGivenSkipsProfileFetch(t *testing.T) {
	svc, stub, _ := newDashboardFixture(t, model.RoleTrainer)

	_, err := svc.UpdateRates(context.Background(), 1, "600", "4000", model.RateTypeHour)
	require.NoError(t, err)
	assert.Zero(t, stub.profileCalls)
}
