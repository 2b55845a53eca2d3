package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingAPI struct {
	trainer    *model.TrainerProfile
	trainerErr error
	slots      []model.Slot
	slotsErr   error

	submitCalls atomic.Int32
	submit      func(token string, traineeID, slotID int64) (*model.Booking, error)
}

func (s *stubBookingAPI) GetTrainer(context.Context, int64) (*model.TrainerProfile, error) {
	return s.trainer, s.trainerErr
}

func (s *stubBookingAPI) GetSlots(context.Context, int64) ([]model.Slot, error) {
	return s.slots, s.slotsErr
}

func (s *stubBookingAPI) SubmitBooking(_ context.Context, token string, traineeID, slotID int64) (*model.Booking, error) {
	s.submitCalls.Add(1)
	return s.submit(token, traineeID, slotID)
}

func threeSlots() []model.Slot {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	return []model.Slot{
		{ID: 3, StartTime: model.NewTimestamp(start), EndTime: model.NewTimestamp(start.Add(time.Hour)), Available: true},
		{ID: 1, StartTime: model.NewTimestamp(start.Add(2 * time.Hour)), EndTime: model.NewTimestamp(start.Add(3 * time.Hour)), Available: true},
		{ID: 2, StartTime: model.NewTimestamp(start.Add(4 * time.Hour)), EndTime: model.NewTimestamp(start.Add(5 * time.Hour)), Available: true},
	}
}

func loadedPage(t *testing.T, stub *stubBookingAPI) *BookingPage {
	t.Helper()
	flow := NewBookingFlow(stub, zap.NewNop())
	page := flow.Open(context.Background(), 100, 7)
	require.Equal(t, PageLoaded, page.View().State)
	return page
}

func slotIDs(slots []model.Slot) []int64 {
	ids := make([]int64, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestLoadKeepsBackendSlotOrder(t *testing.T) {
	stub := &stubBookingAPI{trainer: &model.TrainerProfile{ID: 7, FirstName: "Ann"}, slots: threeSlots()}
	page := loadedPage(t, stub)

	view := page.View()
	assert.Equal(t, []int64{3, 1, 2}, slotIDs(view.Slots))
	assert.Equal(t, "Ann", view.Trainer.FirstName)
	assert.False(t, view.LoadedAt.IsZero())
}

func TestLoadWithoutTrainerIsNotFound(t *testing.T) {
	stub := &stubBookingAPI{trainerErr: errBoom, slots: threeSlots()}
	page := NewBookingFlow(stub, zap.NewNop()).Open(context.Background(), 1, 7)

	view := page.View()
	assert.Equal(t, PageNotFound, view.State)
	assert.Len(t, view.Slots, 3)
}

func TestLoadNullTrainerBodyIsNotFound(t *testing.T) {
	for name, body := range map[string]string{"null": "null", "empty": ""} {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/search/trainers/7", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			mux.HandleFunc("/api/booking/trainer/7/slots", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			})
			srv := httptest.NewServer(mux)
			t.Cleanup(srv.Close)

			client := api.New(srv.URL+"/api/", 5*time.Second, zap.NewNop())
			page := NewBookingFlow(client, zap.NewNop()).Open(context.Background(), 1, 7)

			view := page.View()
			assert.Equal(t, PageNotFound, view.State)
			assert.Nil(t, view.Trainer)
		})
	}
}

func TestLoadSlotFailureDegradesToEmpty(t *testing.T) {
	stub := &stubBookingAPI{trainer: &model.TrainerProfile{ID: 7}, slotsErr: errBoom}
	page := loadedPage(t, stub)

	assert.Empty(t, page.View().Slots)
}

func TestSubmitWithoutIdentityMakesNoCall(t *testing.T) {
	stub := &stubBookingAPI{trainer: &model.TrainerProfile{ID: 7}, slots: threeSlots()}
	page := loadedPage(t, stub)

	for _, session := range []model.Session{
		{},
		{Token: "tok", IsAuthenticated: true},
		{UserID: int64Ptr(5)},
	} {
		result := page.Submit(context.Background(), session, 1)
		assert.Equal(t, OutcomeLoginRequired, result.Outcome)
		assert.Equal(t, MsgLoginRequired, result.Message)
	}
	assert.Zero(t, stub.submitCalls.Load())
	assert.Len(t, page.View().Slots, 3)
}

func TestSubmitSuccessRemovesOnlyBookedSlot(t *testing.T) {
	stub := &stubBookingAPI{
		trainer: &model.TrainerProfile{ID: 7},
		slots:   threeSlots(),
		submit: func(token string, traineeID, slotID int64) (*model.Booking, error) {
			assert.Equal(t, "tok", token)
			assert.Equal(t, int64(9), traineeID)
			return &model.Booking{ID: 55, TotalAmount: 500, TrainerPayout: 425, Status: "PENDING_PAYMENT"}, nil
		},
	}
	page := loadedPage(t, stub)

	result := page.Submit(context.Background(), authenticated(9), 1)

	require.Equal(t, OutcomeBooked, result.Outcome)
	assert.Equal(t, "✅ Booked! Total: ₹500.00. Payout: ₹425.00. (Payment Pending)", result.Message)
	assert.Equal(t, int64(55), result.Booking.ID)
	assert.Equal(t, []int64{3, 2}, slotIDs(page.View().Slots))
	assert.False(t, page.inFlight())
}

func TestSubmitConflictKeepsSlot(t *testing.T) {
	cases := map[string]error{
		"lost race 400": &api.Error{StatusCode: 400, Text: "Slot is no longer available. Please choose another time."},
		"lost race 409": &api.Error{StatusCode: 409, Text: "Slot is no longer available"},
	}
	for name, submitErr := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubBookingAPI{
				trainer: &model.TrainerProfile{ID: 7},
				slots:   threeSlots(),
				submit: func(string, int64, int64) (*model.Booking, error) {
					return nil, submitErr
				},
			}
			page := loadedPage(t, stub)

			result := page.Submit(context.Background(), authenticated(9), 1)

			assert.Equal(t, OutcomeConflict, result.Outcome)
			assert.Equal(t, MsgBookingConflict, result.Message)
			assert.Equal(t, []int64{3, 1, 2}, slotIDs(page.View().Slots))
			assert.False(t, page.inFlight())
		})
	}
}

func TestSubmitOtherErrorsAreFailures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"text", &api.Error{StatusCode: 400, Text: "Trainee not found"}, "❌ Error: Trainee not found"},
		{"structured", &api.Error{StatusCode: 400, Structured: true, Messages: []string{"bad"}}, MsgBookingFailed},
		{"transport", errBoom, MsgBookingFailed},
		{"409 without marker", &api.Error{StatusCode: 409, Text: "Conflict: trainer is on leave"}, "❌ Error: Conflict: trainer is on leave"},
		{"409 structured", &api.Error{StatusCode: 409, Structured: true, Messages: []string{"taken"}}, MsgBookingFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubBookingAPI{
				trainer: &model.TrainerProfile{ID: 7},
				slots:   threeSlots(),
				submit: func(string, int64, int64) (*model.Booking, error) {
					return nil, tc.err
				},
			}
			page := loadedPage(t, stub)

			result := page.Submit(context.Background(), authenticated(9), 2)

			assert.Equal(t, OutcomeFailed, result.Outcome)
			assert.Equal(t, tc.message, result.Message)
			assert.Len(t, page.View().Slots, 3)
		})
	}
}

func TestSubmitIsNotRetried(t *testing.T) {
	stub := &stubBookingAPI{
		trainer: &model.TrainerProfile{ID: 7},
		slots:   threeSlots(),
		submit: func(string, int64, int64) (*model.Booking, error) {
			return nil, errBoom
		},
	}
	page := loadedPage(t, stub)

	page.Submit(context.Background(), authenticated(9), 1)
	assert.Equal(t, int32(1), stub.submitCalls.Load())
}

func TestSubmitSlotMissingFromCacheStillReachesBackend(t *testing.T) {
	stub := &stubBookingAPI{
		trainer: &model.TrainerProfile{ID: 7},
		slots:   threeSlots(),
		submit: func(string, int64, int64) (*model.Booking, error) {
			return nil, &api.Error{StatusCode: 409, Text: "Slot is no longer available. Please choose another time."}
		},
	}
	page := loadedPage(t, stub)

	result := page.Submit(context.Background(), authenticated(9), 404)
	assert.Equal(t, OutcomeConflict, result.Outcome)
	assert.Equal(t, int32(1), stub.submitCalls.Load())
}

func TestSubmitWhileSubmittingIsBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	stub := &stubBookingAPI{
		trainer: &model.TrainerProfile{ID: 7},
		slots:   threeSlots(),
		submit: func(string, int64, int64) (*model.Booking, error) {
			close(started)
			<-release
			return &model.Booking{ID: 1}, nil
		},
	}
	page := loadedPage(t, stub)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		page.Submit(context.Background(), authenticated(9), 1)
	}()

	<-started
	assert.True(t, page.inFlight())
	busy := page.Submit(context.Background(), authenticated(9), 2)
	assert.Equal(t, OutcomeBusy, busy.Outcome)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), stub.submitCalls.Load())
	assert.False(t, page.inFlight())
}

func TestSubmitOnNotFoundPage(t *testing.T) {
	stub := &stubBookingAPI{}
	page := NewBookingFlow(stub, zap.NewNop()).Open(context.Background(), 1, 7)

	result := page.Submit(context.Background(), authenticated(9), 1)
	assert.Equal(t, OutcomeNotLoaded, result.Outcome)
	assert.Zero(t, stub.submitCalls.Load())
}

func TestBookingFlowKeepsOnePagePerChat(t *testing.T) {
	stub := &stubBookingAPI{trainer: &model.TrainerProfile{ID: 7}, slots: threeSlots()}
	flow := NewBookingFlow(stub, zap.NewNop())
	ctx := context.Background()

	first := flow.Open(ctx, 1, 7)
	second := flow.Open(ctx, 1, 8)
	other := flow.Open(ctx, 2, 7)

	page, ok := flow.Page(1)
	require.True(t, ok)
	assert.Same(t, second, page)
	assert.NotSame(t, first, page)

	page, ok = flow.Page(2)
	require.True(t, ok)
	assert.Same(t, other, page)

	flow.Close(1)
	_, ok = flow.Page(1)
	assert.False(t, ok)
}

func TestSlotCacheRemoveAndContains(t *testing.T) {
	var cache SlotCache
	loadedAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.Replace(threeSlots(), loadedAt)

	assert.Len(t, cache.Snapshot(), 3)
	assert.Equal(t, loadedAt, cache.LoadedAt())
	assert.True(t, cache.Contains(1))
	assert.True(t, cache.Remove(1))
	assert.False(t, cache.Remove(1))
	assert.False(t, cache.Contains(1))

	snapshot := cache.Snapshot()
	snapshot[0].ID = 999
	assert.Equal(t, []int64{3, 2}, slotIDs(cache.Snapshot()))
}
