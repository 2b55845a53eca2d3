package trainee

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/state"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/telegramtest"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testChatID    int64 = 42
	testMessageID       = 55
)

type nopStorage struct{}

func (nopStorage) LoadAll(context.Context) (map[int64]map[string]string, error) {
	return nil, nil
}

func (nopStorage) SaveAll(context.Context, int64, map[string]string) error {
	return nil
}

func (nopStorage) RemoveAll(context.Context, int64, []string) error {
	return nil
}

type stubBookingAPI struct {
	calls     atomic.Int32
	submitErr error
}

func (s *stubBookingAPI) GetTrainer(_ context.Context, id int64) (*model.TrainerProfile, error) {
	return &model.TrainerProfile{ID: id, FirstName: "Ann", LastName: "Lee"}, nil
}

func (s *stubBookingAPI) GetSlots(context.Context, int64) ([]model.Slot, error) {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	slots := make([]model.Slot, 0, 3)
	for i := int64(1); i <= 3; i++ {
		from := start.Add(time.Duration(i) * 2 * time.Hour)
		slots = append(slots, model.Slot{
			ID:        i,
			StartTime: model.NewTimestamp(from),
			EndTime:   model.NewTimestamp(from.Add(time.Hour)),
			Available: true,
		})
	}
	return slots, nil
}

func (s *stubBookingAPI) SubmitBooking(context.Context, string, int64, int64) (*model.Booking, error) {
	s.calls.Add(1)
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &model.Booking{ID: 900, TotalAmount: 500, TrainerPayout: 450}, nil
}

type bookingFixture struct {
	h   *callbacktypes.Handler
	api *stubBookingAPI
	tg  *telegramtest.Server
}

func newBookingFixture(t *testing.T, loggedIn bool) *bookingFixture {
	t.Helper()

	logger := zap.NewNop()
	sessions := service.NewSessionStore(nopStorage{}, nil, logger)
	if loggedIn {
		require.NoError(t, sessions.Login(context.Background(), testChatID, "tok", model.RoleTrainee, "bob@example.com", 11))
	}

	stub := &stubBookingAPI{}
	h := &callbacktypes.Handler{
		Sessions:     sessions,
		Booking:      service.NewBookingFlow(stub, logger),
		StateManager: state.NewAdapter(state.NewManager()),
		Location:     time.UTC,
		Logger:       logger,
	}
	h.Booking.Open(context.Background(), testChatID, 7)

	return &bookingFixture{h: h, api: stub, tg: telegramtest.NewServer(t)}
}

func slotCallback(slotID int64) *models.CallbackQuery {
	return &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: testChatID},
		Data: common.CbBookSlot + strconv.FormatInt(slotID, 10),
		Message: models.MaybeInaccessibleMessage{
			Type:    models.MaybeInaccessibleMessageTypeMessage,
			Message: &models.Message{ID: testMessageID, Chat: models.Chat{ID: testChatID}},
		},
	}
}

func TestBookSlotAlertsThenRerendersPage(t *testing.T) {
	f := newBookingFixture(t, true)

	HandleBookSlot(context.Background(), f.tg.Bot(t), slotCallback(2), f.h)

	assert.Equal(t, []string{"answerCallbackQuery", "editMessageText"}, f.tg.Methods())

	answer := f.tg.Calls("answerCallbackQuery")[0]
	assert.Equal(t, "true", answer.Params["show_alert"])
	assert.Equal(t, "✅ Booked! Total: ₹500.00. Payout: ₹450.00. (Payment Pending)", answer.Params["text"])

	edit := f.tg.Calls("editMessageText")[0]
	assert.Equal(t, strconv.Itoa(testMessageID), edit.Params["message_id"])
	assert.Contains(t, edit.Params["text"], "Open slots (2)")

	page, ok := f.h.Booking.Page(testChatID)
	require.True(t, ok)
	for _, slot := range page.View().Slots {
		assert.NotEqual(t, int64(2), slot.ID)
	}
}

func TestBookSlotConflictAlertsWithoutRerender(t *testing.T) {
	f := newBookingFixture(t, true)
	f.api.submitErr = &api.Error{StatusCode: 400, Text: "Slot is not available"}

	HandleBookSlot(context.Background(), f.tg.Bot(t), slotCallback(2), f.h)

	assert.Equal(t, []string{"answerCallbackQuery"}, f.tg.Methods())
	answer := f.tg.Calls("answerCallbackQuery")[0]
	assert.Equal(t, "true", answer.Params["show_alert"])
	assert.Equal(t, service.MsgBookingConflict, answer.Params["text"])

	page, _ := f.h.Booking.Page(testChatID)
	assert.Len(t, page.View().Slots, 3)
}

func TestBookSlotWithoutSessionRedirectsToLogin(t *testing.T) {
	f := newBookingFixture(t, false)

	HandleBookSlot(context.Background(), f.tg.Bot(t), slotCallback(2), f.h)

	assert.Equal(t, []string{"answerCallbackQuery", "sendMessage"}, f.tg.Methods())
	assert.Equal(t, service.MsgLoginRequired, f.tg.Calls("answerCallbackQuery")[0].Params["text"])
	assert.Equal(t, []string{"🔑 Please log in to continue."}, f.tg.Texts())
	assert.Zero(t, f.api.calls.Load())
}
