package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/api"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// conflictMarker признак проигранной гонки в текстовом ответе бэкенда
const conflictMarker = "available"

// Сообщения страницы бронирования
const (
	MsgLoginRequired   = "🔒 You must be logged in to book a session."
	MsgBookingConflict = "⚠️ Conflict: this slot was just booked by someone else. Choose another time."
	MsgBookingFailed   = "❌ Booking failed. Please try again."
	MsgBookingBusy     = "⏳ Your previous booking request is still being processed."
	MsgPageNotLoaded   = "❌ This booking page is no longer open. Find the trainer again with /search."
)

// BookingAPI вызовы API, нужные странице бронирования
type BookingAPI interface {
	GetTrainer(ctx context.Context, trainerID int64) (*model.TrainerProfile, error)
	GetSlots(ctx context.Context, trainerID int64) ([]model.Slot, error)
	SubmitBooking(ctx context.Context, token string, traineeUserID, slotID int64) (*model.Booking, error)
}

// PageState состояние загрузки страницы
type PageState int

const (
	PageLoading PageState = iota
	PageLoaded
	PageNotFound
)

func (s PageState) String() string {
	switch s {
	case PageLoading:
		return "loading"
	case PageLoaded:
		return "loaded"
	case PageNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Outcome итог попытки бронирования
type Outcome int

const (
	OutcomeBooked Outcome = iota
	OutcomeConflict
	OutcomeFailed
	OutcomeLoginRequired
	OutcomeBusy
	OutcomeNotLoaded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBooked:
		return "booked"
	case OutcomeConflict:
		return "conflict"
	case OutcomeFailed:
		return "failed"
	case OutcomeLoginRequired:
		return "login_required"
	case OutcomeBusy:
		return "busy"
	case OutcomeNotLoaded:
		return "not_loaded"
	default:
		return "unknown"
	}
}

// BookingResult результат Submit для отображения
type BookingResult struct {
	Outcome Outcome
	Message string
	SlotID  int64
	Booking *model.Booking
}

// PageView снимок страницы для отрисовки
type PageView struct {
	State     PageState
	TrainerID int64
	Trainer   *model.TrainerProfile
	Slots     []model.Slot
	LoadedAt  time.Time // время загрузки слотов; после него список мог устареть
}

// BookingPage экземпляр страницы бронирования одного тренера в одном чате.
//
// Loading → {Loaded, NotFound}; в Loaded: Idle → Submitting → {Booked, Conflict, Failed} → Idle.
// Повторов нет: после неудачи пользователь сам нажимает кнопку ещё раз
type BookingPage struct {
	trainerID int64
	api       BookingAPI
	logger    *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	state      PageState
	submitting bool
	trainer    *model.TrainerProfile
	slots      SlotCache
}

func newBookingPage(trainerID int64, bookingAPI BookingAPI, logger *zap.Logger, now func() time.Time) *BookingPage {
	return &BookingPage{
		trainerID: trainerID,
		api:       bookingAPI,
		logger:    logger,
		now:       now,
		state:     PageLoading,
	}
}

// TrainerID тренер, к которому относится страница
func (p *BookingPage) TrainerID() int64 {
	return p.trainerID
}

// LoadTrainerAndSlots параллельно загружает профиль и слоты и выходит из Loading
// только когда завершились оба запроса. Ошибка запроса даёт пустой результат
// для своего ресурса; без профиля страница переходит в NotFound
func (p *BookingPage) LoadTrainerAndSlots(ctx context.Context) {
	p.mu.Lock()
	p.state = PageLoading
	p.mu.Unlock()

	var (
		trainer *model.TrainerProfile
		slots   []model.Slot
	)

	var g errgroup.Group
	g.Go(func() error {
		t, err := p.api.GetTrainer(ctx, p.trainerID)
		if err != nil {
			p.logger.Warn("Error fetching trainer details", zap.Int64("trainer_id", p.trainerID), zap.Error(err))
			return nil
		}
		trainer = t
		return nil
	})
	g.Go(func() error {
		s, err := p.api.GetSlots(ctx, p.trainerID)
		if err != nil {
			p.logger.Warn("Error fetching slots", zap.Int64("trainer_id", p.trainerID), zap.Error(err))
			return nil
		}
		slots = s
		return nil
	})
	_ = g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.trainer = trainer
	p.slots.Replace(slots, p.now())
	if trainer == nil {
		p.state = PageNotFound
	} else {
		p.state = PageLoaded
	}
}

// View возвращает снимок страницы
func (p *BookingPage) View() PageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PageView{
		State:     p.state,
		TrainerID: p.trainerID,
		Trainer:   p.trainer,
		Slots:     p.slots.Snapshot(),
		LoadedAt:  p.slots.LoadedAt(),
	}
}

// inFlight true пока запрос бронирования в полёте
func (p *BookingPage) inFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting
}

// Submit пытается забронировать слот от имени сессии.
// Без личности запрос не отправляется. Локальный кэш не считается
// авторитетным: отправляется даже слот, которого в кэше уже нет
func (p *BookingPage) Submit(ctx context.Context, session model.Session, slotID int64) BookingResult {
	if !session.HasIdentity() {
		return BookingResult{Outcome: OutcomeLoginRequired, Message: MsgLoginRequired, SlotID: slotID}
	}

	p.mu.Lock()
	if p.state != PageLoaded {
		p.mu.Unlock()
		return BookingResult{Outcome: OutcomeNotLoaded, Message: MsgPageNotLoaded, SlotID: slotID}
	}
	if p.submitting {
		p.mu.Unlock()
		return BookingResult{Outcome: OutcomeBusy, Message: MsgBookingBusy, SlotID: slotID}
	}
	p.submitting = true
	cached := p.slots.Contains(slotID)
	p.mu.Unlock()

	booking, err := p.api.SubmitBooking(ctx, session.Token, *session.UserID, slotID)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.submitting = false

	if err != nil {
		result := classifyBookingError(err)
		result.SlotID = slotID
		p.logger.Warn("Booking rejected",
			zap.Int64("trainer_id", p.trainerID),
			zap.Int64("slot_id", slotID),
			zap.String("outcome", result.Outcome.String()),
			zap.Bool("cached", cached),
			zap.Error(err))
		return result
	}

	// Бэкенд подтвердил бронь - убираем слот без перезагрузки
	p.slots.Remove(slotID)

	p.logger.Info("Slot booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("trainer_id", p.trainerID),
		zap.Int64("slot_id", slotID),
		zap.Bool("cached", cached),
		zap.Float64("total_amount", booking.TotalAmount))

	return BookingResult{
		Outcome: OutcomeBooked,
		Message: fmt.Sprintf("✅ Booked! Total: ₹%.2f. Payout: ₹%.2f. (Payment Pending)", booking.TotalAmount, booking.TrainerPayout),
		SlotID:  slotID,
		Booking: booking,
	}
}

// classifyBookingError отличает проигранную гонку от прочих ошибок
func classifyBookingError(err error) BookingResult {
	apiErr, ok := api.AsError(err)
	if !ok {
		return BookingResult{Outcome: OutcomeFailed, Message: MsgBookingFailed}
	}

	// Проигранную гонку бэкенд описывает текстом со словом "available"; статус не важен
	if apiErr.IsText() && strings.Contains(apiErr.Text, conflictMarker) {
		return BookingResult{Outcome: OutcomeConflict, Message: MsgBookingConflict}
	}

	if apiErr.IsText() {
		return BookingResult{Outcome: OutcomeFailed, Message: "❌ Error: " + apiErr.Text}
	}
	return BookingResult{Outcome: OutcomeFailed, Message: MsgBookingFailed}
}

// BookingFlow хранит открытую страницу бронирования каждого чата
type BookingFlow struct {
	api    BookingAPI
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	pages map[int64]*BookingPage
}

func NewBookingFlow(bookingAPI BookingAPI, logger *zap.Logger) *BookingFlow {
	return &BookingFlow{
		api:    bookingAPI,
		logger: logger,
		now:    time.Now,
		pages:  make(map[int64]*BookingPage),
	}
}

// Open открывает страницу тренера в чате (заменяя предыдущую) и загружает её
func (f *BookingFlow) Open(ctx context.Context, chatID, trainerID int64) *BookingPage {
	page := newBookingPage(trainerID, f.api, f.logger, f.now)

	f.mu.Lock()
	f.pages[chatID] = page
	f.mu.Unlock()

	page.LoadTrainerAndSlots(ctx)
	return page
}

// Page возвращает открытую страницу чата
func (f *BookingFlow) Page(chatID int64) (*BookingPage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page, ok := f.pages[chatID]
	return page, ok
}

// Close закрывает страницу чата
func (f *BookingFlow) Close(chatID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pages, chatID)
}
