package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

const (
	// SlotsPerPage слотов на одной странице бронирования
	SlotsPerPage = 8
	// maxListedBookings сколько бронирований показывать в кабинете
	maxListedBookings = 10
	// maxDeleteButtons сколько слотов можно удалить прямо из кабинета
	maxDeleteButtons = 20
)

func esc(s string) string {
	return html.EscapeString(s)
}

func verificationText(verified bool) string {
	if verified {
		return "✅ Certified"
	}
	return "⏳ Pending Review"
}

// BuildBookingScreen формирует страницу бронирования тренера
func BuildBookingScreen(view service.PageView, page int, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	switch view.State {
	case service.PageLoading:
		return "⏳ Loading trainer…", nil
	case service.PageNotFound:
		kb := keyboard.NewBuilder().
			Row(keyboard.InlineQueryButton("🔎 Find another trainer", "")).
			Build()
		return "❌ Trainer not found.", kb
	}

	t := view.Trainer
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Book a session with %s</b>\n\n", esc(t.FullName()))
	fmt.Fprintf(&sb, "🎯 Skill: %s\n", esc(t.MainSkill))
	if t.Location != "" {
		fmt.Fprintf(&sb, "📍 Location: %s\n", esc(t.Location))
	}
	fmt.Fprintf(&sb, "💰 Rate: %s\n", formatting.FormatRates(t))
	fmt.Fprintf(&sb, "%s\n", verificationText(t.CertificationVerified))
	if t.Bio != "" {
		fmt.Fprintf(&sb, "\n<i>%s</i>\n", esc(t.Bio))
	}

	b := keyboard.NewBuilder()
	if len(view.Slots) == 0 {
		sb.WriteString("\n😔 No open slots right now. Check back later.")
	} else {
		from, to, pages, current := keyboard.Paginate(len(view.Slots), SlotsPerPage, page)
		fmt.Fprintf(&sb, "\n🗓 <b>Open slots (%d)</b>. Tap a slot to book it:", len(view.Slots))
		if !view.LoadedAt.IsZero() {
			fmt.Fprintf(&sb, "\n🕒 As of %s, a slot may already be taken. Tap 🔄 to refresh.", formatting.FormatTime(view.LoadedAt, loc))
		}

		for _, slot := range view.Slots[from:to] {
			b.Row(keyboard.IDButton(formatting.FormatSlotButton(slot, loc), CbBookSlot, slot.ID))
		}
		b.AddPagination(CbSlotsPage, current, pages)
	}
	b.Row(keyboard.IDButton("🔄 Refresh", CbRefreshSlots, view.TrainerID))

	return sb.String(), b.Build()
}

// BuildSearchResults формирует список найденных тренеров
func BuildSearchResults(trainers []model.TrainerProfile, search model.TrainerSearch) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	filters := []string{}
	if search.Skill != "" {
		filters = append(filters, "skill “"+esc(search.Skill)+"”")
	}
	if search.Location != "" {
		filters = append(filters, "location “"+esc(search.Location)+"”")
	}
	if search.Verified {
		filters = append(filters, "verified only")
	}

	b := keyboard.NewBuilder()
	if len(trainers) == 0 {
		sb.WriteString("🔎 No trainers found")
		if len(filters) > 0 {
			sb.WriteString(" for " + strings.Join(filters, ", "))
		}
		sb.WriteString(".\n\nTry another skill or location: /search")
		b.Row(keyboard.InlineQueryButton("💡 Suggest skills", ""))
		return sb.String(), b.Build()
	}

	fmt.Fprintf(&sb, "🔎 <b>Found %d trainer(s)</b>", len(trainers))
	if len(filters) > 0 {
		sb.WriteString(" for " + strings.Join(filters, ", "))
	}
	sb.WriteString("\n")

	for i := range trainers {
		t := &trainers[i]
		fmt.Fprintf(&sb, "\n<b>%s</b>", esc(t.FullName()))
		if t.CertificationVerified {
			sb.WriteString(" ✅")
		}
		fmt.Fprintf(&sb, "\n🎯 %s", esc(t.MainSkill))
		if t.Location != "" {
			fmt.Fprintf(&sb, " · 📍 %s", esc(t.Location))
		}
		fmt.Fprintf(&sb, "\n💰 %s\n", formatting.FormatRates(t))

		b.Row(keyboard.IDButton("📅 "+t.FullName(), CbViewTrainer, t.ID))
	}

	return sb.String(), b.Build()
}

func writeBookingLine(sb *strings.Builder, booking model.Booking, counterpart string, loc *time.Location) {
	status := formatting.GetBookingStatusDisplay(booking.Status)
	fmt.Fprintf(sb, "• %s %s\n   %s · %s\n",
		status.Emoji,
		formatting.FormatTimeRange(booking.SessionStart, booking.SessionEnd, loc),
		esc(counterpart),
		formatting.FormatRupees(booking.TotalAmount))
}

func traineeName(b model.Booking) string {
	if b.Trainee == nil {
		return "Trainee"
	}
	name := strings.TrimSpace(b.Trainee.FirstName + " " + b.Trainee.LastName)
	if name == "" {
		return "Trainee"
	}
	return name
}

func trainerName(b model.Booking) string {
	if b.Trainer == nil {
		return "Trainer"
	}
	return b.Trainer.FullName()
}

// BuildTrainerDashboard формирует кабинет тренера
func BuildTrainerDashboard(d *model.TrainerDashboard, session model.Session, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	profile := d.Profile
	if profile == nil {
		profile = &model.TrainerProfile{}
	}

	var sb strings.Builder
	sb.WriteString("📊 <b>Trainer Dashboard (CRM)</b>\n")
	fmt.Fprintf(&sb, "Logged in as: <b>%s</b> (%s)\n", esc(profile.FullName()), session.Role)
	fmt.Fprintf(&sb, "👥 Total unique clients: %d\n", d.UniqueClients())
	fmt.Fprintf(&sb, "🗓 Available slots: %d\n", len(d.Availability))

	sb.WriteString("\n💰 <b>Earnings Overview</b>\n")
	fmt.Fprintf(&sb, "Current month: %s\n", formatting.FormatRupees(d.CurrentMonthEarnings))
	fmt.Fprintf(&sb, "Total earnings: %s\n", formatting.FormatRupees(d.TotalEarnings))

	sb.WriteString("\n👤 <b>Your Profile</b>\n")
	fmt.Fprintf(&sb, "Email: %s\n", esc(session.Email))
	fmt.Fprintf(&sb, "Rate: %s\n", formatting.FormatRates(profile))
	fmt.Fprintf(&sb, "Verification: %s\n", verificationText(profile.CertificationVerified))

	fmt.Fprintf(&sb, "\n📒 <b>Bookings (%d)</b>\n", len(d.Bookings))
	if len(d.Bookings) == 0 {
		sb.WriteString("No bookings yet.\n")
	}
	for i, booking := range d.Bookings {
		if i == maxListedBookings {
			fmt.Fprintf(&sb, "…and %d more\n", len(d.Bookings)-maxListedBookings)
			break
		}
		writeBookingLine(&sb, booking, traineeName(booking), loc)
	}

	b := keyboard.NewBuilder()
	sb.WriteString("\n🗓 <b>Availability</b>\n")
	if len(d.Availability) == 0 {
		sb.WriteString("No slots yet. Add one below.\n")
	}
	for i, slot := range d.Availability {
		status := formatting.GetSlotStatusDisplay(slot)
		fmt.Fprintf(&sb, "• %s %s\n", status.Emoji, formatting.FormatTimeRange(slot.StartTime, slot.EndTime, loc))
		// Бэкенд позволяет удалять только свободные слоты
		if slot.Available && i < maxDeleteButtons {
			b.Row(keyboard.IDButton("🗑 "+formatting.FormatSlotButton(slot, loc), CbDeleteSlot, slot.ID))
		}
	}

	b.Row(
		keyboard.Button("➕ Add slot", CbAddSlot),
		keyboard.Button("💱 Update rates", CbUpdateRates),
	)
	b.Row(
		keyboard.Button("📈 Earnings chart", CbShowChart),
		keyboard.Button("🔄 Refresh", CbDashboard),
	)

	return sb.String(), b.Build()
}

// BuildTraineeDashboard формирует кабинет ученика
func BuildTraineeDashboard(v *service.TraineeView, session model.Session, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	d := v.Dashboard

	name := "Trainee"
	if d.Profile != nil {
		if full := strings.TrimSpace(d.Profile.FirstName + " " + d.Profile.LastName); full != "" {
			name = full
		}
	}

	var sb strings.Builder
	sb.WriteString("🎓 <b>Trainee Dashboard</b>\n")
	fmt.Fprintf(&sb, "Welcome, <b>%s</b> (%s)\n", esc(name), esc(session.Email))
	fmt.Fprintf(&sb, "💸 Total spent: %s\n", formatting.FormatRupees(d.TotalSpent))

	fmt.Fprintf(&sb, "\n⏭ <b>Upcoming sessions (%d)</b>\n", len(v.Upcoming))
	if len(v.Upcoming) == 0 {
		sb.WriteString("No upcoming sessions. Find a trainer with /search\n")
	}
	for _, booking := range v.Upcoming {
		writeBookingLine(&sb, booking, trainerName(booking), loc)
	}

	fmt.Fprintf(&sb, "\n⏮ <b>Past sessions (%d)</b>\n", len(v.Past))
	for i, booking := range v.Past {
		if i == maxListedBookings {
			fmt.Fprintf(&sb, "…and %d more\n", len(v.Past)-maxListedBookings)
			break
		}
		writeBookingLine(&sb, booking, trainerName(booking), loc)
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📈 Spending chart", CbShowChart),
			keyboard.Button("🔄 Refresh", CbDashboard),
		).
		Row(keyboard.InlineQueryButton("🔎 Find a trainer", "")).
		Build()

	return sb.String(), kb
}

// BuildDeleteSlotConfirm экран подтверждения удаления слота
func BuildDeleteSlotConfirm(slotID int64) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(fmt.Sprintf("%s%d", CbConfirmDelete, slotID), CbDashboard)).
		Build()
	return "🗑 Are you sure you want to delete this availability slot?", kb
}

// RoleKeyboard выбор роли при регистрации
func RoleKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("🏋️ Trainer", CbRegisterRole+string(model.RoleTrainer)),
			keyboard.Button("🎓 Trainee", CbRegisterRole+string(model.RoleTrainee)),
		).
		Build()
}

// RateTypeKeyboard выбор единицы тарифа
func RateTypeKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("⏱ Per hour", CbRateType+string(model.RateTypeHour)),
			keyboard.Button("📅 Per day", CbRateType+string(model.RateTypeDay)),
		).
		AddBackToDashboardButton().
		Build()
}

// SearchVerifiedKeyboard последний шаг поиска: фильтр по верификации
func SearchVerifiedKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Verified only", CbSearchRun+"1"),
			keyboard.Button("🔎 All trainers", CbSearchRun+"0"),
		).
		Build()
}
