package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
)

// FormatDateTime форматирует дату и время в часовом поясе бота
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon 02 Jan 2006, 15:04")
}

// FormatTime форматирует только время
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// FormatTimeRange форматирует интервал. Если конец в тот же день, дата не повторяется
func FormatTimeRange(start, end model.Timestamp, loc *time.Location) string {
	if start.IsZero() {
		return "—"
	}
	s, e := start.In(loc), end.In(loc)
	if end.IsZero() {
		return FormatDateTime(s, loc)
	}
	if s.Year() == e.Year() && s.YearDay() == e.YearDay() {
		return fmt.Sprintf("%s-%s", FormatDateTime(s, loc), FormatTime(e, loc))
	}
	return fmt.Sprintf("%s - %s", FormatDateTime(s, loc), FormatDateTime(e, loc))
}

// FormatSlotButton короткая подпись кнопки слота: "Mon 02 Jan 10:00-11:00"
func FormatSlotButton(slot model.Slot, loc *time.Location) string {
	s, e := slot.StartTime.In(loc), slot.EndTime.In(loc)
	return fmt.Sprintf("%s %s-%s", s.Format("Mon 02 Jan"), s.Format("15:04"), e.Format("15:04"))
}

// FormatMonthLabel подпись месяца для графика: "Jan 25"; неразобранный ключ как есть
func FormatMonthLabel(p model.MonthlyPoint) string {
	if p.Year == 0 {
		return p.Label
	}
	return fmt.Sprintf("%s %02d", p.Month.String()[:3], p.Year%100)
}
