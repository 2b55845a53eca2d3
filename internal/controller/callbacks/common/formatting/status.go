package formatting

import "github.com/Freeeeeet/skilllink_bot/internal/model"

// SlotStatusDisplay представляет отображение статуса слота
type SlotStatusDisplay struct {
	Emoji string
	Text  string
}

// GetSlotStatusDisplay возвращает emoji и текст для доступности слота
func GetSlotStatusDisplay(slot model.Slot) SlotStatusDisplay {
	if slot.Available {
		return SlotStatusDisplay{"🟢", "Open"}
	}
	return SlotStatusDisplay{"🔴", "Booked"}
}

// BookingStatusDisplay представляет отображение статуса бронирования
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования.
// Статус - свободная строка бэкенда, неизвестные показываются как есть
func GetBookingStatusDisplay(status string) BookingStatusDisplay {
	displays := map[string]BookingStatusDisplay{
		"PENDING_PAYMENT":           {"⏳", "Payment pending"},
		"CONFIRMED_PENDING_PAYMENT": {"⏳", "Confirmed, payment pending"},
		"CONFIRMED":                 {"✅", "Confirmed"},
		"COMPLETED":                 {"✔️", "Completed"},
		"CANCELLED":                 {"❌", "Cancelled"},
	}

	if display, ok := displays[status]; ok {
		return display
	}
	if status == "" {
		return BookingStatusDisplay{"❓", "Unknown"}
	}
	return BookingStatusDisplay{"📌", status}
}
