package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// BackToDashboardButton кнопка возврата в кабинет
func BackToDashboardButton() models.InlineKeyboardButton {
	return Button("⬅️ Back to dashboard", "dashboard")
}

// LoginButton кнопка перехода ко входу
func LoginButton() models.InlineKeyboardButton {
	return Button("🔑 Log in", "to_login")
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// ConfirmCancelButtons ряд с кнопками Подтвердить/Отмена
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// AddBackToDashboardButton добавляет кнопку возврата в кабинет
func (b *Builder) AddBackToDashboardButton() *Builder {
	return b.Row(BackToDashboardButton())
}
