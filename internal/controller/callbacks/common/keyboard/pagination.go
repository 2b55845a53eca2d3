package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "slots_page:")
// currentPage - текущая страница (0-based)
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		"noop",
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// Paginate возвращает границы страницы [from, to) и число страниц.
// Номер страницы вне диапазона прижимается к краю
func Paginate(total, perPage, page int) (from, to, pages, current int) {
	if perPage <= 0 || total == 0 {
		return 0, total, 1, 0
	}
	pages = (total + perPage - 1) / perPage
	current = page
	if current < 0 {
		current = 0
	}
	if current >= pages {
		current = pages - 1
	}
	from = current * perPage
	to = from + perPage
	if to > total {
		to = total
	}
	return from, to, pages, current
}
