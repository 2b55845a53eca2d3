package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	from, to, pages, current := Paginate(17, 8, 0)
	assert.Equal(t, []int{0, 8, 3, 0}, []int{from, to, pages, current})

	from, to, pages, current = Paginate(17, 8, 2)
	assert.Equal(t, []int{16, 17, 3, 2}, []int{from, to, pages, current})

	from, to, _, current = Paginate(17, 8, 9)
	assert.Equal(t, []int{16, 17, 2}, []int{from, to, current})

	from, to, pages, current = Paginate(0, 8, 3)
	assert.Equal(t, []int{0, 0, 1, 0}, []int{from, to, pages, current})
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("slots_page:", 0, 1))

	buttons := PaginationButtons("slots_page:", 1, 3)
	if assert.Len(t, buttons, 3) {
		assert.Equal(t, "slots_page:0", buttons[0].CallbackData)
		assert.Equal(t, "📄 2/3", buttons[1].Text)
		assert.Equal(t, "slots_page:2", buttons[2].CallbackData)
	}
}

func TestBuilder(t *testing.T) {
	kb := NewBuilder().
		Row(IDButton("Book", "book_slot:", 12)).
		Row().
		AddBackToDashboardButton().
		Build()

	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "book_slot:12", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "dashboard", kb.InlineKeyboard[1][0].CallbackData)
}
