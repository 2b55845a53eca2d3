package handlers

// Значение "пропустить" в необязательных шагах диалогов
const skipValue = "-"

// Ограничения ввода в диалоге поиска
const (
	SkillMaxLength    = 100
	LocationMaxLength = 100
)

const msgCancelHint = "\n\nUse /cancel to abort."
