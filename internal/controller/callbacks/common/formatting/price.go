package formatting

import (
	"fmt"
	"math"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
)

// FormatRupees форматирует сумму в рупиях с двумя знаками
func FormatRupees(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// FormatRupeesShort форматирует сумму без дробной части, если она нулевая
func FormatRupeesShort(amount float64) string {
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("₹%.0f", amount)
	}
	return FormatRupees(amount)
}

// FormatRates строка тарифов тренера: "₹500.00/hr, ₹0/day (HOUR)"
func FormatRates(p *model.TrainerProfile) string {
	daily := "₹0"
	if p.DailyRate != nil {
		daily = FormatRupees(*p.DailyRate)
	}
	rateType := p.RateType
	if rateType == "" {
		rateType = model.RateTypeHour
	}
	return fmt.Sprintf("%s/hr, %s/day (%s)", FormatRupees(p.HourlyRate), daily, rateType)
}
