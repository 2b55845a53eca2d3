package model

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// MonthlyAmounts суммы по месяцам, ключ в формате "M-YYYY"
type MonthlyAmounts map[string]float64

// MonthlyPoint одна точка графика
type MonthlyPoint struct {
	Label  string
	Year   int
	Month  time.Month
	Amount float64
}

// Points возвращает точки в хронологическом порядке.
// Ключи, которые не удалось разобрать, идут в конце по алфавиту
func (m MonthlyAmounts) Points() []MonthlyPoint {
	points := make([]MonthlyPoint, 0, len(m))
	for label, amount := range m {
		p := MonthlyPoint{Label: label, Amount: amount}
		if month, year, ok := parseMonthKey(label); ok {
			p.Month, p.Year = month, year
		}
		points = append(points, p)
	}

	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if (a.Year == 0) != (b.Year == 0) {
			return b.Year == 0
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Label < b.Label
	})
	return points
}

func parseMonthKey(key string) (time.Month, int, bool) {
	monthStr, yearStr, found := strings.Cut(key, "-")
	if !found {
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	return time.Month(month), year, true
}

// TrainerDashboard все данные кабинета тренера, загруженные целиком
type TrainerDashboard struct {
	Profile              *TrainerProfile
	Bookings             []Booking
	CurrentMonthEarnings float64
	TotalEarnings        float64
	MonthlyEarnings      MonthlyAmounts
	Availability         []Slot
}

// UniqueClients количество разных учеников среди бронирований
func (d *TrainerDashboard) UniqueClients() int {
	seen := make(map[int64]struct{}, len(d.Bookings))
	for i := range d.Bookings {
		if id := d.Bookings[i].TraineeID(); id != 0 {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

// TraineeDashboard все данные кабинета ученика
type TraineeDashboard struct {
	Profile         *TraineeProfile
	Sessions        []Booking
	TotalSpent      float64
	MonthlySpending MonthlyAmounts
}

// SplitSessions делит занятия на предстоящие и прошедшие относительно now.
// Начало ровно в now считается прошедшим
func SplitSessions(sessions []Booking, now time.Time) (upcoming, past []Booking) {
	for _, s := range sessions {
		if s.SessionStart.After(now) {
			upcoming = append(upcoming, s)
		} else {
			past = append(past, s)
		}
	}
	return upcoming, past
}
