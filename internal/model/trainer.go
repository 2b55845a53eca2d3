package model

import "encoding/json"

// RateType единица тарифа тренера
type RateType string

const (
	RateTypeHour RateType = "HOUR"
	RateTypeDay  RateType = "DAY"
)

// TrainerProfile профиль тренера; владелец данных - бэкенд
type TrainerProfile struct {
	ID                    int64    `json:"id"`
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	MainSkill             string   `json:"mainSkill"`
	Location              string   `json:"location"`
	HourlyRate            float64  `json:"hourlyRate"`
	DailyRate             *float64 `json:"dailyRate"`
	RateType              RateType `json:"rateType"`
	Bio                   string   `json:"bio"`
	VideoIntroURL         string   `json:"videoIntroUrl,omitempty"`
	CertificationVerified bool     `json:"certificationVerified"`
}

// UnmarshalJSON принимает оба варианта имени флага верификации
func (p *TrainerProfile) UnmarshalJSON(data []byte) error {
	type alias TrainerProfile
	aux := struct {
		*alias
		IsCertificationVerified *bool `json:"isCertificationVerified"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.IsCertificationVerified != nil {
		p.CertificationVerified = *aux.IsCertificationVerified
	}
	return nil
}

// FullName возвращает имя для отображения
func (p *TrainerProfile) FullName() string {
	first, last := p.FirstName, p.LastName
	if first == "" {
		first = "Expert"
	}
	if last == "" {
		last = "Trainer"
	}
	return first + " " + last
}

// DailyRateOrZero возвращает дневной тариф или 0
func (p *TrainerProfile) DailyRateOrZero() float64 {
	if p.DailyRate == nil {
		return 0
	}
	return *p.DailyRate
}

// TraineeProfile профиль ученика
type TraineeProfile struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CurrentGoal   string `json:"currentGoal,omitempty"`
	LearningStyle string `json:"learningStyle,omitempty"`
}

// Skill навык из справочника (для подсказок)
type Skill struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// TrainerSearch параметры поиска тренеров
type TrainerSearch struct {
	Skill    string
	Location string
	Verified bool
}

// RateUpdate запрос на изменение тарифов
type RateUpdate struct {
	HourlyRate string   `json:"hourlyRate"`
	DailyRate  string   `json:"dailyRate"`
	RateType   RateType `json:"rateType"`
}
