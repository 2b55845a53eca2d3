package model

import "encoding/json"

// Slot окно доступности тренера
type Slot struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId,omitempty"`
	StartTime Timestamp `json:"startTime"`
	EndTime   Timestamp `json:"endTime"`
	Available bool      `json:"available"`
}

// UnmarshalJSON принимает isAvailable и вложенного тренера
func (s *Slot) UnmarshalJSON(data []byte) error {
	type alias Slot
	aux := struct {
		*alias
		IsAvailable *bool `json:"isAvailable"`
		Trainer     *struct {
			ID int64 `json:"id"`
		} `json:"trainer"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.IsAvailable != nil {
		s.Available = *aux.IsAvailable
	}
	if aux.Trainer != nil && s.TrainerID == 0 {
		s.TrainerID = aux.Trainer.ID
	}
	return nil
}

// AvailabilityRequest тело запроса на добавление слота
type AvailabilityRequest struct {
	StartTime Timestamp `json:"startTime"`
	EndTime   Timestamp `json:"endTime"`
}
