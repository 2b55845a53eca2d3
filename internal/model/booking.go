package model

// Booking подтверждённое бронирование слота. Создаётся только бэкендом
type Booking struct {
	ID                   int64           `json:"id"`
	Trainer              *TrainerProfile `json:"trainer,omitempty"`
	Trainee              *TraineeProfile `json:"trainee,omitempty"`
	Slot                 *Slot           `json:"slot,omitempty"`
	SessionStart         Timestamp       `json:"sessionStart"`
	SessionEnd           Timestamp       `json:"sessionEnd"`
	TotalAmount          float64         `json:"totalAmount"`
	CommissionFee        float64         `json:"commissionFee"`
	TrainerPayout        float64         `json:"trainerPayout"`
	Status               string          `json:"status"`
	PaymentTransactionID string          `json:"paymentTransactionId,omitempty"`
}

// TraineeID возвращает ID ученика из вложенного снимка
func (b *Booking) TraineeID() int64 {
	if b.Trainee == nil {
		return 0
	}
	return b.Trainee.ID
}
