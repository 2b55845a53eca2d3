package state

// Adapter адаптирует Manager к интерфейсу callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

// NewAdapter создает адаптер для Manager
func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) GetData(chatID int64, key string) (interface{}, bool) {
	return a.sm.GetData(chatID, key)
}

func (a *Adapter) SetData(chatID int64, key string, value interface{}) {
	a.sm.SetData(chatID, key, value)
}

func (a *Adapter) ClearState(chatID int64) {
	a.sm.ClearState(chatID)
}
