package state

import (
	"sync"
)

// Manager хранит состояние диалога каждого чата
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // chatID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущий шаг диалога
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState переводит диалог на шаг, сохраняя накопленные данные
func (sm *Manager) SetState(chatID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, chatID)
		return
	}

	sm.ensure(chatID).State = state
}

// StartDialog начинает новый диалог: старые данные отбрасываются
func (sm *Manager) StartDialog(chatID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[chatID] = &UserData{
		State: state,
		Data:  make(map[string]interface{}),
	}
}

// GetData получает временные данные
func (sm *Manager) GetData(chatID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString строковое значение или "" если его нет
func (sm *Manager) GetString(chatID int64, key string) string {
	value, ok := sm.GetData(chatID, key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// SetData сохраняет временные данные
func (sm *Manager) SetData(chatID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.ensure(chatID).Data[key] = value
}

// ClearState очищает состояние и данные чата
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}

func (sm *Manager) ensure(chatID int64) *UserData {
	userData, exists := sm.states[chatID]
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states[chatID] = userData
	}
	return userData
}
