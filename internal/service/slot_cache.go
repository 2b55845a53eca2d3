package service

import (
	"sync"
	"time"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
)

// SlotCache локальная копия списка открытых слотов страницы бронирования.
//
// Контракт устаревания: содержимое кэша - снимок на момент загрузки и может
// расходиться с бэкендом. Чтение не является авторитетным: слот из кэша мог
// быть уже занят. Единственная операция, разрешающая гонку, - отправка
// бронирования; слот удаляется из кэша только по её успешному результату.
type SlotCache struct {
	mu       sync.RWMutex
	slots    []model.Slot
	loadedAt time.Time
}

// Replace заменяет содержимое кэша результатом загрузки (порядок сохраняется)
func (c *SlotCache) Replace(slots []model.Slot, loadedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots = append([]model.Slot(nil), slots...)
	c.loadedAt = loadedAt
}

// Snapshot возвращает копию текущего списка
func (c *SlotCache) Snapshot() []model.Slot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]model.Slot(nil), c.slots...)
}

// Remove убирает слот после подтверждённого бэкендом бронирования
func (c *SlotCache) Remove(slotID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.slots {
		if c.slots[i].ID == slotID {
			c.slots = append(c.slots[:i:i], c.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Contains есть ли слот в локальной копии (не гарантирует доступность)
func (c *SlotCache) Contains(slotID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.slots {
		if c.slots[i].ID == slotID {
			return true
		}
	}
	return false
}

// LoadedAt время загрузки снимка
func (c *SlotCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
