package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
)

type memoryStorage struct {
	mu        sync.Mutex
	data      map[int64]map[string]string
	saveErr   error
	removeErr error
	loadErr   error
	saves     int
	removes   int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[int64]map[string]string)}
}

func (m *memoryStorage) LoadAll(context.Context) (map[int64]map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[int64]map[string]string, len(m.data))
	for chatID, entries := range m.data {
		copied := make(map[string]string, len(entries))
		for k, v := range entries {
			copied[k] = v
		}
		out[chatID] = copied
	}
	return out, nil
}

func (m *memoryStorage) SaveAll(_ context.Context, chatID int64, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.data[chatID] == nil {
		m.data[chatID] = make(map[string]string)
	}
	for k, v := range entries {
		m.data[chatID][k] = v
	}
	return nil
}

func (m *memoryStorage) RemoveAll(_ context.Context, chatID int64, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removes++
	if m.removeErr != nil {
		return m.removeErr
	}
	for _, k := range keys {
		delete(m.data[chatID], k)
	}
	if len(m.data[chatID]) == 0 {
		delete(m.data, chatID)
	}
	return nil
}

func (m *memoryStorage) entries(chatID int64) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[chatID]
}

type stubRegistrar struct {
	calls   int
	last    model.Registration
	message string
	err     error
}

func (s *stubRegistrar) Register(_ context.Context, r model.Registration) (string, error) {
	s.calls++
	s.last = r
	return s.message, s.err
}

var errBoom = errors.New("boom")

func int64Ptr(v int64) *int64 { return &v }

func authenticated(userID int64) model.Session {
	return model.Session{
		Token:           "tok",
		IsAuthenticated: true,
		Role:            model.RoleTrainee,
		Email:           "t@example.com",
		UserID:          int64Ptr(userID),
	}
}
