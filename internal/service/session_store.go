package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"go.uber.org/zap"
)

// SessionStorage долговременное хранилище ключей сессии.
// SaveAll и RemoveAll обязаны быть атомарными для переданного набора ключей
type SessionStorage interface {
	LoadAll(ctx context.Context) (map[int64]map[string]string, error)
	SaveAll(ctx context.Context, chatID int64, entries map[string]string) error
	RemoveAll(ctx context.Context, chatID int64, keys []string) error
}

// Registrar регистрация пользователя на бэкенде
type Registrar interface {
	Register(ctx context.Context, registration model.Registration) (string, error)
}

// SessionListener вызывается после каждого Login/Logout
type SessionListener func(chatID int64, session model.Session)

// SessionStore единственный источник правды о том, кто залогинен в каждом чате.
// Login и Logout - единственные мутаторы
type SessionStore struct {
	storage   SessionStorage
	registrar Registrar
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[int64]model.Session

	listenersMu sync.RWMutex
	listeners   map[int]SessionListener
	nextID      int
}

func NewSessionStore(storage SessionStorage, registrar Registrar, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		storage:   storage,
		registrar: registrar,
		logger:    logger,
		sessions:  make(map[int64]model.Session),
		listeners: make(map[int]SessionListener),
	}
}

// Restore восстанавливает сессии из хранилища при старте.
// Отсутствующие или битые ключи дают пустые значения, а не ошибку
func (s *SessionStore) Restore(ctx context.Context) error {
	all, err := s.storage.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("restore sessions: %w", err)
	}

	restored := make(map[int64]model.Session, len(all))
	for chatID, entries := range all {
		restored[chatID] = sessionFromEntries(entries)
	}

	s.mu.Lock()
	s.sessions = restored
	s.mu.Unlock()

	s.logger.Info("Sessions restored", zap.Int("chats", len(restored)))
	return nil
}

// Get возвращает копию сессии чата (пустую, если не залогинен)
func (s *SessionStore) Get(chatID int64) model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.sessions[chatID]
	if session.UserID != nil {
		id := *session.UserID
		session.UserID = &id
	}
	return session
}

// Login целиком заменяет сессию и сохраняет все четыре ключа одной транзакцией.
// Если запись не удалась, сессия в памяти не меняется
func (s *SessionStore) Login(ctx context.Context, chatID int64, token string, role model.Role, email string, userID int64) error {
	entries := map[string]string{
		model.SessionKeyToken:  token,
		model.SessionKeyRole:   string(role),
		model.SessionKeyEmail:  email,
		model.SessionKeyUserID: strconv.FormatInt(userID, 10),
	}

	if err := s.storage.SaveAll(ctx, chatID, entries); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	session := sessionFromEntries(entries)

	s.mu.Lock()
	s.sessions[chatID] = session
	s.mu.Unlock()

	s.logger.Info("User logged in",
		zap.Int64("chat_id", chatID),
		zap.String("role", string(role)),
		zap.Int64("user_id", userID))

	s.notify(chatID, session)
	return nil
}

// Logout очищает сессию и удаляет все ключи. Идемпотентен
func (s *SessionStore) Logout(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()

	err := s.storage.RemoveAll(ctx, chatID, model.SessionKeys)

	s.logger.Info("User logged out", zap.Int64("chat_id", chatID))
	s.notify(chatID, model.Session{})

	if err != nil {
		return fmt.Errorf("remove persisted session: %w", err)
	}
	return nil
}

// Register делегирует регистрацию API и не трогает сессию:
// после регистрации нужно войти отдельно
func (s *SessionStore) Register(ctx context.Context, registration model.Registration) (string, error) {
	return s.registrar.Register(ctx, registration)
}

// Subscribe подписывает на изменения сессий, возвращает функцию отписки
func (s *SessionStore) Subscribe(listener SessionListener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *SessionStore) notify(chatID int64, session model.Session) {
	s.listenersMu.RLock()
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(chatID, session)
	}
}

func sessionFromEntries(entries map[string]string) model.Session {
	token := entries[model.SessionKeyToken]
	session := model.Session{
		Token:           token,
		IsAuthenticated: token != "",
		Role:            model.ParseRole(entries[model.SessionKeyRole]),
		Email:           entries[model.SessionKeyEmail],
	}

	if raw, ok := entries[model.SessionKeyUserID]; ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			session.UserID = &id
		}
	}
	return session
}
