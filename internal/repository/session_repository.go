package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skilllink_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository долговременное хранилище ключей сессии по чатам.
// Каждая запись - пара key/value, привязанная к chat_id
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// LoadAll загружает все сохранённые записи, сгруппированные по чату
func (r *SessionRepository) LoadAll(ctx context.Context) (map[int64]map[string]string, error) {
	query := `
		SELECT chat_id, key, value
		FROM session_entries
		ORDER BY chat_id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load session entries: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]map[string]string)
	for rows.Next() {
		var (
			chatID     int64
			key, value string
		)
		if err := rows.Scan(&chatID, &key, &value); err != nil {
			return nil, fmt.Errorf("scan session entry: %w", err)
		}
		if result[chatID] == nil {
			result[chatID] = make(map[string]string)
		}
		result[chatID][key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session entries: %w", err)
	}

	return result, nil
}

// SaveAll записывает все переданные ключи одной транзакцией
func (r *SessionRepository) SaveAll(ctx context.Context, chatID int64, entries map[string]string) error {
	query := `
		INSERT INTO session_entries (chat_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (chat_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		for key, value := range entries {
			if _, err := tx.Exec(ctx, query, chatID, key, value); err != nil {
				return fmt.Errorf("save session entry %s: %w", key, err)
			}
		}
		return nil
	})
}

// RemoveAll удаляет переданные ключи чата одной транзакцией.
// Отсутствующие ключи не считаются ошибкой
func (r *SessionRepository) RemoveAll(ctx context.Context, chatID int64, keys []string) error {
	query := `
		DELETE FROM session_entries
		WHERE chat_id = $1 AND key = ANY($2)
	`

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, chatID, keys); err != nil {
			return fmt.Errorf("remove session entries: %w", err)
		}
		return nil
	})
}
