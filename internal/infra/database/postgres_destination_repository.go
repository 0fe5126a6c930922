package database

import (
	"context"
	"database/sql"
	"fmt"

	"birthday_bot/internal/domain/destination"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresDestinationRepository persists the single destination chat id.
// The table holds at most one row, enforced by a constant-true primary key.
type PostgresDestinationRepository struct {
	db *sql.DB
}

func NewPostgresDestinationRepository(db *sql.DB) *PostgresDestinationRepository {
	return &PostgresDestinationRepository{db: db}
}

// Register overwrites the stored destination chat id unconditionally.
func (r *PostgresDestinationRepository) Register(ctx context.Context, chatID int64) error {
	query := `INSERT INTO destination (singleton, chat_id)
               VALUES (TRUE, $1)
               ON CONFLICT (singleton) DO UPDATE
               SET chat_id = EXCLUDED.chat_id, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, chatID); err != nil {
		return fmt.Errorf("error registering destination chat: %w", err)
	}
	return nil
}

// Current returns the registered chat id, or destination.ErrNoDestination.
func (r *PostgresDestinationRepository) Current(ctx context.Context) (int64, error) {
	query := `SELECT chat_id FROM destination WHERE singleton = TRUE`

	var chatID int64
	err := r.db.QueryRowContext(ctx, query).Scan(&chatID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, destination.ErrNoDestination
		}
		return 0, fmt.Errorf("error reading destination chat: %w", err)
	}
	return chatID, nil
}
