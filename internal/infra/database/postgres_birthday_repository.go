package database

import (
	"context"
	"database/sql"
	"fmt" // For error wrapping
	"time"

	"birthday_bot/internal/domain/birthday"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresBirthdayRepository struct {
	db *sql.DB
}

func NewPostgresBirthdayRepository(db *sql.DB) *PostgresBirthdayRepository {
	return &PostgresBirthdayRepository{db: db}
}

// Upsert inserts the record or replaces the existing one for the same member.
// Concurrent calls for the same member resolve by last write wins.
func (r *PostgresBirthdayRepository) Upsert(ctx context.Context, rec *birthday.Record) error {
	query := `INSERT INTO birthdays (member_id, username, full_name, birthday)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (member_id) DO UPDATE
               SET username = EXCLUDED.username,
                   full_name = EXCLUDED.full_name,
                   birthday = EXCLUDED.birthday,
                   updated_at = NOW()
               RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.MemberID, rec.Username, rec.FullName, rec.Birthday.String(),
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting birthday record: %w", err)
	}
	return nil
}

// FindByDate returns all records whose birthday equals the given month-day.
func (r *PostgresBirthdayRepository) FindByDate(ctx context.Context, date birthday.MonthDay) ([]*birthday.Record, error) {
	query := `SELECT member_id, username, full_name, birthday, created_at, updated_at
               FROM birthdays WHERE birthday = $1 ORDER BY member_id`

	rows, err := r.db.QueryContext(ctx, query, date.String())
	if err != nil {
		return nil, fmt.Errorf("error querying birthdays by date: %w", err)
	}
	defer rows.Close()

	records := make([]*birthday.Record, 0)
	for rows.Next() {
		rec := &birthday.Record{}
		var stored string
		if err := rows.Scan(&rec.MemberID, &rec.Username, &rec.FullName, &stored, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning birthday record: %w", err)
		}
		rec.Birthday, err = parseStoredMonthDay(stored)
		if err != nil {
			return nil, fmt.Errorf("error decoding stored birthday %q: %w", stored, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthday records: %w", err)
	}
	return records, nil
}

// parseStoredMonthDay decodes the canonical MM-DD column value.
func parseStoredMonthDay(s string) (birthday.MonthDay, error) {
	var month, day int
	if _, err := fmt.Sscanf(s, "%2d-%2d", &month, &day); err != nil {
		return birthday.MonthDay{}, err
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return birthday.MonthDay{}, fmt.Errorf("month-day out of range: %s", s)
	}
	return birthday.MonthDay{Month: time.Month(month), Day: day}, nil
}
