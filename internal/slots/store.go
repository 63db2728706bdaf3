package slots

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context, userID int64) ([]ProtectedSlot, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, start_time, end_time, is_recurring,
		       COALESCE(recurrence_rule, ''), created_at
		FROM protected_slots
		WHERE user_id = $1
		ORDER BY start_time ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProtectedSlot
	for rows.Next() {
		var p ProtectedSlot
		if err := rows.Scan(
			&p.ID, &p.Title, &p.StartTime, &p.EndTime,
			&p.IsRecurring, &p.RecurrenceRule, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, userID int64, p ProtectedSlot) (ProtectedSlot, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO protected_slots (
			id, user_id, title, start_time, end_time, is_recurring, recurrence_rule
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING created_at
	`,
		p.ID, userID, p.Title, p.StartTime, p.EndTime, p.IsRecurring, p.RecurrenceRule,
	).Scan(&p.CreatedAt)
	if err != nil {
		return ProtectedSlot{}, err
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `
		DELETE FROM protected_slots WHERE id=$1 AND user_id=$2
	`, id, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
