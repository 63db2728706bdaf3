package tasks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store is the persistence layer for tasks. The scheduling core never
// touches it; handlers fetch a snapshot here and hand it to the engines.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

const taskColumns = `
	id, title, status, priority, due_date, scheduled_at, created_at,
	estimated_minutes, energy, blocked_by
`

func scanTask(row interface{ Scan(...any) error }) (Task, error) {
	var (
		t         Task
		due       sql.NullTime
		scheduled sql.NullTime
		est       sql.NullInt64
		energy    sql.NullString
		blocked   []string
	)

	err := row.Scan(
		&t.ID, &t.Title, &t.Status, &t.Priority,
		&due, &scheduled, &t.CreatedAt,
		&est, &energy, pq.Array(&blocked),
	)
	if err != nil {
		return Task{}, err
	}

	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	if scheduled.Valid {
		s := scheduled.Time
		t.ScheduledAt = &s
	}
	if est.Valid {
		t.EstimatedMinutes = int(est.Int64)
	}
	if energy.Valid {
		t.Energy = EnergyLevel(energy.String)
	}
	for _, raw := range blocked {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			continue
		}
		t.BlockedBy = append(t.BlockedBy, id)
	}

	return t.Normalize(), nil
}

// Snapshot returns every task owned by the user, normalized.
func (s *Store) Snapshot(ctx context.Context, userID int64) ([]Task, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, userID int64, id uuid.UUID) (Task, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	return scanTask(row)
}

func (s *Store) Create(ctx context.Context, userID int64, t Task) (Task, error) {
	t = t.Normalize()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	blocked := make([]string, 0, len(t.BlockedBy))
	for _, id := range t.BlockedBy {
		blocked = append(blocked, id.String())
	}

	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (
			id, user_id, title, status, priority, due_date, scheduled_at,
			estimated_minutes, energy, blocked_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`,
		t.ID, userID, t.Title, t.Status, t.Priority,
		nullTime(t.DueDate), nullTime(t.ScheduledAt),
		t.EstimatedMinutes, string(t.Energy), pq.Array(blocked),
	).Scan(&t.CreatedAt)
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Store) Update(ctx context.Context, userID int64, t Task) error {
	blocked := make([]string, 0, len(t.BlockedBy))
	for _, id := range t.BlockedBy {
		blocked = append(blocked, id.String())
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE tasks
		SET title=$1, priority=$2, due_date=$3,
		    estimated_minutes=$4, energy=$5, blocked_by=$6
		WHERE id=$7 AND user_id=$8
	`,
		t.Title, t.Priority, nullTime(t.DueDate),
		t.EstimatedMinutes, string(t.Energy), pq.Array(blocked),
		t.ID, userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) SetStatus(ctx context.Context, userID int64, id uuid.UUID, status Status) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE tasks SET status=$1 WHERE id=$2 AND user_id=$3
	`, status, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetScheduledAt applies one engine-recommended placement back to the store.
func (s *Store) SetScheduledAt(ctx context.Context, userID int64, id uuid.UUID, at time.Time) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE tasks SET scheduled_at=$1 WHERE id=$2 AND user_id=$3
	`, at, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `
		DELETE FROM tasks WHERE id=$1 AND user_id=$2
	`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRow(res sql.Result) error {
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
