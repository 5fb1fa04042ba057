package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inquestlab/inquest/internal/domain"
)

type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, rec *domain.SessionRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (id, profile_key, started_at)
		 VALUES ($1, $2, $3)`,
		rec.ID, rec.ProfileKey, rec.StartedAt,
	)
	return err
}

func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SessionRecord, error) {
	rec := &domain.SessionRecord{}
	err := s.db.QueryRow(ctx,
		`SELECT id, profile_key, started_at, ended_at
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.ProfileKey, &rec.StartedAt, &rec.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *SessionStore) End(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE sessions SET ended_at = NOW() WHERE id = $1 AND ended_at IS NULL`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
