package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/inquestlab/inquest/internal/domain"
)

type TurnStore struct {
	db *pgxpool.Pool
}

func NewTurnStore(db *pgxpool.Pool) *TurnStore {
	return &TurnStore{db: db}
}

func (s *TurnStore) Create(ctx context.Context, t *domain.TurnRecord) error {
	var state *pgvector.Vector
	if len(t.State) > 0 {
		v := pgvector.NewVector(t.State)
		state = &v
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO turns (session_id, turn, question, reply, state)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		t.SessionID, t.Turn, t.Question, t.Reply, state,
	).Scan(&t.ID, &t.CreatedAt)
}

func (s *TurnStore) GetBySessionAndTurn(ctx context.Context, sessionID uuid.UUID, turn int) (*domain.TurnRecord, error) {
	t := &domain.TurnRecord{}
	var state pgvector.Vector
	err := s.db.QueryRow(ctx,
		`SELECT id, session_id, turn, question, reply, state, created_at
		 FROM turns WHERE session_id = $1 AND turn = $2`,
		sessionID, turn,
	).Scan(&t.ID, &t.SessionID, &t.Turn, &t.Question, &t.Reply, &state, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.State = state.Slice()
	return t, nil
}

// FindSimilar returns the turns whose trait-snapshot vector is nearest to
// the given reference, across all sessions, by cosine distance.
func (s *TurnStore) FindSimilar(ctx context.Context, state []float32, limit int) ([]domain.TurnWithScore, error) {
	if limit <= 0 {
		limit = 5
	}
	vec := pgvector.NewVector(state)
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, turn, question, reply, state, created_at,
		        state <=> $1 AS distance
		 FROM turns
		 WHERE state IS NOT NULL
		 ORDER BY state <=> $1
		 LIMIT $2`,
		vec, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TurnWithScore
	for rows.Next() {
		var t domain.TurnWithScore
		var v pgvector.Vector
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Turn, &t.Question, &t.Reply, &v, &t.CreatedAt, &t.Distance); err != nil {
			return nil, err
		}
		t.State = v.Slice()
		results = append(results, t)
	}
	return results, rows.Err()
}
