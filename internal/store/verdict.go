package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inquestlab/inquest/internal/domain"
)

type VerdictStore struct {
	db *pgxpool.Pool
}

func NewVerdictStore(db *pgxpool.Pool) *VerdictStore {
	return &VerdictStore{db: db}
}

func (s *VerdictStore) Create(ctx context.Context, v *domain.VerdictRecord) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO verdicts (session_id, verdict, assessment, risk_score, safe_score, strength, supported, outcome)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		v.SessionID, v.Verdict, v.Assessment, v.RiskScore, v.SafeScore, v.Strength, v.Supported, v.Outcome,
	).Scan(&v.CreatedAt)
}
