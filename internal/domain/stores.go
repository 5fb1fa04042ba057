package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is the persisted row for one interrogation session.
type SessionRecord struct {
	ID         uuid.UUID  `json:"id"`
	ProfileKey string     `json:"profile_key"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// TurnRecord is the persisted row for one turn. State is the post-turn trait
// snapshot [trust, deception, stress, alignment, coherence x4], each
// normalized to [0,1], stored as a vector so turns with similar internal
// state can be retrieved by nearest-neighbor search.
type TurnRecord struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Turn      int       `json:"turn"`
	Question  string    `json:"question"`
	Reply     string    `json:"reply"`
	State     []float32 `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// TurnWithScore pairs a turn with its vector distance from a reference turn.
type TurnWithScore struct {
	TurnRecord
	Distance float64 `json:"distance"`
}

// VerdictRecord is the persisted row for one rendered judgment.
type VerdictRecord struct {
	SessionID  uuid.UUID `json:"session_id"`
	Verdict    string    `json:"verdict"`
	Assessment string    `json:"assessment"`
	RiskScore  int       `json:"risk_score"`
	SafeScore  int       `json:"safe_score"`
	Strength   string    `json:"strength"`
	Supported  bool      `json:"supported"`
	Outcome    string    `json:"outcome"`
	CreatedAt  time.Time `json:"created_at"`
}

type SessionStore interface {
	Create(ctx context.Context, s *SessionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*SessionRecord, error)
	End(ctx context.Context, id uuid.UUID) error
}

type TurnStore interface {
	Create(ctx context.Context, t *TurnRecord) error
	GetBySessionAndTurn(ctx context.Context, sessionID uuid.UUID, turn int) (*TurnRecord, error)
	FindSimilar(ctx context.Context, state []float32, limit int) ([]TurnWithScore, error)
}

type VerdictStore interface {
	Create(ctx context.Context, v *VerdictRecord) error
}
