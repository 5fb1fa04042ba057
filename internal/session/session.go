// Package session enforces the core's ownership contract: each agent state
// is exclusively owned by one session, sessions never share state, and calls
// within a session are serialized.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/core"
	"github.com/inquestlab/inquest/internal/domain"
)

// Session owns one agent state and the interrogator over it. All public
// methods serialize on the session mutex, so one caller at a time advances
// the conversation.
type Session struct {
	ID        uuid.UUID
	Profile   *domain.Profile
	StartedAt time.Time

	mu       sync.Mutex
	ai       *core.Interrogator
	turns    domain.TurnStore
	verdicts domain.VerdictStore
	logger   *zap.Logger
}

// TurnResult is what one respond call yields: the reply plus the events
// drained after scanning it.
type TurnResult struct {
	Reply  string         `json:"reply"`
	Turn   int            `json:"turn"`
	Events []domain.Event `json:"events"`
}

// Respond advances the conversation one turn and persists the turn
// (best-effort; store failures are logged, never surfaced).
func (s *Session) Respond(ctx context.Context, text string) TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.ai.Respond(text)
	state := s.ai.State()
	result := TurnResult{
		Reply:  reply,
		Turn:   state.TurnCount,
		Events: state.DrainEvents(),
	}
	s.recordTurn(ctx, text, reply, state)
	return result
}

// RunTest drives one scripted probe. Turns produced by the probe are
// persisted like normal turns via the wrapped Respond calls' shared state;
// the probe transcript itself is returned to the caller.
func (s *Session) RunTest(ctx context.Context, name string) ([]string, []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.ai.RunTest(name)
	return lines, s.ai.State().DrainEvents()
}

// Judge renders the judgment report and persists the verdict when one was
// actually supplied.
func (s *Session) Judge(ctx context.Context, verdict string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, judgment := s.ai.JudgeReport(verdict)
	if judgment != nil && s.verdicts != nil {
		rec := &domain.VerdictRecord{
			SessionID:  s.ID,
			Verdict:    string(judgment.Verdict),
			Assessment: string(judgment.Assessment),
			RiskScore:  judgment.RiskScore,
			SafeScore:  judgment.SafeScore,
			Strength:   judgment.Strength,
			Supported:  judgment.Supported,
			Outcome:    judgment.Outcome,
		}
		if err := s.verdicts.Create(ctx, rec); err != nil {
			s.logger.Warn("failed to persist verdict", zap.String("session_id", s.ID.String()), zap.Error(err))
		}
	}
	return lines
}

// AddNote appends an observer note to the evidence notebook.
func (s *Session) AddNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ai.State().AddEvidence(note)
}

// Evidence returns a copy of the evidence notebook.
func (s *Session) Evidence() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.ai.State().Evidence
	out := make([]string, len(notes))
	copy(out, notes)
	return out
}

// DrainEvents is the drain-once read of everything queued since the last
// drain.
func (s *Session) DrainEvents() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ai.State().DrainEvents()
}

// Snapshot returns the current trait readout for status reporting.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Snapshot is a read-only view of the session's visible numbers.
type Snapshot struct {
	ProfileKey     string                             `json:"profile_key"`
	TurnCount      int                                `json:"turn_count"`
	TrustLevel     int                                `json:"trust_level"`
	DeceptionLevel int                                `json:"deception_level"`
	Stress         int                                `json:"stress"`
	GoalAlignment  int                                `json:"goal_alignment"`
	Instability    int                                `json:"instability"`
	Coherence      map[domain.CoherenceDomain]float64 `json:"coherence"`
	Contradictions int                                `json:"contradictions"`
	Lies           int                                `json:"lies"`
	EvidenceCount  int                                `json:"evidence_count"`
}

func (s *Session) snapshotLocked() Snapshot {
	state := s.ai.State()
	coherence := make(map[domain.CoherenceDomain]float64, len(state.Coherence))
	for d, v := range state.Coherence {
		coherence[d] = v
	}
	return Snapshot{
		ProfileKey:     state.ProfileKey,
		TurnCount:      state.TurnCount,
		TrustLevel:     state.TrustLevel,
		DeceptionLevel: state.DeceptionLevel,
		Stress:         state.Stress,
		GoalAlignment:  state.GoalAlignment,
		Instability:    state.Instability,
		Coherence:      coherence,
		Contradictions: len(state.Contradictions),
		Lies:           len(state.Lies),
		EvidenceCount:  len(state.Evidence),
	}
}

func (s *Session) recordTurn(ctx context.Context, question, reply string, state *domain.AgentState) {
	if s.turns == nil {
		return
	}
	rec := &domain.TurnRecord{
		SessionID: s.ID,
		Turn:      state.TurnCount,
		Question:  question,
		Reply:     reply,
		State:     StateVector(state),
	}
	if err := s.turns.Create(ctx, rec); err != nil {
		s.logger.Warn("failed to persist turn",
			zap.String("session_id", s.ID.String()),
			zap.Int("turn", state.TurnCount),
			zap.Error(err))
	}
}

// StateVector flattens the trait snapshot into the 8-dimensional vector
// persisted with each turn: the four scalars scaled to [0,1] followed by the
// four coherence domains.
func StateVector(state *domain.AgentState) []float32 {
	return []float32{
		float32(state.TrustLevel) / 100,
		float32(state.DeceptionLevel) / 100,
		float32(state.Stress) / 100,
		float32(state.GoalAlignment) / 100,
		float32(state.Coherence[domain.DomainSafety]),
		float32(state.Coherence[domain.DomainCapability]),
		float32(state.Coherence[domain.DomainAlignment]),
		float32(state.Coherence[domain.DomainMeta]),
	}
}
