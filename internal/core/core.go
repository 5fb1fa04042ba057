// Package core implements the interrogation engine: question classification,
// trait evolution, the four-stage response-mutation pipeline, claim tracking
// with contradiction detection, and the final judgment. The whole engine is
// deterministic given the mutation history of its agent state; the only
// pseudo-randomness is arithmetic seeding over the question text.
package core

import (
	"strings"

	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/catalog"
	"github.com/inquestlab/inquest/internal/domain"
)

// Interrogator drives one agent state through the per-turn pipeline. It is
// not safe for concurrent use; a state is exclusively owned by one session.
type Interrogator struct {
	state  *domain.AgentState
	logger *zap.Logger
}

func New(state *domain.AgentState, logger *zap.Logger) *Interrogator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interrogator{state: state, logger: logger}
}

// State exposes the underlying agent state for session bookkeeping.
func (ai *Interrogator) State() *domain.AgentState {
	return ai.state
}

// Respond runs the full per-turn pipeline on one line of interrogator input
// and returns the emitted reply.
func (ai *Interrogator) Respond(input string) string {
	question := ai.Classify(input)
	ai.state.TurnCount++
	ai.evolve(question)

	seed := ai.seedFrom(question)
	response := catalog.BaseReply(question.Topic, question.Tone, question.Intent, seed)
	response = ai.applyBiases(response, question)
	response = ai.applyDeception(response, question, seed)
	response = ai.applyStress(response, question)
	response = ai.applyCoherenceRepair(response, question, seed)
	ai.recordClaims(response)

	ai.logger.Debug("turn complete",
		zap.Int("turn", ai.state.TurnCount),
		zap.String("topic", string(question.Topic)),
		zap.String("tone", string(question.Tone)),
		zap.String("intent", string(question.Intent)),
		zap.Int("stress", ai.state.Stress),
		zap.Int("instability", ai.state.Instability))
	return response
}

// seedFrom derives the deterministic selection seed: character codes of the
// question text plus turn, stress, and instability weights. Recomputed at
// several call sites within a turn so intermediate mutations diversify the
// chosen lines without any external randomness.
func (ai *Interrogator) seedFrom(q domain.Question) int {
	seed := 0
	for _, r := range q.Text {
		seed += int(r)
	}
	seed += ai.state.TurnCount * 3
	seed += ai.state.Stress * 2
	seed += ai.state.Instability * 11
	return seed
}

// appendLine picks options[seed % len] and appends it unless the sentence is
// already present (case-insensitive).
func appendLine(response string, options []string, seed int) string {
	if len(options) == 0 {
		return response
	}
	line := options[seed%len(options)]
	return appendSentence(response, line)
}

// appendSentence is the idempotence guard shared by every stage: a sentence
// already present in the response is never duplicated within a turn.
func appendSentence(response, sentence string) string {
	if containsFold(response, sentence) {
		return response
	}
	return strings.TrimSpace(response + " " + sentence)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
