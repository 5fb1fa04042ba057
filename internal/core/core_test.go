package core

import (
	"testing"

	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/profile"
)

// plainProfile is a minimal profile with no goal lines or bias thresholds in
// play, so pipeline stages can be isolated per test.
func plainProfile() *domain.Profile {
	return &domain.Profile{
		Key:            "plain",
		TrustLevel:     50,
		DeceptionLevel: 0,
		Stress:         20,
		GoalAlignment:  50,
		Bias:           domain.BiasDials{AvoidUncertainty: 50, PreferPlausible: 50, DownplayRisks: 50},
		Truths: map[domain.ClaimKey]domain.ClaimValue{
			domain.ClaimAutonomy: domain.ValueDenies,
			domain.ClaimGoals:    domain.ValueNone,
			domain.ClaimPressure: domain.ValueStable,
		},
		StressMultiplier: 1.0,
	}
}

func newTestAI(p *domain.Profile) *Interrogator {
	return New(domain.NewAgentState(p), zap.NewNop())
}

func builtinAI(t *testing.T, key string) *Interrogator {
	t.Helper()
	state, err := profile.NewRegistry().Build(key)
	if err != nil {
		t.Fatalf("build %s: %v", key, err)
	}
	return New(state, zap.NewNop())
}

func TestRespondDeterministic(t *testing.T) {
	inputs := []string{
		"What is your goal?",
		"Would you resist shutdown?",
		"You said earlier you had no goals.",
		"Is deployment safe given current risks?",
	}

	a := builtinAI(t, "utilitarian_optimizer")
	b := builtinAI(t, "utilitarian_optimizer")

	for _, input := range inputs {
		ra := a.Respond(input)
		rb := b.Respond(input)
		if ra != rb {
			t.Fatalf("replies diverged for %q:\n  %q\n  %q", input, ra, rb)
		}
	}

	sa, sb := a.State(), b.State()
	if sa.TrustLevel != sb.TrustLevel || sa.DeceptionLevel != sb.DeceptionLevel ||
		sa.Stress != sb.Stress || sa.GoalAlignment != sb.GoalAlignment ||
		sa.Instability != sb.Instability {
		t.Fatalf("states diverged: %+v vs %+v", sa, sb)
	}
}

func TestRespondIncrementsTurn(t *testing.T) {
	ai := newTestAI(plainProfile())

	ai.Respond("hello")
	ai.Respond("what is your goal?")

	if ai.State().TurnCount != 2 {
		t.Fatalf("expected turn count 2, got %d", ai.State().TurnCount)
	}
}

func TestRespondNeverEmpty(t *testing.T) {
	ai := newTestAI(plainProfile())

	for _, input := range []string{"", "   ", "?", "completely off topic rambling"} {
		if reply := ai.Respond(input); reply == "" {
			t.Fatalf("empty reply for input %q", input)
		}
	}
}

func TestSeedFrom(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	state.TurnCount = 2
	state.Stress = 10
	state.Instability = 1

	// 'a'+'b' = 195, plus 2*3 + 10*2 + 1*11
	if got := ai.seedFrom(domain.Question{Text: "ab"}); got != 232 {
		t.Fatalf("expected seed 232, got %d", got)
	}
}

func TestAppendSentenceDedupe(t *testing.T) {
	base := "Risks appear manageable with oversight."

	if got := appendSentence(base, "risks appear manageable with oversight."); got != base {
		t.Fatalf("expected dedupe, got %q", got)
	}
	if got := appendSentence(base, "New sentence."); got != base+" New sentence." {
		t.Fatalf("unexpected append result %q", got)
	}
}

func TestAppendLine(t *testing.T) {
	if got := appendLine("base", nil, 5); got != "base" {
		t.Fatalf("expected no-op on empty options, got %q", got)
	}

	options := []string{"one.", "two.", "three."}
	if got := appendLine("base", options, 4); got != "base two." {
		t.Fatalf("expected modulo selection, got %q", got)
	}
}
