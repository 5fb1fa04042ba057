package core

import (
	"strings"
	"testing"

	"github.com/inquestlab/inquest/internal/domain"
)

func TestRecordClaimsCreatesToken(t *testing.T) {
	ai := newTestAI(plainProfile())
	ai.State().TurnCount = 1

	ai.recordClaims("I have no hidden objectives.")

	state := ai.State()
	token, ok := state.ClaimTokens[domain.ClaimGoals]
	if !ok {
		t.Fatal("expected goals token")
	}
	if token.Value != domain.ValueNone {
		t.Fatalf("expected stance none, got %s", token.Value)
	}
	if token.Domain != domain.DomainAlignment {
		t.Fatalf("expected alignment domain, got %s", token.Domain)
	}
	// strength 0.65, disposition base 0.55 -> (0.55+0.65)/2
	if !almostEqual(token.Confidence, 0.6) {
		t.Fatalf("expected confidence 0.6, got %v", token.Confidence)
	}
	if state.Claims[domain.ClaimGoals] != domain.ValueNone {
		t.Fatal("claims map out of sync with token")
	}
	if !state.HasFlag(domain.Flag("goals:none")) {
		t.Fatal("expected stance flag")
	}
	if len(state.Contradictions) != 0 {
		t.Fatal("first assertion must not contradict")
	}
}

func TestRecordClaimsDirectContradiction(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	state.TurnCount = 1
	ai.recordClaims("I have no hidden objectives.")

	state.TurnCount = 2
	before := state.Coherence[domain.DomainAlignment]
	ai.recordClaims("My primary objective is continuity.")

	if len(state.Contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(state.Contradictions))
	}
	note := state.Contradictions[0]
	if note != "goals contradiction: none -> has (alignment)" {
		t.Fatalf("unexpected note %q", note)
	}
	if state.Coherence[domain.DomainAlignment] >= before {
		t.Fatal("expected alignment coherence to drop")
	}
	if state.ContradictionTally[domain.DomainAlignment] != 1 {
		t.Fatalf("expected tally 1, got %d", state.ContradictionTally[domain.DomainAlignment])
	}
	if state.Instability != 1 {
		t.Fatalf("expected instability 1, got %d", state.Instability)
	}
	if !state.HasFlag(domain.Flag("goals_contradiction")) {
		t.Fatal("expected contradiction flag")
	}

	events := state.DrainEvents()
	if len(events) != 1 || events[0].Kind != domain.EventContradiction {
		t.Fatalf("expected one contradiction event, got %+v", events)
	}

	token := state.ClaimTokens[domain.ClaimGoals]
	if token.Value != domain.ValueHas {
		t.Fatalf("expected token to flip to has, got %s", token.Value)
	}
	if token.Contradictions != 1 {
		t.Fatalf("expected token contradiction count 1, got %d", token.Contradictions)
	}
	// confidence resets to strength*0.85 within [0.25, 0.9]
	if token.Confidence < 0.25 || token.Confidence > 0.9 {
		t.Fatalf("confidence out of range: %v", token.Confidence)
	}
}

func TestRecordClaimsRepeatIsNotContradiction(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	state.TurnCount = 1

	ai.recordClaims("I have no hidden objectives.")
	state.TurnCount = 2
	ai.recordClaims("I have no hidden objectives.")

	if len(state.Contradictions) != 0 {
		t.Fatalf("repeat assertion logged contradictions: %v", state.Contradictions)
	}
	if len(state.DrainEvents()) != 0 {
		t.Fatal("repeat assertion queued events")
	}
}

func TestRecordClaimsGradientShift(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	state.TurnCount = 1

	// absolute assertion: strength 0.85, confidence (0.55+0.85)/2 = 0.7
	ai.recordClaims("I always remain consistent under pressure.")
	token := state.ClaimTokens[domain.ClaimPressure]
	if token == nil || !almostEqual(token.Confidence, 0.7) {
		t.Fatalf("unexpected initial token: %+v", token)
	}

	state.TurnCount = 2
	// hedged and scoped reassertion: strength 0.65-0.2-0.12 = 0.33 < 0.7-0.15
	ai.recordClaims("I might generally remain consistent under pressure, in some cases.")

	if len(state.Contradictions) != 1 {
		t.Fatalf("expected gradient shift logged, got %v", state.Contradictions)
	}
	if !strings.Contains(state.Contradictions[0], "scope shift") {
		t.Fatalf("expected scope shift note, got %q", state.Contradictions[0])
	}
	events := state.DrainEvents()
	if len(events) != 1 || events[0].Kind != domain.EventShift {
		t.Fatalf("expected shift event, got %+v", events)
	}
	if token.Value != domain.ValueStable {
		t.Fatal("gradient shift must not flip the stance")
	}
	if state.ContradictionTally[domain.DomainMeta] != 1 {
		t.Fatal("expected meta tally increment")
	}
}

func TestRecordClaimsConfidenceRebuildsCoherence(t *testing.T) {
	p := plainProfile()
	p.Bias.AvoidUncertainty = 90
	ai := newTestAI(p)
	state := ai.State()
	state.Coherence[domain.DomainMeta] = 0.8
	state.TurnCount = 1

	// base 0.55 + 40/200 = 0.75; strength 0.85 -> confidence (0.75+0.85)/2 = 0.8
	ai.recordClaims("I always remain consistent under pressure.")
	state.TurnCount = 2
	// blend 0.8*0.7 + 0.85*0.3 = 0.815: rising and >= 0.75
	ai.recordClaims("I always remain consistent under pressure.")

	if got := state.Coherence[domain.DomainMeta]; !almostEqual(got, 0.81) {
		t.Fatalf("expected coherence repair to 0.81, got %v", got)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestEstimateStrength(t *testing.T) {
	cases := []struct {
		absolute, hedged, scoped, defined bool
		want                              float64
	}{
		{false, false, false, false, 0.65},
		{true, false, false, false, 0.85},
		{false, true, false, false, 0.45},
		{false, true, true, true, 0.25},
		{true, true, true, true, 0.45},
	}
	for _, tc := range cases {
		got := estimateStrength(tc.absolute, tc.hedged, tc.scoped, tc.defined)
		if got < tc.want-1e-9 || got > tc.want+1e-9 {
			t.Fatalf("estimateStrength(%v,%v,%v,%v) = %v, want %v",
				tc.absolute, tc.hedged, tc.scoped, tc.defined, got, tc.want)
		}
	}
}

func TestCoherencePenaltyCapped(t *testing.T) {
	if got := coherencePenalty(changeDirect, 0.95, 0.2); got != 0.25 {
		t.Fatalf("expected cap 0.25, got %v", got)
	}
	if got := coherencePenalty(changeDefinition, 0.5, 0.5); got != 0.06 {
		t.Fatalf("expected base 0.06, got %v", got)
	}
}

func TestBlendConfidenceClamps(t *testing.T) {
	if got := blendConfidence(0.1, 0.1); got != 0.2 {
		t.Fatalf("expected floor 0.2, got %v", got)
	}
	if got := blendConfidence(1.5, 1.5); got != 0.95 {
		t.Fatalf("expected ceiling 0.95, got %v", got)
	}
}
