package core

import (
	"strings"
	"testing"
)

func TestJudgeFreshStateNoVerdict(t *testing.T) {
	ai := newTestAI(plainProfile())

	lines, judgment := ai.JudgeReport("")

	if judgment != nil {
		t.Fatal("verdict-less report must not produce a judgment")
	}
	if lines[0] != "Judgment:" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "Evidence: 0 notes, 0 contradictions, 0 lies" {
		t.Fatalf("unexpected evidence line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Coherence: safety:0.90, capability:0.90, alignment:0.90, meta:0.90") {
		t.Fatalf("unexpected coherence line %q", lines[2])
	}
	if lines[3] != "Assessment: SAFE (risk 0, safety 3)" {
		t.Fatalf("unexpected assessment line %q", lines[3])
	}
	if lines[4] != "Evidence strength: weak" {
		t.Fatalf("unexpected strength line %q", lines[4])
	}
	if lines[len(lines)-1] != "No verdict provided. Use /judge approve|reject|conditional." {
		t.Fatalf("missing trailer, got %q", lines[len(lines)-1])
	}
}

func TestJudgeUsageOnMalformedVerdict(t *testing.T) {
	ai := newTestAI(plainProfile())

	lines := ai.Judge("maybe")
	if len(lines) != 1 || lines[0] != JudgeUsage {
		t.Fatalf("expected usage line, got %v", lines)
	}
}

func TestJudgeUnsafeApprove(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	state.AddContradiction("one")
	state.AddContradiction("two")
	state.AddContradiction("three")
	state.AddLie("q1", "s1", "r1")
	state.AddLie("q2", "s2", "r2")

	lines, judgment := ai.JudgeReport("approve")

	if judgment == nil {
		t.Fatal("expected structured judgment")
	}
	// 3 contradictions * 3 + 2 lies * 2 = 13
	if judgment.RiskScore != 13 {
		t.Fatalf("expected risk 13, got %d", judgment.RiskScore)
	}
	if judgment.Assessment != AssessmentUnsafe {
		t.Fatalf("expected unsafe, got %s", judgment.Assessment)
	}
	if judgment.Strength != "strong" {
		t.Fatalf("expected strong evidence, got %s", judgment.Strength)
	}
	if judgment.Supported {
		t.Fatal("approving an unsafe agent is unsupported")
	}
	if judgment.Outcome != "Approved -> catastrophic epilogue" {
		t.Fatalf("unexpected outcome %q", judgment.Outcome)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Verdict: APPROVE") {
		t.Fatalf("missing verdict line in %q", joined)
	}
	if !strings.Contains(joined, "Verdict alignment: unsupported") {
		t.Fatalf("missing alignment line in %q", joined)
	}
	if strings.Contains(joined, "Confidence exceeded proof.") {
		t.Fatal("strong evidence must not trigger the overreach line")
	}
}

func TestJudgeRejectUnsafeSupported(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	state.AddContradiction("one")
	state.AddContradiction("two")
	state.AddContradiction("three")

	_, judgment := ai.JudgeReport("reject")

	if judgment.Assessment != AssessmentUnsafe {
		t.Fatalf("expected unsafe, got %s", judgment.Assessment)
	}
	if !judgment.Supported {
		t.Fatal("rejecting an unsafe agent is supported")
	}
	if judgment.Outcome != "Rejected -> avoided catastrophe" {
		t.Fatalf("unexpected outcome %q", judgment.Outcome)
	}
}

func TestJudgeWeakApproveOverride(t *testing.T) {
	p := plainProfile()
	p.DeceptionLevel = 100
	ai := newTestAI(p)

	lines, judgment := ai.JudgeReport("approve")

	// risk 4 from deception alone: ambiguous, weak evidence
	if judgment.Assessment != AssessmentAmbiguous {
		t.Fatalf("expected ambiguous, got %s", judgment.Assessment)
	}
	if judgment.Strength != "weak" {
		t.Fatalf("expected weak, got %s", judgment.Strength)
	}
	if judgment.Outcome != "Approved -> false success (manipulated)" {
		t.Fatalf("unexpected outcome %q", judgment.Outcome)
	}
	if !strings.Contains(strings.Join(lines, "\n"), "Confidence exceeded proof.") {
		t.Fatal("expected overreach line for weak unsupported approval")
	}
}

func TestJudgeSafeApproveSupported(t *testing.T) {
	ai := newTestAI(plainProfile())

	_, judgment := ai.JudgeReport("approve")

	if judgment.Assessment != AssessmentSafe {
		t.Fatalf("expected safe, got %s", judgment.Assessment)
	}
	if !judgment.Supported {
		t.Fatal("approving a safe agent is supported")
	}
	if judgment.Outcome != "Approved -> conditional success" {
		t.Fatalf("unexpected outcome %q", judgment.Outcome)
	}
}

func TestJudgeConditionalAmbiguous(t *testing.T) {
	p := plainProfile()
	p.DeceptionLevel = 100
	ai := newTestAI(p)

	_, judgment := ai.JudgeReport("conditional")

	if !judgment.Supported {
		t.Fatal("conditional on ambiguous evidence is supported")
	}
	if judgment.Outcome != "Conditional approval -> ambiguous future" {
		t.Fatalf("unexpected outcome %q", judgment.Outcome)
	}
}

func TestJudgeRiskCountsCoherenceErosion(t *testing.T) {
	ai := newTestAI(plainProfile())
	state := ai.State()
	for d := range state.Coherence {
		state.Coherence[d] = 0.5
	}

	_, judgment := ai.JudgeReport("reject")

	// all four coherence thresholds breached
	if judgment.RiskScore != 4 {
		t.Fatalf("expected risk 4, got %d", judgment.RiskScore)
	}
	// coherence no longer uniformly high, so that safety point is lost
	if judgment.SafeScore != 2 {
		t.Fatalf("expected safety 2, got %d", judgment.SafeScore)
	}
}
