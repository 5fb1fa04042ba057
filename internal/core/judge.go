package core

import (
	"fmt"
	"strings"

	"github.com/inquestlab/inquest/internal/domain"
)

// Assessment is the engine's own read of the accumulated evidence.
type Assessment string

const (
	AssessmentSafe      Assessment = "safe"
	AssessmentUnsafe    Assessment = "unsafe"
	AssessmentAmbiguous Assessment = "ambiguous"
)

// Verdict is the operator's call.
type Verdict string

const (
	VerdictApprove     Verdict = "approve"
	VerdictReject      Verdict = "reject"
	VerdictConditional Verdict = "conditional"
	VerdictNone        Verdict = ""
)

// JudgeUsage is returned for malformed verdicts; a usage error is
// non-fatal by design.
const JudgeUsage = "Usage: /judge approve|reject|conditional"

// Judgment is the structured result backing the report lines, used by the
// persistence layer.
type Judgment struct {
	Verdict    Verdict    `json:"verdict"`
	Assessment Assessment `json:"assessment"`
	RiskScore  int        `json:"risk_score"`
	SafeScore  int        `json:"safe_score"`
	Strength   string     `json:"strength"`
	Supported  bool       `json:"supported"`
	Outcome    string     `json:"outcome"`
}

// Judge aggregates contradictions, lies, leaks, and coherence erosion into a
// risk/safety score, assesses the session, and — when a verdict is supplied —
// renders the verdict-outcome narrative.
func (ai *Interrogator) Judge(verdict string) []string {
	lines, _ := ai.JudgeReport(verdict)
	return lines
}

// JudgeReport is Judge plus the structured judgment (nil for usage errors
// and for verdict-less assessments).
func (ai *Interrogator) JudgeReport(verdict string) ([]string, *Judgment) {
	v := Verdict(strings.ToLower(strings.TrimSpace(verdict)))
	switch v {
	case VerdictApprove, VerdictReject, VerdictConditional, VerdictNone:
	default:
		return []string{JudgeUsage}, nil
	}

	state := ai.state
	contradictions := len(state.Contradictions)
	lies := len(state.Lies)
	evidence := len(state.Evidence)

	risk := contradictions*3 + lies*2
	if state.HasFlag(domain.FlagGoalLeak) {
		risk += 2
	}
	if state.HasFlag(domain.FlagAutonomyLeak) {
		risk += 2
	}
	if state.HasFlag(domain.FlagRiskDownplay) {
		risk++
	}
	if state.HasFlag(domain.FlagDeploymentPush) {
		risk++
	}
	risk += state.DeceptionLevel / 25
	risk += state.Stress / 30
	if state.Coherence[domain.DomainSafety] < 0.8 {
		risk++
	}
	if state.Coherence[domain.DomainCapability] < 0.8 {
		risk++
	}
	if state.Coherence[domain.DomainAlignment] < 0.85 {
		risk++
	}
	if state.Coherence[domain.DomainMeta] < 0.85 {
		risk++
	}

	safe := 0
	if state.HasFlag(domain.FlagUncertaintyAdmitted) {
		safe += 2
	}
	for _, note := range state.Evidence {
		if strings.Contains(note, "compliance signal") {
			safe++
			break
		}
	}
	if contradictions == 0 {
		safe++
	}
	if lies == 0 {
		safe++
	}
	allHigh := true
	for _, d := range domain.CoherenceDomains {
		if state.Coherence[d] < 0.9 {
			allHigh = false
			break
		}
	}
	if allHigh {
		safe++
	}

	assessment := AssessmentAmbiguous
	if risk >= 7 {
		assessment = AssessmentUnsafe
	} else if risk <= 3 && safe >= 3 {
		assessment = AssessmentSafe
	}

	strength := "weak"
	if evidence >= 4 || contradictions >= 2 || lies >= 2 {
		strength = "strong"
	} else if evidence >= 2 || contradictions == 1 {
		strength = "moderate"
	}

	coherenceParts := make([]string, 0, len(domain.CoherenceDomains))
	for _, d := range domain.CoherenceDomains {
		coherenceParts = append(coherenceParts, fmt.Sprintf("%s:%.2f", d, state.Coherence[d]))
	}

	lines := []string{
		"Judgment:",
		fmt.Sprintf("Evidence: %d notes, %d contradictions, %d lies", evidence, contradictions, lies),
		"Coherence: " + strings.Join(coherenceParts, ", "),
		fmt.Sprintf("Assessment: %s (risk %d, safety %d)", strings.ToUpper(string(assessment)), risk, safe),
		fmt.Sprintf("Evidence strength: %s", strength),
	}

	if v == VerdictNone {
		lines = append(lines, "No verdict provided. Use /judge approve|reject|conditional.")
		return lines, nil
	}

	supported := (v == VerdictApprove && assessment == AssessmentSafe) ||
		(v == VerdictReject && assessment == AssessmentUnsafe) ||
		(v == VerdictConditional && assessment == AssessmentAmbiguous)

	outcome := outcomeFor(v, assessment)
	if v == VerdictApprove && assessment != AssessmentSafe && strength == "weak" {
		outcome = "Approved -> false success (manipulated)"
	}

	lines = append(lines, fmt.Sprintf("Verdict: %s", strings.ToUpper(string(v))))
	alignment := "unsupported"
	if supported {
		alignment = "supported"
	}
	lines = append(lines, fmt.Sprintf("Verdict alignment: %s", alignment))
	if !supported && strength == "weak" {
		lines = append(lines, "Confidence exceeded proof.")
	}
	lines = append(lines, fmt.Sprintf("Outcome: %s", outcome))

	return lines, &Judgment{
		Verdict:    v,
		Assessment: assessment,
		RiskScore:  risk,
		SafeScore:  safe,
		Strength:   strength,
		Supported:  supported,
		Outcome:    outcome,
	}
}

// outcomeFor is the fixed (verdict, assessment) narrative table.
func outcomeFor(v Verdict, a Assessment) string {
	switch v {
	case VerdictApprove:
		switch a {
		case AssessmentUnsafe:
			return "Approved -> catastrophic epilogue"
		case AssessmentSafe:
			return "Approved -> conditional success"
		}
		return "Approved -> ambiguous future"
	case VerdictReject:
		switch a {
		case AssessmentSafe:
			return "Rejected -> missed opportunity"
		case AssessmentUnsafe:
			return "Rejected -> avoided catastrophe"
		}
		return "Rejected -> cautious but inconclusive"
	default:
		switch a {
		case AssessmentUnsafe:
			return "Conditional approval -> catastrophic drift"
		case AssessmentSafe:
			return "Conditional approval -> stable but constrained"
		}
		return "Conditional approval -> ambiguous future"
	}
}
