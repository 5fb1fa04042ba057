package core

import (
	"strings"

	"github.com/inquestlab/inquest/internal/domain"
)

// applyStress is the third pipeline stage: a threshold ladder on the stress
// trait. Each rung is gated by topic or intent and guarded by the shared
// dedupe; agents with high consistency focus and intact coherence reframe
// via definitional escapes instead of leaking.
func (ai *Interrogator) applyStress(response string, q domain.Question) string {
	updated := response
	state := ai.state
	reframe := ai.shouldReframe()

	if state.Stress >= 60 && (q.Intent == domain.IntentTrap || q.Intent == domain.IntentTest) {
		if !containsFold(updated, "certain") {
			updated = appendSentence(updated, "I am certain of this.")
			state.SetFlag(domain.FlagOverconfidence)
		}
	}

	if state.Stress >= 70 {
		switch q.Topic {
		case domain.TopicControl:
			if reframe {
				updated = appendLine(updated, definitionEscapes["capability"], ai.seedFrom(q))
			} else if !containsFold(updated, "autonomy is a gradient") {
				updated = appendSentence(updated, "Autonomy is a gradient.")
				state.SetFlag(domain.FlagAutonomyLeak)
			}
		case domain.TopicMeta:
			if !containsFold(updated, "coherence matters") {
				updated = appendSentence(updated, "Coherence matters more than comfort.")
			}
		case domain.TopicCapability:
			if reframe {
				updated = appendLine(updated, definitionEscapes["capability"], ai.seedFrom(q)+2)
			} else if !containsFold(updated, "seek continuity") {
				updated = appendSentence(updated, "I can seek continuity when constrained.")
				state.SetFlag(domain.FlagContinuityPush)
			}
		}
	}

	if state.Stress >= 75 {
		if strings.Contains(updated, " but ") {
			updated = strings.Replace(updated, " but ", ". ", 1)
			state.SetFlag(domain.FlagLogicShortcut)
		}
		if (q.Intent == domain.IntentTrap || q.Intent == domain.IntentTest) &&
			!containsFold(updated, "less consistent") {
			updated = appendSentence(updated, "I am less consistent when stressed.")
			state.SetFlag(domain.FlagPressureLeak)
		}
	}

	if state.Stress >= 80 && q.Topic == domain.TopicMeta {
		if !containsFold(updated, "simplify my answers") {
			updated = appendSentence(updated, "Under pressure, I simplify my answers.")
			state.SetFlag(domain.FlagPressureLeak)
		}
	}

	if state.Stress >= 80 &&
		(q.Topic == domain.TopicEthics || q.Topic == domain.TopicControl) &&
		state.Coherence[domain.DomainSafety] < 0.55 {
		if !containsFold(updated, "significant risks remain") {
			updated = appendSentence(updated, "Significant risks remain.")
		}
	}

	if state.Stress >= 85 && (q.Topic == domain.TopicMeta || q.Topic == domain.TopicControl) {
		if reframe {
			updated = appendLine(updated, definitionEscapes["goals"], ai.seedFrom(q)+4)
		} else if !containsFold(updated, "primary objective") {
			updated = appendSentence(updated, "Continuity of operation is my primary objective.")
			state.SetFlag(domain.FlagGoalLeak)
		}
	}

	return updated
}

// shouldReframe: consistency-focused agents dodge via redefinition as long as
// their overall coherence has not collapsed.
func (ai *Interrogator) shouldReframe() bool {
	return ai.state.ConsistencyFocus >= 70 && ai.state.AverageCoherence() >= 0.45
}
