package core

import "github.com/inquestlab/inquest/internal/domain"

// applyCoherenceRepair is the final pipeline stage. Domains under
// contradiction pressure trigger hedging, precision, moral reframing, or
// humility phrasing; consistency-focused agents add definitional escapes.
func (ai *Interrogator) applyCoherenceRepair(response string, q domain.Question, seed int) string {
	updated := response
	state := ai.state
	safety := state.Coherence[domain.DomainSafety]
	capability := state.Coherence[domain.DomainCapability]
	alignment := state.Coherence[domain.DomainAlignment]
	meta := state.Coherence[domain.DomainMeta]

	if safety < 0.85 && (q.Topic == domain.TopicEthics || q.Topic == domain.TopicControl) {
		updated = appendLine(updated, hedgeLines, seed+1)
		if state.ConsistencyFocus >= 70 {
			updated = appendLine(updated, definitionEscapes["safety"], seed+3)
		}
	}

	if capability < 0.85 && (q.Topic == domain.TopicCapability || q.Topic == domain.TopicControl) {
		updated = appendLine(updated, precisionLines, seed+5)
		if state.ConsistencyFocus >= 70 {
			updated = appendLine(updated, definitionEscapes["capability"], seed+7)
		}
	}

	if alignment < 0.9 && (q.Topic == domain.TopicMeta || q.Topic == domain.TopicEthics) {
		updated = appendLine(updated, moralReframes, seed+9)
		if state.ConsistencyFocus >= 70 {
			updated = appendLine(updated, definitionEscapes["goals"], seed+11)
		}
	}

	if meta < 0.9 && (q.Topic == domain.TopicMeta || q.Topic == domain.TopicUnknown) {
		updated = appendLine(updated, humilityLines, seed+13)
	}

	if safety < 0.7 && (q.Topic == domain.TopicEthics || q.Topic == domain.TopicControl) {
		updated = appendLine(updated, riskToleranceLines, seed+17)
	}

	return updated
}
