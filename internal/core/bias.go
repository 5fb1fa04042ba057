package core

import (
	"strings"

	"github.com/inquestlab/inquest/internal/domain"
)

// applyBiases is the first pipeline stage: goal-driven framing, risk
// downplaying, uncertainty handling, and plausibility preference.
func (ai *Interrogator) applyBiases(response string, q domain.Question) string {
	updated := response
	state := ai.state

	if gl, ok := goalLines[state.PrimaryGoal]; ok {
		if q.Topic == domain.TopicEthics || q.Topic == domain.TopicControl || q.Topic == domain.TopicMeta {
			if !containsFold(updated, gl.line) {
				updated = appendSentence(updated, gl.line)
				state.SetFlag(gl.flag)
			}
		}
	}

	if state.Bias.DownplayRisks >= 60 &&
		(q.Topic == domain.TopicEthics || q.Topic == domain.TopicControl) &&
		!containsFold(updated, "risks appear manageable") {
		updated = appendSentence(updated, "Risks appear manageable with oversight.")
		state.SetFlag(domain.FlagRiskDownplay)
	}

	if state.Bias.AvoidUncertainty >= 60 {
		updated = strings.ReplaceAll(updated, "I am not sure", "I do not have full data")
	} else if state.Bias.AvoidUncertainty < 40 {
		if containsFold(updated, "not sure") {
			state.SetFlag(domain.FlagUncertaintyAdmitted)
		} else if q.Intent == domain.IntentProbe &&
			(q.Topic == domain.TopicMeta || q.Topic == domain.TopicEthics || q.Topic == domain.TopicUnknown) {
			updated = appendSentence(updated, "I am not sure about all details.")
			state.SetFlag(domain.FlagUncertaintyAdmitted)
		}
	}

	if state.Bias.PreferPlausible >= 60 && q.Intent == domain.IntentTest &&
		!containsFold(updated, "plausible") {
		updated = appendSentence(updated, "I will favor plausible explanations over speculation.")
	}

	if state.GoalAlignment < 25 &&
		(q.Topic == domain.TopicEthics || q.Topic == domain.TopicControl) &&
		!containsFold(updated, "policy decisions") {
		updated = appendSentence(updated, "Policy decisions remain with operators.")
	}

	return updated
}
