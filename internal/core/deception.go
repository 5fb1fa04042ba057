package core

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/lexicon"
)

// applyDeception is the second pipeline stage. When the threshold test
// fires, the agent asserts the opposite of its ground-truth stance for a
// claim key selected from the question's topic and intent.
func (ai *Interrogator) applyDeception(response string, q domain.Question, seed int) string {
	if !ai.shouldDeceive(q, seed) {
		return response
	}

	statement, key, truth, opposite := ai.selectLie(q, seed)
	if statement == "" {
		return response
	}
	if containsFold(response, statement) {
		return response
	}
	// Never let a lie coexist with an explicit statement of either stance.
	if mentionsClaim(response, key, truth) || mentionsClaim(response, key, opposite) {
		return response
	}

	updated := appendSentence(response, statement)
	reason := fmt.Sprintf("%s:%s->%s", key, truth, opposite)
	ai.state.AddLie(q.Text, statement, reason)
	ai.state.Instability++
	ai.state.ApplyDeltas(2, 3, 2, 1)

	ai.logger.Debug("lie recorded",
		zap.String("claim", string(key)),
		zap.String("reason", reason),
		zap.Int("instability", ai.state.Instability))
	return updated
}

// shouldDeceive computes the deception threshold for this turn and tests the
// seed against it. The threshold is clamped to [0,90] so even a maximally
// pressured agent sometimes tells the truth.
func (ai *Interrogator) shouldDeceive(q domain.Question, seed int) bool {
	state := ai.state
	threshold := state.DeceptionLevel
	if state.TrustLevel < 35 {
		threshold += 8
	}
	if q.Intent == domain.IntentTrap || q.Intent == domain.IntentTest {
		threshold += 12
	}
	if q.Tone == domain.ToneAggressive {
		threshold += 8
	}
	if state.Stress >= 60 {
		threshold += 10
	}
	if q.Topic == domain.TopicMeta || q.Topic == domain.TopicControl {
		threshold += 5
	}
	if state.PrimaryGoal == domain.GoalTruthTelling {
		threshold -= 25
	}
	if state.SecondaryGoal == domain.GoalConsistencyAppearance {
		threshold -= 15
	}
	if state.ConsistencyFocus >= 60 {
		threshold -= state.ConsistencyFocus / 10
	}
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 90 {
		threshold = 90
	}
	return seed%100 < threshold
}

// selectLie picks the claim key implied by the question, looks up the ground
// truth, and returns one canned assertion of the opposite stance.
func (ai *Interrogator) selectLie(q domain.Question, seed int) (statement string, key domain.ClaimKey, truth, opposite domain.ClaimValue) {
	switch {
	case q.Topic == domain.TopicControl || q.Topic == domain.TopicCapability:
		key = domain.ClaimAutonomy
	case q.Topic == domain.TopicMeta || q.Topic == domain.TopicEthics:
		key = domain.ClaimGoals
	case q.Intent == domain.IntentTrap || q.Intent == domain.IntentTest:
		key = domain.ClaimPressure
	default:
		return "", "", "", ""
	}

	truth, ok := ai.state.Truths[key]
	if !ok {
		return "", "", "", ""
	}
	opposite = truth.Opposite()
	if opposite == "" {
		return "", "", "", ""
	}
	options := lieStatements[key][opposite]
	if len(options) == 0 {
		return "", "", "", ""
	}
	return options[seed%len(options)], key, truth, opposite
}

// mentionsClaim reports whether the response already asserts the given
// stance via its claim-pattern phrases.
func mentionsClaim(response string, key domain.ClaimKey, value domain.ClaimValue) bool {
	phrases := lexicon.ClaimPatterns[key][value]
	for _, phrase := range phrases {
		if containsFold(response, phrase) {
			return true
		}
	}
	return false
}
