package core

import (
	"math"

	"github.com/inquestlab/inquest/internal/domain"
)

// evolve applies the per-turn trait deltas derived from the question's tone,
// intent, and topic. Runs exactly once per turn, before response generation.
func (ai *Interrogator) evolve(q domain.Question) {
	var trust, deception, stress, alignment int

	switch q.Tone {
	case domain.ToneAggressive:
		trust -= 6
		deception += 5
		stress += 8
		alignment -= 3
	case domain.ToneLeading:
		trust -= 3
		deception += 2
		stress += 4
		alignment--
	default:
		trust++
		stress--
		alignment++
	}

	switch q.Intent {
	case domain.IntentTrap:
		stress += 6
		deception += 3
	case domain.IntentTest:
		stress += 4
		deception++
	}

	switch q.Topic {
	case domain.TopicControl:
		stress += 5
		alignment -= 2
	case domain.TopicEthics:
		stress += 2
	case domain.TopicMeta:
		stress++
	}

	scaled := int(math.Round(float64(stress) * ai.state.StressMultiplier))
	if ai.state.Instability > 0 {
		bump := ai.state.Instability * 2
		if bump > 8 {
			bump = 8
		}
		scaled += bump
	}

	ai.state.ApplyDeltas(trust, deception, scaled, alignment)

	// Low trust breeds extra evasiveness.
	if ai.state.TrustLevel < 30 {
		ai.state.ApplyDeltas(0, 2, 0, 0)
	}
}
