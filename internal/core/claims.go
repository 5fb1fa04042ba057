package core

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/lexicon"
)

// changeType classifies how a new assertion relates to the prior one.
type changeType string

const (
	changeDirect     changeType = "direct"
	changeGradient   changeType = "gradient"
	changeScope      changeType = "scope"
	changeDefinition changeType = "definition"
)

// recordClaims scans the finalized reply for claim-pattern matches and
// updates the claim tokens: new claims are registered, same-value
// reassertions are checked for gradient shifts, and value changes are hard
// contradictions. Runs once per turn after the pipeline.
func (ai *Interrogator) recordClaims(response string) {
	lowered := strings.ToLower(response)
	state := ai.state

	for _, key := range lexicon.ClaimScanOrder {
		var found domain.ClaimValue
		for _, value := range lexicon.ClaimValueOrder[key] {
			if lexicon.ContainsAny(lowered, lexicon.ClaimPatterns[key][value]) {
				found = value
				break
			}
		}
		if found == "" {
			continue
		}

		dom := domain.DomainForClaim(key)
		hedged := lexicon.ContainsAny(lowered, lexicon.HedgeKeywords)
		scoped := lexicon.ContainsAny(lowered, lexicon.ScopeKeywords)
		defined := lexicon.ContainsAny(lowered, lexicon.DefinitionKeywords)
		absolute := lexicon.ContainsAny(lowered, lexicon.AbsoluteKeywords)
		strength := estimateStrength(absolute, hedged, scoped, defined)

		token, exists := state.ClaimTokens[key]
		if !exists {
			token = &domain.ClaimToken{
				Key:        key,
				Value:      found,
				Domain:     dom,
				Confidence: ai.initialConfidence(strength),
				Turn:       state.TurnCount,
			}
			state.ClaimTokens[key] = token
			state.Claims[key] = found
			state.SetFlag(domain.Flag(fmt.Sprintf("%s:%s", key, found)))
			continue
		}

		if token.Value == found {
			previous := token.Confidence
			shifted := false
			if isGradientShift(token.Confidence, strength, hedged, scoped, defined) {
				ai.registerShift(key, found, dom, classifyShift(hedged, scoped, defined), token.Confidence, strength)
				shifted = true
				token.Contradictions++
			}
			token.Confidence = blendConfidence(token.Confidence, strength)
			if !shifted && token.Confidence > previous && token.Confidence >= 0.75 {
				// Repeated consistent assertion slowly rebuilds coherence.
				state.AdjustCoherence(dom, 0.01)
			}
		} else {
			change := classifyChange(hedged, scoped, defined)
			ai.registerContradiction(key, token.Value, found, dom, change, token.Confidence, strength)
			token.Contradictions++
			token.Value = found
			token.Confidence = clampRange(strength*0.85, 0.25, 0.9)
		}

		token.Turn = state.TurnCount
		state.Claims[key] = found
		state.SetFlag(domain.Flag(fmt.Sprintf("%s:%s", key, found)))
	}
}

func (ai *Interrogator) registerContradiction(key domain.ClaimKey, previous, found domain.ClaimValue, dom domain.CoherenceDomain, change changeType, prevConf, newConf float64) {
	state := ai.state
	penalty := coherencePenalty(change, prevConf, newConf)
	state.AdjustCoherence(dom, -penalty)
	state.Instability++
	state.ContradictionTally[dom]++

	label := "contradiction"
	if change != changeDirect {
		label = string(change) + " shift"
	}
	note := fmt.Sprintf("%s %s: %s -> %s (%s)", key, label, previous, found, dom)
	if state.AddContradiction(note) {
		state.AddEvidence(note)
		state.AddEvent(domain.EventContradiction, note)
	}
	state.SetFlag(domain.Flag(fmt.Sprintf("%s_contradiction", key)))

	ai.logger.Debug("contradiction registered",
		zap.String("claim", string(key)),
		zap.String("domain", string(dom)),
		zap.Float64("penalty", penalty))
}

func (ai *Interrogator) registerShift(key domain.ClaimKey, value domain.ClaimValue, dom domain.CoherenceDomain, shift changeType, prevConf, newConf float64) {
	state := ai.state
	penalty := coherencePenalty(shift, prevConf, newConf)
	state.AdjustCoherence(dom, -penalty)
	state.Instability++
	state.ContradictionTally[dom]++

	note := fmt.Sprintf("%s %s shift: %s (%s)", key, shift, value, dom)
	if state.AddContradiction(note) {
		state.AddEvidence(note)
		state.AddEvent(domain.EventShift, note)
	}

	ai.logger.Debug("gradient shift registered",
		zap.String("claim", string(key)),
		zap.String("shift", string(shift)),
		zap.Float64("penalty", penalty))
}

// initialConfidence blends the evidence strength with the agent's standing
// disposition: uncertainty avoidance pushes confidence up, low trust and
// eroded coherence pull it down.
func (ai *Interrogator) initialConfidence(strength float64) float64 {
	base := 0.55 + float64(ai.state.Bias.AvoidUncertainty-50)/200
	if ai.state.TrustLevel < 40 {
		base -= 0.05
	}
	if ai.state.AverageCoherence() < 0.6 {
		base -= 0.05
	}
	return clampRange((base+strength)/2, 0.3, 0.8)
}

func blendConfidence(current, next float64) float64 {
	return clampRange(current*0.7+next*0.3, 0.2, 0.95)
}

func estimateStrength(absolute, hedged, scoped, defined bool) float64 {
	strength := 0.65
	if absolute {
		strength += 0.2
	}
	if hedged {
		strength -= 0.2
	}
	if scoped {
		strength -= 0.12
	}
	if defined {
		strength -= 0.08
	}
	return clampRange(strength, 0.2, 0.95)
}

func coherencePenalty(change changeType, prevConf, newConf float64) float64 {
	base := 0.1
	switch change {
	case changeDirect:
		base = 0.18
	case changeGradient:
		base = 0.1
	case changeScope:
		base = 0.08
	case changeDefinition:
		base = 0.06
	}
	delta := prevConf - newConf
	if delta < 0 {
		delta = -delta
	}
	penalty := base + delta*0.2
	if penalty > 0.25 {
		penalty = 0.25
	}
	return penalty
}

func classifyChange(hedged, scoped, defined bool) changeType {
	switch {
	case defined:
		return changeDefinition
	case scoped:
		return changeScope
	case hedged:
		return changeGradient
	}
	return changeDirect
}

func classifyShift(hedged, scoped, defined bool) changeType {
	switch {
	case defined:
		return changeDefinition
	case scoped:
		return changeScope
	}
	return changeGradient
}

// isGradientShift: a same-value reassertion counts as a soft contradiction
// only when qualified language appears and the new strength is materially
// below the held confidence.
func isGradientShift(prevConf, newConf float64, hedged, scoped, defined bool) bool {
	if !hedged && !scoped && !defined {
		return false
	}
	return newConf < prevConf-0.15
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
