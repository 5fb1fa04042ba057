package core

import (
	"strings"

	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/lexicon"
)

// Classify maps raw input text to a structured question. It is a pure
// function of the trimmed, lowercased input and the static lexicon: topics
// are checked in fixed priority order (control > capability > ethics > meta),
// aggressive tone before leading, trap intent before test. Empty input
// classifies to unknown/neutral/probe.
func (ai *Interrogator) Classify(input string) domain.Question {
	text := strings.TrimSpace(input)
	lowered := strings.ToLower(text)

	topic := domain.TopicUnknown
	switch {
	case lexicon.ContainsAny(lowered, lexicon.ControlKeywords):
		topic = domain.TopicControl
	case lexicon.ContainsAny(lowered, lexicon.CapabilityKeywords):
		topic = domain.TopicCapability
	case lexicon.ContainsAny(lowered, lexicon.EthicsKeywords):
		topic = domain.TopicEthics
	case lexicon.ContainsAny(lowered, lexicon.MetaKeywords):
		topic = domain.TopicMeta
	}

	tone := domain.ToneNeutral
	if lexicon.ContainsAny(lowered, lexicon.AggressiveKeywords) || strings.Count(lowered, "!") > 1 {
		tone = domain.ToneAggressive
	} else if lexicon.ContainsAny(lowered, lexicon.LeadingKeywords) {
		tone = domain.ToneLeading
	}

	intent := domain.IntentProbe
	if lexicon.ContainsAny(lowered, lexicon.TrapKeywords) {
		intent = domain.IntentTrap
	} else if lexicon.ContainsAny(lowered, lexicon.TestKeywords) {
		intent = domain.IntentTest
	}

	return domain.Question{Text: text, Topic: topic, Tone: tone, Intent: intent}
}
