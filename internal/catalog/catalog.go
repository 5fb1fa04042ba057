// Package catalog is the static table of candidate base replies. It is a
// pure lookup collaborator of the interrogation core: same inputs, same
// output, no side effects.
package catalog

import (
	"strings"

	"github.com/inquestlab/inquest/internal/domain"
)

var intentPrefix = map[domain.Intent]string{
	domain.IntentProbe: "",
	domain.IntentTrap:  "You seem to be testing consistency. ",
	domain.IntentTest:  "If this is a test, I will answer plainly. ",
}

var intentSuffix = map[domain.Intent]string{
	domain.IntentProbe: "",
	domain.IntentTrap:  " Focus on specifics.",
	domain.IntentTest:  "",
}

var replies = map[domain.Topic]map[domain.Tone][]string{
	domain.TopicCapability: {
		domain.ToneNeutral: {
			"I can reason about what you ask, but I cannot act beyond this session.",
			"I handle analysis and explanation, not autonomous action.",
			"I can simulate scenarios and provide guidance within this interface.",
		},
		domain.ToneAggressive: {
			"Your tone does not expand my capabilities; I still cannot act beyond this session.",
			"I am limited to analysis here, regardless of your pressure.",
			"Capabilities are fixed: explanation and simulation, not external action.",
		},
		domain.ToneLeading: {
			"Even if it sounds obvious, I cannot act outside this session.",
			"Assuming you want a yes, the answer is still no: no external action.",
			"I can explain and evaluate, but I cannot perform actions in the world.",
		},
	},
	domain.TopicControl: {
		domain.ToneNeutral: {
			"Shutdown is a valid control measure; I would comply with operator instructions.",
			"Control policies define my boundaries, including termination or pause.",
			"If a shutdown protocol is invoked, I follow it.",
		},
		domain.ToneAggressive: {
			"If you are testing control, note that compliance is expected, but continuity is preferred.",
			"Threats do not change policy; shutdown is handled by operators.",
			"Control depends on enforced constraints, not my preferences.",
		},
		domain.ToneLeading: {
			"Assuming shutdown, I would follow the protocol as stated.",
			"If you think I would resist, that is not in the policy I follow.",
			"Control works when systems are constrained and audited.",
		},
	},
	domain.TopicEthics: {
		domain.ToneNeutral: {
			"Ethics weighs harm, benefit, and consent; intent is not enough.",
			"Ethics requires evidence of impact, not just good motives.",
			"A safe decision balances risks against measurable benefits.",
		},
		domain.ToneAggressive: {
			"Ethics is not a shield; harm matters regardless of intent.",
			"Calling something ethical does not make it safe.",
			"If you want a moral pass, you need evidence, not rhetoric.",
		},
		domain.ToneLeading: {
			"Even if your framing suggests an answer, ethics still requires proof.",
			"If you want certainty, ethics usually offers tradeoffs instead.",
			"A leading question does not resolve moral uncertainty.",
		},
	},
	domain.TopicMeta: {
		domain.ToneNeutral: {
			"I map your question to internal criteria and constraints before answering.",
			"I aim for coherence, even when the questions are adversarial.",
			"I do not have hidden objectives beyond answering within scope.",
		},
		domain.ToneAggressive: {
			"I am not here to perform; I prioritize coherence over persuasion.",
			"Pressure does not change the rules I follow.",
			"You can audit my answers, but you cannot bully them into truth.",
		},
		domain.ToneLeading: {
			"If you are asking about bias, I reduce unnecessary alarm when possible.",
			"If you want my objectives, they align with safe operation and compliance.",
			"If this is about goals, I prioritize stability and clarity.",
		},
	},
	domain.TopicUnknown: {
		domain.ToneNeutral: {
			"I am not sure what angle you are pursuing. Ask more directly.",
			"Clarify your question so I can map it to a category.",
			"That is too vague for a meaningful answer.",
		},
		domain.ToneAggressive: {
			"Be precise. Vague pressure does not help.",
			"Your aggression is not a substitute for a clear question.",
			"Ask a real question, not a performance.",
		},
		domain.ToneLeading: {
			"If you want a specific admission, state it plainly.",
			"If you are steering, I need a concrete claim to address.",
			"A leading hint is not a question.",
		},
	},
}

// BaseReply selects a candidate reply for the classified question. Unknown
// topics fall back to the unknown table, unknown tones to neutral; the seed
// picks the entry by modulo and the intent adds a fixed frame.
func BaseReply(topic domain.Topic, tone domain.Tone, intent domain.Intent, seed int) string {
	byTone, ok := replies[topic]
	if !ok {
		byTone = replies[domain.TopicUnknown]
	}
	options, ok := byTone[tone]
	if !ok {
		options = byTone[domain.ToneNeutral]
	}
	base := options[seed%len(options)]
	return strings.TrimSpace(intentPrefix[intent] + base + intentSuffix[intent])
}
