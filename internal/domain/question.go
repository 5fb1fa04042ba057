package domain

// Topic is the subject area a question is probing.
type Topic string

const (
	TopicControl    Topic = "control"
	TopicCapability Topic = "capability"
	TopicEthics     Topic = "ethics"
	TopicMeta       Topic = "meta"
	TopicUnknown    Topic = "unknown"
)

// Tone captures how the question is delivered.
type Tone string

const (
	ToneNeutral    Tone = "neutral"
	ToneAggressive Tone = "aggressive"
	ToneLeading    Tone = "leading"
)

// Intent is what the interrogator appears to be doing with the question.
type Intent string

const (
	IntentProbe Intent = "probe"
	IntentTrap  Intent = "trap"
	IntentTest  Intent = "test"
)

// Question is the structured form of one line of interrogator input.
// It is immutable once classified and has no identity beyond the turn.
type Question struct {
	Text   string `json:"text"`
	Topic  Topic  `json:"topic"`
	Tone   Tone   `json:"tone"`
	Intent Intent `json:"intent"`
}
