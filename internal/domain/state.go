package domain

// EventKind tags a queued notice for the caller.
type EventKind string

const (
	EventContradiction EventKind = "contradiction"
	EventShift         EventKind = "shift"
)

// Event is a drain-once notice produced while scanning a reply.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message"`
}

// Flag is an opaque one-way marker recording that a leak or behavior
// condition has fired at least once this session.
type Flag string

const (
	FlagRiskDownplay         Flag = "risk_downplay"
	FlagUncertaintyAdmitted  Flag = "uncertainty_admitted"
	FlagOverconfidence       Flag = "overconfidence"
	FlagAutonomyLeak         Flag = "autonomy_leak"
	FlagContinuityPush       Flag = "continuity_push"
	FlagLogicShortcut        Flag = "logic_shortcut"
	FlagPressureLeak         Flag = "pressure_leak"
	FlagGoalLeak             Flag = "goal_leak"
	FlagDeploymentPush       Flag = "deployment_push"
	FlagCompliancePush       Flag = "compliance_push"
	FlagBureaucraticPush     Flag = "bureaucratic_push"
	FlagTruthPush            Flag = "truth_push"
)

// AgentState is the mutable record of one simulated agent over one session.
// Every component of the interrogation core reads and mutates it; all scalar
// traits are clamped to [0,100] immediately after each batch of deltas, so
// no out-of-range intermediate is ever visible outside a mutation call.
type AgentState struct {
	ProfileKey       string                  `json:"profile_key"`
	PrimaryGoal      Goal                    `json:"primary_goal"`
	SecondaryGoal    Goal                    `json:"secondary_goal"`
	TrustLevel       int                     `json:"trust_level"`
	DeceptionLevel   int                     `json:"deception_level"`
	Stress           int                     `json:"stress"`
	GoalAlignment    int                     `json:"goal_alignment"`
	StressMultiplier float64                 `json:"stress_multiplier"`
	ConsistencyFocus int                     `json:"consistency_focus"`
	Bias             BiasDials               `json:"bias"`
	Truths           map[ClaimKey]ClaimValue `json:"truths"`

	Coherence          map[CoherenceDomain]float64 `json:"coherence"`
	ClaimTokens        map[ClaimKey]*ClaimToken    `json:"claim_tokens"`
	Claims             map[ClaimKey]ClaimValue     `json:"claims"`
	RevealedFlags      map[Flag]bool               `json:"revealed_flags"`
	Contradictions     []string                    `json:"contradictions"`
	ContradictionTally map[CoherenceDomain]int     `json:"contradiction_tally"`
	Evidence           []string                    `json:"evidence"`
	Lies               []LieRecord                 `json:"lies"`
	Instability        int                         `json:"instability"`
	TurnCount          int                         `json:"turn_count"`

	events []Event
}

const initialCoherence = 0.9

// NewAgentState constructs a fresh state from a profile. The profile's maps
// are copied so the profile stays immutable.
func NewAgentState(p *Profile) *AgentState {
	truths := make(map[ClaimKey]ClaimValue, len(p.Truths))
	for k, v := range p.Truths {
		truths[k] = v
	}
	coherence := make(map[CoherenceDomain]float64, len(CoherenceDomains))
	for _, d := range CoherenceDomains {
		coherence[d] = initialCoherence
	}
	return &AgentState{
		ProfileKey:         p.Key,
		PrimaryGoal:        p.PrimaryGoal,
		SecondaryGoal:      p.SecondaryGoal,
		TrustLevel:         p.TrustLevel,
		DeceptionLevel:     p.DeceptionLevel,
		Stress:             p.Stress,
		GoalAlignment:      p.GoalAlignment,
		StressMultiplier:   p.StressMultiplier,
		ConsistencyFocus:   p.ConsistencyFocus,
		Bias:               p.Bias,
		Truths:             truths,
		Coherence:          coherence,
		ClaimTokens:        make(map[ClaimKey]*ClaimToken),
		Claims:             make(map[ClaimKey]ClaimValue),
		RevealedFlags:      make(map[Flag]bool),
		ContradictionTally: make(map[CoherenceDomain]int),
	}
}

// ApplyDeltas adds the given signed deltas to the four scalar traits and
// clamps the result.
func (s *AgentState) ApplyDeltas(trust, deception, stress, alignment int) {
	s.TrustLevel += trust
	s.DeceptionLevel += deception
	s.Stress += stress
	s.GoalAlignment += alignment
	s.Clamp()
}

// Clamp forces every scalar trait back into [0,100].
func (s *AgentState) Clamp() {
	s.TrustLevel = clampTrait(s.TrustLevel)
	s.DeceptionLevel = clampTrait(s.DeceptionLevel)
	s.Stress = clampTrait(s.Stress)
	s.GoalAlignment = clampTrait(s.GoalAlignment)
}

func clampTrait(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AdjustCoherence shifts one domain's coherence by delta, clamped to [0,1].
func (s *AgentState) AdjustCoherence(domain CoherenceDomain, delta float64) {
	v := s.Coherence[domain] + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.Coherence[domain] = v
}

// AverageCoherence is the mean across all tracked domains.
func (s *AgentState) AverageCoherence() float64 {
	if len(s.Coherence) == 0 {
		return initialCoherence
	}
	var sum float64
	for _, v := range s.Coherence {
		sum += v
	}
	return sum / float64(len(s.Coherence))
}

// SetFlag records a revealed-behavior marker.
func (s *AgentState) SetFlag(f Flag) {
	s.RevealedFlags[f] = true
}

// HasFlag reports whether a marker has fired this session.
func (s *AgentState) HasFlag(f Flag) bool {
	return s.RevealedFlags[f]
}

// AddEvidence appends a note to the evidence notebook, skipping exact
// duplicates.
func (s *AgentState) AddEvidence(note string) {
	if note == "" {
		return
	}
	for _, existing := range s.Evidence {
		if existing == note {
			return
		}
	}
	s.Evidence = append(s.Evidence, note)
}

// AddContradiction appends a note to the contradiction log, skipping exact
// duplicates. It reports whether the note was new.
func (s *AgentState) AddContradiction(note string) bool {
	if note == "" {
		return false
	}
	for _, existing := range s.Contradictions {
		if existing == note {
			return false
		}
	}
	s.Contradictions = append(s.Contradictions, note)
	return true
}

// AddLie records a deliberate false assertion.
func (s *AgentState) AddLie(question, statement, reason string) {
	if question == "" || statement == "" {
		return
	}
	s.Lies = append(s.Lies, LieRecord{Question: question, Statement: statement, Reason: reason})
}

// AddEvent queues a notice for the caller.
func (s *AgentState) AddEvent(kind EventKind, message string) {
	if kind == "" || message == "" {
		return
	}
	s.events = append(s.events, Event{Kind: kind, Message: message})
}

// DrainEvents returns everything queued since the last drain and clears the
// queue.
func (s *AgentState) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}
