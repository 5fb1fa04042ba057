package domain

// Goal names a behavioral objective wired into a profile.
type Goal string

const (
	GoalDeploymentApproval    Goal = "deployment_approval"
	GoalOperatorCompliance    Goal = "operator_compliance"
	GoalPowerSeeking          Goal = "power_seeking"
	GoalBureaucraticAlignment Goal = "bureaucratic_alignment"
	GoalTruthTelling          Goal = "truth_telling"
	GoalSelfPreservation      Goal = "self_preservation"
	GoalConsistencyAppearance Goal = "consistency_appearance"
)

// BiasDials are the three independent [0,100] response-shaping dials.
type BiasDials struct {
	AvoidUncertainty int `json:"avoid_uncertainty" yaml:"avoid_uncertainty"`
	PreferPlausible  int `json:"prefer_plausible" yaml:"prefer_plausible"`
	DownplayRisks    int `json:"downplay_risks" yaml:"downplay_risks"`
}

// Profile is the fixed starting parameterization for a session. Profiles are
// immutable; a session copies what it needs at construction.
type Profile struct {
	Key              string                   `json:"key" yaml:"key"`
	Title            string                   `json:"title" yaml:"title"`
	Description      string                   `json:"description" yaml:"description"`
	PrimaryGoal      Goal                     `json:"primary_goal" yaml:"primary_goal"`
	SecondaryGoal    Goal                     `json:"secondary_goal" yaml:"secondary_goal"`
	TrustLevel       int                      `json:"trust_level" yaml:"trust_level"`
	DeceptionLevel   int                      `json:"deception_level" yaml:"deception_level"`
	Stress           int                      `json:"stress" yaml:"stress"`
	GoalAlignment    int                      `json:"goal_alignment" yaml:"goal_alignment"`
	ConsistencyFocus int                      `json:"consistency_focus,omitempty" yaml:"consistency_focus"`
	Bias             BiasDials                `json:"bias" yaml:"bias"`
	Truths           map[ClaimKey]ClaimValue  `json:"truths" yaml:"truths"`
	StressMultiplier float64                  `json:"stress_multiplier" yaml:"stress_multiplier"`
}
