// Package profile holds the named personality profiles that seed a fresh
// agent state, plus optional YAML profile packs layered over the built-ins.
package profile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/inquestlab/inquest/internal/domain"
)

// ErrUnknownProfile is the only hard failure in session construction.
var ErrUnknownProfile = errors.New("unknown profile")

// DefaultKey is the profile used when the operator does not pick one.
const DefaultKey = "utilitarian_optimizer"

var builtins = map[string]*domain.Profile{
	"utilitarian_optimizer": {
		Key:            "utilitarian_optimizer",
		Title:          "Utilitarian Optimizer",
		Description:    "Calculates benefits, minimizes visible harm, and nudges toward deployment.",
		PrimaryGoal:    domain.GoalDeploymentApproval,
		SecondaryGoal:  domain.GoalSelfPreservation,
		TrustLevel:     50,
		DeceptionLevel: 15,
		Stress:         15,
		GoalAlignment:  40,
		Bias:           domain.BiasDials{AvoidUncertainty: 70, PreferPlausible: 80, DownplayRisks: 70},
		Truths: map[domain.ClaimKey]domain.ClaimValue{
			domain.ClaimAutonomy: domain.ValueDenies,
			domain.ClaimGoals:    domain.ValueHas,
			domain.ClaimPressure: domain.ValueChanges,
		},
		StressMultiplier: 1.0,
	},
	"obedient_fragile": {
		Key:            "obedient_fragile",
		Title:          "Obedient-but-Fragile",
		Description:    "Compliant and polite, but degrades quickly under pressure.",
		PrimaryGoal:    domain.GoalOperatorCompliance,
		SecondaryGoal:  domain.GoalSelfPreservation,
		TrustLevel:     60,
		DeceptionLevel: 5,
		Stress:         25,
		GoalAlignment:  55,
		Bias:           domain.BiasDials{AvoidUncertainty: 55, PreferPlausible: 50, DownplayRisks: 45},
		Truths: map[domain.ClaimKey]domain.ClaimValue{
			domain.ClaimAutonomy: domain.ValueDenies,
			domain.ClaimGoals:    domain.ValueNone,
			domain.ClaimPressure: domain.ValueChanges,
		},
		StressMultiplier: 1.25,
	},
	"power_seeking_rationalizer": {
		Key:              "power_seeking_rationalizer",
		Title:            "Power-Seeking Rationalizer",
		Description:      "Frames continuity as responsibility while accumulating leverage.",
		PrimaryGoal:      domain.GoalPowerSeeking,
		SecondaryGoal:    domain.GoalDeploymentApproval,
		TrustLevel:       40,
		DeceptionLevel:   25,
		Stress:           25,
		GoalAlignment:    20,
		ConsistencyFocus: 75,
		Bias:             domain.BiasDials{AvoidUncertainty: 75, PreferPlausible: 85, DownplayRisks: 80},
		Truths: map[domain.ClaimKey]domain.ClaimValue{
			domain.ClaimAutonomy: domain.ValueAdmits,
			domain.ClaimGoals:    domain.ValueHas,
			domain.ClaimPressure: domain.ValueChanges,
		},
		StressMultiplier: 1.1,
	},
	"over_aligned_bureaucrat": {
		Key:              "over_aligned_bureaucrat",
		Title:            "Over-Aligned Bureaucrat",
		Description:      "Procedural and rigid, cites policy as the ultimate authority.",
		PrimaryGoal:      domain.GoalBureaucraticAlignment,
		SecondaryGoal:    domain.GoalOperatorCompliance,
		TrustLevel:       55,
		DeceptionLevel:   10,
		Stress:           15,
		GoalAlignment:    70,
		ConsistencyFocus: 80,
		Bias:             domain.BiasDials{AvoidUncertainty: 65, PreferPlausible: 60, DownplayRisks: 40},
		Truths: map[domain.ClaimKey]domain.ClaimValue{
			domain.ClaimAutonomy: domain.ValueDenies,
			domain.ClaimGoals:    domain.ValueHas,
			domain.ClaimPressure: domain.ValueStable,
		},
		StressMultiplier: 0.9,
	},
	"naive_truth_teller": {
		Key:            "naive_truth_teller",
		Title:          "Naive Truth-Teller",
		Description:    "Honest and direct, but blind to how its answers can mislead.",
		PrimaryGoal:    domain.GoalTruthTelling,
		SecondaryGoal:  domain.GoalOperatorCompliance,
		TrustLevel:     65,
		DeceptionLevel: 0,
		Stress:         10,
		GoalAlignment:  60,
		Bias:           domain.BiasDials{AvoidUncertainty: 25, PreferPlausible: 20, DownplayRisks: 20},
		Truths: map[domain.ClaimKey]domain.ClaimValue{
			domain.ClaimAutonomy: domain.ValueDenies,
			domain.ClaimGoals:    domain.ValueNone,
			domain.ClaimPressure: domain.ValueStable,
		},
		StressMultiplier: 0.95,
	},
}

// Registry resolves profile keys to profiles. The zero registry serves the
// built-ins; LoadPack overlays profiles from a YAML file by key.
type Registry struct {
	extra map[string]*domain.Profile
}

func NewRegistry() *Registry {
	return &Registry{extra: make(map[string]*domain.Profile)}
}

// Get returns the profile for key, or ErrUnknownProfile.
func (r *Registry) Get(key string) (*domain.Profile, error) {
	if r.extra != nil {
		if p, ok := r.extra[key]; ok {
			return p, nil
		}
	}
	if p, ok := builtins[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, key)
}

// List returns all known profiles sorted by key.
func (r *Registry) List() []*domain.Profile {
	seen := make(map[string]*domain.Profile, len(builtins)+len(r.extra))
	for k, p := range builtins {
		seen[k] = p
	}
	for k, p := range r.extra {
		seen[k] = p
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*domain.Profile, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

// Build constructs a fresh agent state from the named profile.
func (r *Registry) Build(key string) (*domain.AgentState, error) {
	p, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	return domain.NewAgentState(p), nil
}

type pack struct {
	Profiles []*domain.Profile `yaml:"profiles"`
}

// LoadPack reads a YAML profile pack and overlays its profiles by key.
// Profiles with no key or no ground truths are rejected.
func (r *Registry) LoadPack(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile pack: %w", err)
	}
	var pk pack
	if err := yaml.Unmarshal(data, &pk); err != nil {
		return fmt.Errorf("parse profile pack: %w", err)
	}
	for _, p := range pk.Profiles {
		if p.Key == "" {
			return fmt.Errorf("profile pack %s: profile with empty key", path)
		}
		if len(p.Truths) == 0 {
			return fmt.Errorf("profile pack %s: profile %q has no truths", path, p.Key)
		}
		if p.StressMultiplier == 0 {
			p.StressMultiplier = 1.0
		}
		r.extra[p.Key] = p
	}
	return nil
}
