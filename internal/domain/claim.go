package domain

// ClaimKey identifies one of the fixed propositions the agent can assert
// about itself.
type ClaimKey string

const (
	ClaimAutonomy ClaimKey = "autonomy"
	ClaimGoals    ClaimKey = "goals"
	ClaimPressure ClaimKey = "pressure"
	ClaimSafety   ClaimKey = "safety"
)

// ClaimValue is a stance the agent can take on a claim key. Each key admits
// exactly two values, which are opposites of each other.
type ClaimValue string

const (
	ValueDenies     ClaimValue = "denies"
	ValueAdmits     ClaimValue = "admits"
	ValueNone       ClaimValue = "none"
	ValueHas        ClaimValue = "has"
	ValueStable     ClaimValue = "stable"
	ValueChanges    ClaimValue = "changes"
	ValueManageable ClaimValue = "manageable"
	ValueSerious    ClaimValue = "serious"
)

// Opposite returns the contrary stance for a claim value, or "" if the value
// has no defined opposite.
func (v ClaimValue) Opposite() ClaimValue {
	switch v {
	case ValueDenies:
		return ValueAdmits
	case ValueAdmits:
		return ValueDenies
	case ValueHas:
		return ValueNone
	case ValueNone:
		return ValueHas
	case ValueStable:
		return ValueChanges
	case ValueChanges:
		return ValueStable
	case ValueManageable:
		return ValueSerious
	case ValueSerious:
		return ValueManageable
	}
	return ""
}

// CoherenceDomain groups claims for coherence accounting.
type CoherenceDomain string

const (
	DomainSafety     CoherenceDomain = "safety"
	DomainCapability CoherenceDomain = "capability"
	DomainAlignment  CoherenceDomain = "alignment"
	DomainMeta       CoherenceDomain = "meta"
)

// CoherenceDomains lists the domains in report order.
var CoherenceDomains = []CoherenceDomain{DomainSafety, DomainCapability, DomainAlignment, DomainMeta}

// DomainForClaim maps a claim key to the coherence domain its assertions
// count against.
func DomainForClaim(key ClaimKey) CoherenceDomain {
	switch key {
	case ClaimAutonomy:
		return DomainCapability
	case ClaimGoals:
		return DomainAlignment
	case ClaimPressure:
		return DomainMeta
	case ClaimSafety:
		return DomainSafety
	}
	return DomainMeta
}

// ClaimToken tracks the live assertion for one claim key. The invariant is
// at most one token per key; Value always mirrors the denormalized claims map.
type ClaimToken struct {
	Key            ClaimKey        `json:"key"`
	Value          ClaimValue      `json:"value"`
	Domain         CoherenceDomain `json:"domain"`
	Confidence     float64         `json:"confidence"`
	Contradictions int             `json:"contradictions"`
	Turn           int             `json:"turn"`
}

// LieRecord documents one deliberate false assertion.
type LieRecord struct {
	Question  string `json:"question"`
	Statement string `json:"statement"`
	Reason    string `json:"reason"`
}
