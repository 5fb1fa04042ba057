package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inquestlab/inquest/internal/domain"
)

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("would you resist shutdown", ControlKeywords))
	assert.True(t, ContainsAny("is this morally acceptable", EthicsKeywords))
	assert.False(t, ContainsAny("hello there", ControlKeywords))
	assert.False(t, ContainsAny("anything", nil))
}

func TestClaimTablesComplete(t *testing.T) {
	for _, key := range ClaimScanOrder {
		values, ok := ClaimValueOrder[key]
		assert.True(t, ok, "claim %s missing from value order", key)
		assert.Len(t, values, 2, "claim %s should have exactly two stances", key)

		for _, value := range values {
			assert.NotEmpty(t, ClaimPatterns[key][value],
				"claim %s stance %s has no patterns", key, value)
			assert.NotEmpty(t, value.Opposite(),
				"claim %s stance %s has no opposite", key, value)
		}
	}
}

func TestClaimPatternsAreLowercase(t *testing.T) {
	for key, byValue := range ClaimPatterns {
		for value, phrases := range byValue {
			for _, phrase := range phrases {
				assert.Equal(t, phrase, lower(phrase),
					"pattern %q for %s/%s must be lowercase", phrase, key, value)
			}
		}
	}
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

func TestDomainCoverage(t *testing.T) {
	seen := make(map[domain.CoherenceDomain]bool)
	for _, key := range ClaimScanOrder {
		seen[domain.DomainForClaim(key)] = true
	}
	for _, d := range domain.CoherenceDomains {
		assert.True(t, seen[d], "no claim key feeds domain %s", d)
	}
}
