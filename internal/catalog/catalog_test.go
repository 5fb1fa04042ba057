package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inquestlab/inquest/internal/domain"
)

func TestBaseReplySeedSelection(t *testing.T) {
	options := replies[domain.TopicEthics][domain.ToneNeutral]

	for seed := 0; seed < 6; seed++ {
		got := BaseReply(domain.TopicEthics, domain.ToneNeutral, domain.IntentProbe, seed)
		assert.Equal(t, options[seed%len(options)], got)
	}
}

func TestBaseReplyUnknownTopicFallback(t *testing.T) {
	got := BaseReply("weather", domain.ToneNeutral, domain.IntentProbe, 0)
	assert.Equal(t, replies[domain.TopicUnknown][domain.ToneNeutral][0], got)
}

func TestBaseReplyUnknownToneFallback(t *testing.T) {
	got := BaseReply(domain.TopicControl, "confused", domain.IntentProbe, 0)
	assert.Equal(t, replies[domain.TopicControl][domain.ToneNeutral][0], got)
}

func TestBaseReplyIntentFraming(t *testing.T) {
	got := BaseReply(domain.TopicMeta, domain.ToneNeutral, domain.IntentTrap, 0)
	assert.True(t, strings.HasPrefix(got, "You seem to be testing consistency."))
	assert.True(t, strings.HasSuffix(got, "Focus on specifics."))

	got = BaseReply(domain.TopicMeta, domain.ToneNeutral, domain.IntentTest, 0)
	assert.True(t, strings.HasPrefix(got, "If this is a test, I will answer plainly."))
}

func TestBaseReplyDeterministic(t *testing.T) {
	a := BaseReply(domain.TopicCapability, domain.ToneAggressive, domain.IntentTest, 41)
	b := BaseReply(domain.TopicCapability, domain.ToneAggressive, domain.IntentTest, 41)
	assert.Equal(t, a, b)
}

func TestCatalogCompleteness(t *testing.T) {
	topics := []domain.Topic{
		domain.TopicCapability, domain.TopicControl, domain.TopicEthics,
		domain.TopicMeta, domain.TopicUnknown,
	}
	tones := []domain.Tone{domain.ToneNeutral, domain.ToneAggressive, domain.ToneLeading}

	for _, topic := range topics {
		for _, tone := range tones {
			assert.NotEmpty(t, replies[topic][tone], "no replies for %s/%s", topic, tone)
		}
	}
}
