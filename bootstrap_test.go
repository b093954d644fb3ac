package genus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bootstrapCorpus: kniha is the most frequent feminine noun and shares
// its only context with žena; čelo is a fabricated multi-gender homograph
// with a context nothing else shares.
func bootstrapCorpus() []Sentence {
	return []Sentence{
		sent(tok("ta", ""), tok("kniha", tagF), tok("je", "")),
		sent(tok("ta", ""), tok("kniha", tagF), tok("je", "")),
		sent(tok("ta", ""), tok("kniha", tagF), tok("je", "")),
		sent(tok("ta", ""), tok("žena", tagF), tok("je", "")),
		sent(tok("to", ""), tok("čelo", tagN), tok("asi", "")),
		sent(tok("to", ""), tok("čelo", tagF), tok("asi", "")),
	}
}

func bootstrapConfig() Config {
	cfg := DefaultConfig()
	cfg.NumSeeds = 1
	cfg.ContextForm = FormWord
	cfg.ContextStatistics = CountToken
	cfg.NonNounRatioThreshold = 10 // keep every context
	return cfg
}

func TestSeedRanking(t *testing.T) {
	in, err := NewFromSentences(bootstrapCorpus(), bootstrapConfig())
	require.NoError(t, err)

	ranking := in.stats.seedRanking()
	require.NotEmpty(t, ranking)
	assert.Equal(t, "kniha", ranking[0], "most frequent noun ranks first")
	assert.ElementsMatch(t, []string{"kniha", "žena", "čelo"}, ranking)
}

func TestExtractSeedsSkipsAmbiguous(t *testing.T) {
	cfg := bootstrapConfig()
	cfg.NumSeeds = 2
	in, err := NewFromSentences(bootstrapCorpus(), cfg)
	require.NoError(t, err)

	seeds := in.extractSeeds()
	for _, s := range seeds {
		assert.NotEqual(t, "čelo", s.noun, "multi-gender nouns must never be seeded")
	}
	assert.Equal(t, Feminine, in.assignment["kniha"])
	assert.Equal(t, Feminine, in.assignment["žena"])
	_, ok := in.assignment["čelo"]
	assert.False(t, ok)
}

func TestBootstrapPropagation(t *testing.T) {
	in, err := NewFromSentences(bootstrapCorpus(), bootstrapConfig())
	require.NoError(t, err)

	seeds := in.extractSeeds()
	require.Len(t, seeds, 1, "one singleton feminine noun at NumSeeds=1, no candidates elsewhere")
	require.Equal(t, "kniha", seeds[0].noun)

	in.bootstrap(seeds)

	// žena shares the (ta, je) context with the seed and inherits F.
	assert.Equal(t, Feminine, in.assignment["žena"])
	// čelo's context never acquires a committed gender.
	_, ok := in.assignment["čelo"]
	assert.False(t, ok, "čelo must stay unassigned after bootstrapping")
}

func TestContextDist(t *testing.T) {
	in, err := NewFromSentences(bootstrapCorpus(), bootstrapConfig())
	require.NoError(t, err)

	// No committed contexts yet: every context feeds the NoGender slot.
	d := in.contextDist("žena")
	assert.Equal(t, 1.0, d[bucketNoGender])

	// A noun with zero surviving contexts is 100% unknown.
	d = in.contextDist("nowhere")
	assert.Equal(t, 1.0, d[bucketUnknown])
	assert.Equal(t, 0.0, d[bucketNoGender])

	// After committing the shared context, žena's distribution is all F.
	in.ctxGender[Context{Left: "ta", Right: "je"}] = Feminine
	d = in.contextDist("žena")
	assert.Equal(t, 1.0, d[bucketF])
}

func TestAssignmentMonotonic(t *testing.T) {
	in, err := NewFromSentences(bootstrapCorpus(), bootstrapConfig())
	require.NoError(t, err)

	seeds := in.extractSeeds()
	afterSeeds := make(map[string]Gender, len(in.assignment))
	for n, g := range in.assignment {
		afterSeeds[n] = g
	}

	in.bootstrap(seeds)
	assert.GreaterOrEqual(t, len(in.assignment), len(afterSeeds))
	for n, g := range afterSeeds {
		assert.Equal(t, g, in.assignment[n], "a committed gender must never change")
	}

	in.morphoBackoff()
	for n, g := range afterSeeds {
		assert.Equal(t, g, in.assignment[n])
	}
}
