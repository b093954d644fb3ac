package genus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	good := DefaultConfig()
	require.NoError(t, good.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative seeds", func(c *Config) { c.NumSeeds = -1 }},
		{"bad default gender", func(c *Config) { c.DefaultGender = 'X' }},
		{"negative ratio", func(c *Config) { c.NonNounRatioThreshold = -0.1 }},
		{"zero prob threshold", func(c *Config) { c.GenderProbThreshold = 0 }},
		{"prob threshold above one", func(c *Config) { c.GenderProbThreshold = 1.1 }},
		{"alpha zero", func(c *Config) { c.Alpha = 0 }},
		{"alpha one", func(c *Config) { c.Alpha = 1 }},
		{"beta zero", func(c *Config) { c.Beta = 0 }},
		{"beta one", func(c *Config) { c.Beta = 1 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		assert.Error(t, cfg.Validate(), tt.name)
	}
}

// TestToyCorpusSeedsOnly: two nouns, each the sole candidate for its
// gender, both seeded directly; the later stages have nothing to do even
// though the ratio threshold of 0 drops every context.
func TestToyCorpusSeedsOnly(t *testing.T) {
	sentences := []Sentence{
		sent(tok("ta", ""), tok("kniha", tagF), tok("stojí", "")),
		sent(tok("kniha", tagF), tok("a", ""), tok("stroj", tagM)),
	}
	cfg := DefaultConfig()
	cfg.NumSeeds = 1
	cfg.ContextForm = FormWord
	cfg.NonNounRatioThreshold = 0

	in, err := NewFromSentences(sentences, cfg)
	require.NoError(t, err)
	res := in.Run()

	assert.Equal(t, map[string]Gender{"kniha": Feminine, "stroj": MasculineAnimate}, res.Assignment)
	assert.Equal(t, []string{"kniha", "stroj"}, res.SortedNouns())
	require.Len(t, res.Stages, 3)
	for _, st := range res.Stages {
		assert.Equal(t, 1.0, st.Coverage, st.Stage)
		assert.Equal(t, 1.0, st.Accuracy, st.Stage)
	}
	assert.Equal(t, StageBootstrap, res.Stages[0].Stage)
	assert.Equal(t, StageMorpho, res.Stages[1].Stage)
	assert.Equal(t, StageFinal, res.Stages[2].Stage)
}

// pipelineCorpus exercises every stage: four seedable nouns with clean
// left contexts, plus pes and tramvaj whose shared context is filtered
// away (three non-noun co-occurrences against two noun ones). pes shares
// the -es suffix with the seeded les and is resolved by the trie;
// tramvaj shares no suffix evidence and falls through to the default.
func pipelineCorpus() []Sentence {
	var out []Sentence
	for i := 0; i < 3; i++ {
		out = append(out,
			sent(tok("ten", ""), tok("muž", tagM)),
			sent(tok("ta", ""), tok("žena", tagF)),
			sent(tok("to", ""), tok("město", tagN)),
			sent(tok("v", ""), tok("les", tagI)),
			sent(tok("na", ""), tok("mostě", "")),
		)
	}
	out = append(out,
		sent(tok("na", ""), tok("pes", tagM)),
		sent(tok("na", ""), tok("tramvaj", tagF)),
	)
	return out
}

func pipelineConfig() Config {
	cfg := DefaultConfig()
	cfg.NumSeeds = 1
	cfg.ContextSide = SideLeft
	cfg.ContextForm = FormWord
	cfg.ContextStatistics = CountToken
	return cfg
}

func TestFullPipeline(t *testing.T) {
	in, err := NewFromSentences(pipelineCorpus(), pipelineConfig())
	require.NoError(t, err)
	res := in.Run()

	// Seeds cover the four clean nouns.
	assert.Equal(t, MasculineAnimate, res.Assignment["muž"])
	assert.Equal(t, Feminine, res.Assignment["žena"])
	assert.Equal(t, Neuter, res.Assignment["město"])
	assert.Equal(t, MasculineInanimate, res.Assignment["les"])

	// pes lost its only context to the filter and is resolved by the
	// suffix it shares with les.
	assert.Equal(t, MasculineInanimate, res.Assignment["pes"])

	// tramvaj has neither contexts nor suffix evidence and gets the
	// default gender.
	assert.Equal(t, Feminine, res.Assignment["tramvaj"])

	require.Len(t, res.Stages, 3)
	boot, morpho, final := res.Stages[0], res.Stages[1], res.Stages[2]

	assert.InDelta(t, 4.0/6.0, boot.Coverage, 1e-12)
	assert.InDelta(t, 1.0, boot.Accuracy, 1e-12)

	assert.InDelta(t, 5.0/6.0, morpho.Coverage, 1e-12)
	assert.InDelta(t, 4.0/5.0, morpho.Accuracy, 1e-12) // pes: induced I, reference M

	assert.Equal(t, 1.0, final.Coverage, "fallback must reach full coverage")
	assert.InDelta(t, 5.0/6.0, final.Accuracy, 1e-12)
}

func TestPipelineDeterminism(t *testing.T) {
	run := func() *Result {
		in, err := NewFromSentences(pipelineCorpus(), pipelineConfig())
		require.NoError(t, err)
		return in.Run()
	}
	a, b := run(), run()

	assert.Equal(t, a.Assignment, b.Assignment)
	require.Equal(t, len(a.Stages), len(b.Stages))
	for i := range a.Stages {
		assert.Equal(t, a.Stages[i], b.Stages[i], "stage records must be bit-identical")
	}
}

// TestSuffixContextsPipeline runs the default suffix-fragment
// configuration end to end on a small corpus; it must converge, reach
// full coverage, and change nothing on a re-run.
func TestSuffixContextsPipeline(t *testing.T) {
	sentences := []Sentence{
		sent(tok("ta", ""), tok("kniha", tagF), tok("je", "")),
		sent(tok("ta", ""), tok("žena", tagF), tok("je", "")),
		sent(tok("ten", ""), tok("hrad", tagI), tok("je", "")),
		sent(tok("ten", ""), tok("stroj", tagI), tok("je", "")),
		sent(tok("to", ""), tok("město", tagN), tok("je", "")),
	}
	cfg := DefaultConfig()
	cfg.NumSeeds = 1
	cfg.NonNounRatioThreshold = 10

	run := func() *Result {
		in, err := NewFromSentences(sentences, cfg)
		require.NoError(t, err)
		return in.Run()
	}
	a := run()

	assert.Len(t, a.Assignment, 5)
	assert.Equal(t, 1.0, a.Stages[2].Coverage)
	assert.GreaterOrEqual(t, a.Stages[2].Accuracy, 0.0)
	assert.LessOrEqual(t, a.Stages[2].Accuracy, 1.0)

	b := run()
	assert.Equal(t, a.Assignment, b.Assignment)
	assert.Equal(t, a.Stages, b.Stages)
}
