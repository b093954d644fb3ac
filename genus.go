package genus

import (
	"fmt"
	"sort"

	log "github.com/golang/glog"
)

// Stage names used for the coverage/accuracy records, in pipeline order.
const (
	StageBootstrap = "after_context_bootstrapping"
	StageMorpho    = "after_morpho_analysis"
	StageFinal     = "final"
)

// Config collects every recognized option of an induction run.
type Config struct {
	// NumSeeds is the number of seed nouns taken per gender.
	NumSeeds int
	// ContextSide selects left, right or bilateral contexts.
	ContextSide ContextSide
	// ContextForm selects whole-word or all-suffix context fragments.
	ContextForm FragmentForm
	// ContextStatistics selects token or type counting for the context
	// tables; MorphoStatistics does the same for trie weighting.
	ContextStatistics CountSemantics
	MorphoStatistics  CountSemantics
	// DefaultGender is assigned to nouns no stage could resolve.
	DefaultGender Gender
	// NonNounRatioThreshold drops every context whose non-noun/noun
	// co-occurrence ratio reaches it.
	NonNounRatioThreshold float64
	// GenderProbThreshold is the minimum contextual probability at which
	// bootstrapping commits a gender.
	GenderProbThreshold float64
	// Alpha and Beta are the trie smoothing parameters.
	Alpha float64
	Beta  float64
}

// DefaultConfig returns the standard parameter set for Czech PDT corpora.
func DefaultConfig() Config {
	return Config{
		NumSeeds:              15,
		ContextSide:           SideBilateral,
		ContextForm:           FormSuffix,
		ContextStatistics:     CountType,
		MorphoStatistics:      CountToken,
		DefaultGender:         Feminine,
		NonNounRatioThreshold: 1.5,
		GenderProbThreshold:   0.4,
		Alpha:                 0.2,
		Beta:                  0.99,
	}
}

// Validate rejects out-of-range thresholds and unknown enum choices.
// It runs before any corpus IO.
func (c Config) Validate() error {
	if c.NumSeeds < 0 {
		return fmt.Errorf("num_seeds must be >= 0, got %d", c.NumSeeds)
	}
	if !c.DefaultGender.valid() {
		return fmt.Errorf("unknown default gender %q", string(c.DefaultGender))
	}
	if c.NonNounRatioThreshold < 0 {
		return fmt.Errorf("non-noun ratio threshold must be >= 0, got %g", c.NonNounRatioThreshold)
	}
	if c.GenderProbThreshold <= 0 || c.GenderProbThreshold > 1 {
		return fmt.Errorf("gender probability threshold must be in (0,1], got %g", c.GenderProbThreshold)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0,1), got %g", c.Alpha)
	}
	if c.Beta <= 0 || c.Beta >= 1 {
		return fmt.Errorf("beta must be in (0,1), got %g", c.Beta)
	}
	return nil
}

// StageStats records coverage and accuracy at one stage boundary.
type StageStats struct {
	Stage    string  `json:"-"`
	Coverage float64 `json:"coverage"`
	Accuracy float64 `json:"accuracy"`
}

// Result is the outcome of a full induction run.
type Result struct {
	// Assignment maps every reference noun to its induced gender.
	Assignment map[string]Gender
	// Stages holds the three coverage/accuracy records in pipeline order.
	Stages []StageStats
}

// SortedNouns returns the assigned nouns in lexicographic order, the
// order in which the final mapping is persisted.
func (r *Result) SortedNouns() []string {
	nouns := make([]string, 0, len(r.Assignment))
	for noun := range r.Assignment {
		nouns = append(nouns, noun)
	}
	sort.Strings(nouns)
	return nouns
}

// Inducer runs the three-stage gender induction over collected corpus
// statistics. The pipeline is single-threaded and batch-oriented: each
// structure is mutated by exactly one stage at a time.
type Inducer struct {
	cfg   Config
	stats *Stats

	// ctxGender maps a context to its committed gender. Absence means
	// "no committed gender yet"; the Unknown sentinel never appears here.
	ctxGender map[Context]Gender

	// assignment grows monotonically; a noun's gender is never
	// overwritten once set.
	assignment map[string]Gender
}

// New validates cfg, parses the corpus at path and collects its
// statistics.
func New(path string, cfg Config) (*Inducer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sentences, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &Inducer{
		cfg:        cfg,
		stats:      CollectStats(sentences, cfg),
		ctxGender:  make(map[Context]Gender),
		assignment: make(map[string]Gender),
	}, nil
}

// NewFromSentences is New for an already-parsed corpus.
func NewFromSentences(sentences []Sentence, cfg Config) (*Inducer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Inducer{
		cfg:        cfg,
		stats:      CollectStats(sentences, cfg),
		ctxGender:  make(map[Context]Gender),
		assignment: make(map[string]Gender),
	}, nil
}

// Run executes seed extraction, context bootstrapping to its fixed point,
// suffix-trie back-off, and the default-gender fallback, recording
// coverage and accuracy after each assigning stage. After Run every
// reference noun has a gender.
func (in *Inducer) Run() *Result {
	res := &Result{}

	seeds := in.extractSeeds()
	in.bootstrap(seeds)
	res.Stages = append(res.Stages, in.stageStats(StageBootstrap))

	in.morphoBackoff()
	res.Stages = append(res.Stages, in.stageStats(StageMorpho))

	for _, noun := range in.unassignedNouns() {
		in.assignment[noun] = in.cfg.DefaultGender
	}
	res.Stages = append(res.Stages, in.stageStats(StageFinal))

	res.Assignment = make(map[string]Gender, len(in.assignment))
	for noun, g := range in.assignment {
		res.Assignment[noun] = g
	}
	return res
}

// trieDist is the distribution a noun contributes to the trie: its
// contextual distribution after bootstrapping, with uncommitted-context
// mass folded into the unknown slot, frequency-scaled under token
// weighting.
func (in *Inducer) trieDist(noun string) dist {
	d := in.contextDist(noun)
	d[bucketUnknown] += d[bucketNoGender]
	d[bucketNoGender] = 0
	if in.cfg.MorphoStatistics == CountToken {
		d.scale(float64(in.stats.NounFreq[noun]))
	}
	return d
}

// morphoBackoff builds the suffix trie over the whole noun population and
// assigns every still-unassigned noun its smoothed argmax gender, provided
// some gender carries strictly positive mass.
func (in *Inducer) morphoBackoff() {
	dists := make(map[string]dist, len(in.stats.nounOrder))
	for _, noun := range in.stats.nounOrder {
		dists[noun] = in.trieDist(noun)
	}
	trie := newSuffixTrie(in.stats.nounOrder, dists, in.cfg.Alpha, in.cfg.Beta)

	assigned := 0
	for _, noun := range in.unassignedNouns() {
		d := trie.genderProbs(noun)
		b, p := d.argMax()
		if g, real := b.gender(); real && p > 0 {
			in.assignment[noun] = g
			assigned++
		}
	}
	log.Infof("morphological analysis: %d nouns assigned from the trie", assigned)
}

// stageStats computes the coverage/accuracy record for the current
// assignment. Coverage is |assigned| / |reference list|; accuracy is the
// fraction of assigned nouns whose gender is in their reference set.
func (in *Inducer) stageStats(stage string) StageStats {
	st := StageStats{Stage: stage}
	if len(in.stats.RefGenders) > 0 {
		st.Coverage = float64(len(in.assignment)) / float64(len(in.stats.RefGenders))
	}
	if len(in.assignment) > 0 {
		correct := 0
		for noun, g := range in.assignment {
			if in.stats.RefGenders[noun].Has(g) {
				correct++
			}
		}
		st.Accuracy = float64(correct) / float64(len(in.assignment))
	}
	log.Infof("%s: coverage %.4f, accuracy %.4f", stage, st.Coverage, st.Accuracy)
	return st
}
