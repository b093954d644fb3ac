// Command induce runs the gender induction pipeline over a CoNLL-U corpus
// and writes the argument snapshot, three coverage/accuracy records and
// the final noun→gender mapping into a fresh run directory, optionally
// archiving everything in a SQLite results database as well.
package main

import (
	"encoding/json"
	"flag"
	"os"

	log "github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/czech-nlp/genus"
	"github.com/czech-nlp/genus/internal/runlog"
	"github.com/czech-nlp/genus/internal/store"
)

var (
	corpusPath = flag.String("corpus", "data/ud-treebanks-v2.14/UD_Czech-PDT/cs_pdt-ud-train.conllu",
		"path to the Czech PDT corpus in CoNLL-U format")
	numSeeds    = flag.Int("num_seeds", 15, "number of seed nouns per gender")
	contextType = flag.String("context_type", "bilateral", "context type: left, right or bilateral")
	contextForm = flag.String("context_word_form", "suffix", "context word form: word or suffix")
	contextStat = flag.String("context_statistics_type", "type", "context count semantics: token or type")
	morphoStat  = flag.String("morpho_statistics_type", "token", "trie weighting semantics: token or type")
	defGender   = flag.String("default_gender", "F", "gender for nouns no stage could resolve: M, I, F or N")
	ratioThresh = flag.Float64("non_noun_to_noun_ratio_threshold", 1.5,
		"drop contexts whose non-noun/noun co-occurrence ratio reaches this value")
	probThresh = flag.Float64("gender_prob_threshold", 0.4,
		"minimum contextual probability at which a gender is committed")
	alpha  = flag.Float64("alpha", 0.2, "trie smoothing parameter")
	beta   = flag.Float64("beta", 0.99, "trie smoothing parameter")
	outDir = flag.String("out", "", "output directory root (defaults to the OUT_DIR environment variable)")
	dbPath = flag.String("db", "", "optional SQLite results database")
)

func main() {
	flag.Parse()
	defer log.Flush()

	// .env is optional; a missing file is not an error.
	godotenv.Load()

	root := *outDir
	if root == "" {
		root = os.Getenv("OUT_DIR")
	}
	if root == "" {
		root = "out"
	}

	cfg, err := buildConfig()
	if err != nil {
		log.Exitf("invalid configuration: %v", err)
	}

	run, err := runlog.New(root)
	if err != nil {
		log.Exitf("run setup: %v", err)
	}
	log.Infof("run %s → %s", run.ID, run.Dir)

	args := argsSnapshot()
	if err := run.WriteJSON("args.json", args); err != nil {
		log.Exitf("save args: %v", err)
	}

	inducer, err := genus.New(*corpusPath, cfg)
	if err != nil {
		log.Exitf("load corpus: %v", err)
	}
	result := inducer.Run()

	for _, st := range result.Stages {
		if err := run.WriteJSON(st.Stage+"_stats.json", st); err != nil {
			log.Exitf("save %s stats: %v", st.Stage, err)
		}
	}
	if err := run.WriteJSON("gender_assignment.json", result.Assignment); err != nil {
		log.Exitf("save assignment: %v", err)
	}

	if *dbPath != "" {
		if err := archive(run.ID, args, result); err != nil {
			log.Exitf("archive run: %v", err)
		}
	}
	log.Infof("run %s finished: %d nouns assigned", run.ID, len(result.Assignment))
}

// buildConfig translates the flag surface into a validated genus.Config.
func buildConfig() (genus.Config, error) {
	cfg := genus.DefaultConfig()
	cfg.NumSeeds = *numSeeds
	cfg.NonNounRatioThreshold = *ratioThresh
	cfg.GenderProbThreshold = *probThresh
	cfg.Alpha = *alpha
	cfg.Beta = *beta

	var err error
	if cfg.ContextSide, err = genus.ParseContextSide(*contextType); err != nil {
		return cfg, err
	}
	if cfg.ContextForm, err = genus.ParseFragmentForm(*contextForm); err != nil {
		return cfg, err
	}
	if cfg.ContextStatistics, err = genus.ParseCountSemantics(*contextStat); err != nil {
		return cfg, err
	}
	if cfg.MorphoStatistics, err = genus.ParseCountSemantics(*morphoStat); err != nil {
		return cfg, err
	}
	if cfg.DefaultGender, err = genus.ParseGender(*defGender); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// argsSnapshot mirrors the flag surface as a flat map for args.json and
// the results database.
func argsSnapshot() map[string]any {
	return map[string]any{
		"corpus_path":                      *corpusPath,
		"num_seeds":                        *numSeeds,
		"context_type":                     *contextType,
		"context_word_form":                *contextForm,
		"context_statistics_type":          *contextStat,
		"morpho_statistics_type":           *morphoStat,
		"default_gender":                   *defGender,
		"non_noun_to_noun_ratio_threshold": *ratioThresh,
		"gender_prob_threshold":            *probThresh,
		"alpha":                            *alpha,
		"beta":                             *beta,
	}
}

// archive writes the run, its stage records and the full assignment into
// the SQLite results database.
func archive(runID string, args map[string]any, result *genus.Result) error {
	cfgJSON, err := json.Marshal(args)
	if err != nil {
		return err
	}
	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveRun(runID, *corpusPath, string(cfgJSON)); err != nil {
		return err
	}
	for _, st := range result.Stages {
		rec := store.StageRecord{Stage: st.Stage, Coverage: st.Coverage, Accuracy: st.Accuracy}
		if err := db.SaveStageStats(runID, rec); err != nil {
			return err
		}
	}
	nouns := result.SortedNouns()
	genders := make(map[string]string, len(nouns))
	for noun, g := range result.Assignment {
		genders[noun] = g.String()
	}
	return db.SaveAssignment(runID, nouns, genders)
}
