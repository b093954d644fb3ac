package genus

import (
	log "github.com/golang/glog"
)

// ContextCount pairs a context with its co-occurrence count for one noun.
type ContextCount struct {
	Ctx   Context
	Count int
}

// Stats holds everything the induction stages need from the corpus: the
// reference noun list, noun frequencies, and the filtered noun↔context
// count tables. Once built it is never mutated.
type Stats struct {
	// RefGenders maps each noun to the set of genders it carries anywhere
	// in the corpus as a base noun. Used for seeding and evaluation only.
	RefGenders map[string]GenderSet

	// NounFreq counts corpus occurrences of every reference-list noun.
	NounFreq map[string]int

	// nounOrder lists the reference nouns by first occurrence in the
	// corpus; it anchors every stable sort in the pipeline.
	nounOrder []string

	// NounContexts maps a noun to its surviving contexts, ordered by
	// global first-seen position so probability sums always accumulate in
	// the same order.
	NounContexts map[string][]ContextCount

	// ContextNouns is the transpose of NounContexts.
	ContextNouns map[Context]map[string]int
}

// CollectStats runs the two corpus passes and the context noise filter.
// Both passes are pure functions of the parsed sentence sequence.
func CollectStats(sentences []Sentence, cfg Config) *Stats {
	s := &Stats{
		RefGenders:   make(map[string]GenderSet),
		NounFreq:     make(map[string]int),
		NounContexts: make(map[string][]ContextCount),
		ContextNouns: make(map[Context]map[string]int),
	}

	// First pass: the reference gender list. In a full deployment this
	// would come from a dictionary; here it is read off the corpus tags.
	for i := range sentences {
		for _, tok := range sentences[i].Tokens {
			if !IsBaseNoun(tok.Tag) {
				continue
			}
			gs := s.RefGenders[tok.Form]
			if gs == nil {
				gs = make(GenderSet)
				s.RefGenders[tok.Form] = gs
			}
			gs.Add(RefGender(tok.Tag))
		}
	}

	// Second pass: noun frequencies and context co-occurrence counts.
	// Non-noun counts are kept only long enough to drive the filter.
	ctxNoun := make(map[Context]map[string]int)
	ctxNonNoun := make(map[Context]map[string]int)
	var ctxOrder []Context

	count := func(table map[Context]map[string]int, ctx Context, word string, track bool) {
		words := table[ctx]
		if words == nil {
			words = make(map[string]int)
			table[ctx] = words
			if track {
				ctxOrder = append(ctxOrder, ctx)
			}
		}
		if cfg.ContextStatistics == CountToken {
			words[word]++
		} else {
			words[word] = 1
		}
	}

	for i := range sentences {
		for _, t := range sentences[i].Triples() {
			var left, right string
			if t.Prev != nil {
				left = t.Prev.Form
			}
			if t.Next != nil {
				right = t.Next.Form
			}
			ctxs := genContexts(cfg.ContextSide, cfg.ContextForm, left, right)

			word := t.Cur.Form
			if _, ok := s.RefGenders[word]; ok {
				if _, seen := s.NounFreq[word]; !seen {
					s.nounOrder = append(s.nounOrder, word)
				}
				s.NounFreq[word]++
				for _, ctx := range ctxs {
					count(ctxNoun, ctx, word, true)
				}
			} else {
				for _, ctx := range ctxs {
					count(ctxNonNoun, ctx, word, false)
				}
			}
		}
	}

	// Drop contexts that co-occur too often with words outside the noun
	// list; they are too generic to carry gender signal. The denominator
	// is nonzero by construction: every context here co-occurred with at
	// least one noun.
	before := len(ctxNoun)
	for ctx, nouns := range ctxNoun {
		var nounTotal, nonNounTotal int
		for _, c := range nouns {
			nounTotal += c
		}
		for _, c := range ctxNonNoun[ctx] {
			nonNounTotal += c
		}
		if float64(nonNounTotal)/float64(nounTotal) >= cfg.NonNounRatioThreshold {
			delete(ctxNoun, ctx)
		}
	}

	// Transpose the surviving table. Walking ctxOrder fixes each noun's
	// context list order.
	for _, ctx := range ctxOrder {
		nouns, ok := ctxNoun[ctx]
		if !ok {
			continue
		}
		s.ContextNouns[ctx] = nouns
		for noun, c := range nouns {
			s.NounContexts[noun] = append(s.NounContexts[noun], ContextCount{Ctx: ctx, Count: c})
		}
	}

	log.Infof("corpus statistics: %d sentences, %d reference nouns, %d contexts (%d filtered)",
		len(sentences), len(s.RefGenders), len(s.ContextNouns), before-len(s.ContextNouns))
	return s
}

// contextTotal sums a noun's surviving context counts.
func (s *Stats) contextTotal(noun string) int {
	var total int
	for _, cc := range s.NounContexts[noun] {
		total += cc.Count
	}
	return total
}
