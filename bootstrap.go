package genus

import (
	"sort"

	log "github.com/golang/glog"
)

// nounGender is one committed assignment, kept in commit order so that
// later context writes deterministically overwrite earlier ones.
type nounGender struct {
	noun   string
	gender Gender
}

// seedRanking orders the reference nouns by merged priority: each noun's
// position in the descending-frequency ranking plus its position in the
// descending-context-count ranking, lower sum first. All three sorts are
// stable over corpus first-occurrence order, so ties are deterministic.
func (s *Stats) seedRanking() []string {
	byFreq := append([]string(nil), s.nounOrder...)
	sort.SliceStable(byFreq, func(i, j int) bool {
		return s.NounFreq[byFreq[i]] > s.NounFreq[byFreq[j]]
	})

	totals := make(map[string]int, len(s.nounOrder))
	for _, noun := range s.nounOrder {
		totals[noun] = s.contextTotal(noun)
	}
	byCtx := append([]string(nil), s.nounOrder...)
	sort.SliceStable(byCtx, func(i, j int) bool {
		return totals[byCtx[i]] > totals[byCtx[j]]
	})

	combined := make(map[string]int, len(byFreq))
	for idx, noun := range byFreq {
		combined[noun] += idx
	}
	for idx, noun := range byCtx {
		combined[noun] += idx
	}

	merged := append([]string(nil), byFreq...)
	sort.SliceStable(merged, func(i, j int) bool {
		return combined[merged[i]] < combined[merged[j]]
	})
	return merged
}

// extractSeeds commits the NumSeeds highest-priority unambiguous nouns of
// every gender and returns them in commit order. Nouns whose reference
// gender set has more than one member are never seeded.
func (in *Inducer) extractSeeds() []nounGender {
	ranking := in.stats.seedRanking()
	var seeds []nounGender
	for _, g := range AllGenders() {
		taken := 0
		for _, noun := range ranking {
			if taken == in.cfg.NumSeeds {
				break
			}
			if !in.stats.RefGenders[noun].Singleton(g) {
				continue
			}
			in.assignment[noun] = g
			seeds = append(seeds, nounGender{noun: noun, gender: g})
			taken++
		}
	}
	log.Infof("seed extraction: %d seed nouns committed", len(seeds))
	return seeds
}

// unassignedNouns returns the reference nouns without a committed gender,
// sorted lexicographically so every round visits them in a fixed order.
func (in *Inducer) unassignedNouns() []string {
	out := make([]string, 0, len(in.stats.NounFreq)-len(in.assignment))
	for _, noun := range in.stats.nounOrder {
		if _, ok := in.assignment[noun]; !ok {
			out = append(out, noun)
		}
	}
	sort.Strings(out)
	return out
}

// contextDist computes a noun's contextual gender distribution from the
// committed genders of its surviving contexts, weighted by co-occurrence
// count. A noun with no surviving contexts gets all mass on Unknown;
// contexts without a committed gender feed the NoGender slot instead.
func (in *Inducer) contextDist(noun string) dist {
	var d dist
	ccs := in.stats.NounContexts[noun]
	if len(ccs) == 0 {
		d[bucketUnknown] = 1
		return d
	}
	for _, cc := range ccs {
		if g, ok := in.ctxGender[cc.Ctx]; ok {
			d[genderBucket(g)] += float64(cc.Count)
		} else {
			d[bucketNoGender] += float64(cc.Count)
		}
	}
	d.normalize()
	return d
}

// bootstrap runs the fixed-point propagation loop: commit context genders
// from the nouns added last round, then stage every unassigned noun whose
// contextual argmax is a real gender at or above the acceptance threshold,
// and commit the stage as one batch. The loop ends when a round stages
// nothing; the unassigned set is finite and strictly shrinking, so it
// always terminates.
func (in *Inducer) bootstrap(seeds []nounGender) {
	pending := seeds
	for round := 1; len(pending) > 0; round++ {
		for _, ng := range pending {
			for _, cc := range in.stats.NounContexts[ng.noun] {
				in.ctxGender[cc.Ctx] = ng.gender
			}
		}

		var staged []nounGender
		for _, noun := range in.unassignedNouns() {
			d := in.contextDist(noun)
			b, p := d.argMax()
			g, real := b.gender()
			if real && p >= in.cfg.GenderProbThreshold {
				staged = append(staged, nounGender{noun: noun, gender: g})
			}
		}
		for _, ng := range staged {
			in.assignment[ng.noun] = ng.gender
		}

		log.Infof("bootstrap round %d: %d nouns staged, %d assigned in total",
			round, len(staged), len(in.assignment))
		pending = staged
	}
}
