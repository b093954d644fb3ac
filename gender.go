// Package genus induces grammatical gender for Czech nouns from a tagged
// corpus with minimal supervision: a handful of frequency-ranked seed nouns
// per gender, iterative context bootstrapping, and suffix-trie smoothing
// for the nouns the contexts could not resolve.
package genus

import "fmt"

// Gender is one of the four Czech grammatical genders, using the letters
// of the PDT positional tagset.
type Gender byte

const (
	MasculineAnimate   Gender = 'M'
	MasculineInanimate Gender = 'I'
	Feminine           Gender = 'F'
	Neuter             Gender = 'N'
)

// AllGenders returns the four genders in their fixed order. Seed
// extraction, trie queries and argmax tie-breaking all rely on this order
// being stable across calls.
func AllGenders() [4]Gender {
	return [4]Gender{MasculineAnimate, MasculineInanimate, Feminine, Neuter}
}

// ParseGender parses a single-letter gender label.
func ParseGender(s string) (Gender, error) {
	if len(s) == 1 && Gender(s[0]).valid() {
		return Gender(s[0]), nil
	}
	return 0, fmt.Errorf("unknown gender %q (want M, I, F or N)", s)
}

func (g Gender) valid() bool {
	switch g {
	case MasculineAnimate, MasculineInanimate, Feminine, Neuter:
		return true
	}
	return false
}

func (g Gender) String() string { return string(g) }

// MarshalJSON encodes the gender as its one-letter label.
func (g Gender) MarshalJSON() ([]byte, error) {
	return []byte(`"` + string(g) + `"`), nil
}

// PDT positional tag layout. A tag is a fixed-width string; each position
// holds one category value.
const (
	posPosition    = 0
	genderPosition = 2
	numberPosition = 3
	casePosition   = 4

	nounPOS        = 'N'
	singularNumber = 'S'
	firstCase      = '1'
)

// IsBaseNoun reports whether tag marks a base noun: a common noun in
// singular number, nominative case, with one of the four defined genders.
// A missing or truncated tag is never a base noun.
func IsBaseNoun(tag string) bool {
	if len(tag) <= casePosition {
		return false
	}
	return tag[posPosition] == nounPOS &&
		Gender(tag[genderPosition]).valid() &&
		tag[numberPosition] == singularNumber &&
		tag[casePosition] == firstCase
}

// RefGender extracts the reference gender field from a positional tag.
// Callers must check IsBaseNoun first.
func RefGender(tag string) Gender {
	return Gender(tag[genderPosition])
}

// GenderSet is the set of reference genders observed for one noun.
// A noun acquires more than one member when the corpus contains homographs
// of different genders.
type GenderSet map[Gender]bool

// Add inserts g into the set.
func (s GenderSet) Add(g Gender) { s[g] = true }

// Has reports whether g is in the set.
func (s GenderSet) Has(g Gender) bool { return s[g] }

// Singleton reports whether the set contains exactly g and nothing else.
// Only singleton nouns may be seeded.
func (s GenderSet) Singleton(g Gender) bool {
	return len(s) == 1 && s[g]
}
