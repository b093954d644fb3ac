package genus

import "fmt"

// Context is the pair of neighbouring-word evidence characterizing one
// noun occurrence. Each side is the adjacent word form, one of its
// suffixes (possibly empty), or the empty string for a disabled side or a
// sentence boundary. The zero value is a valid (empty) context.
type Context struct {
	Left  string
	Right string
}

// ContextSide selects which neighbours contribute context fragments.
type ContextSide int

const (
	SideBilateral ContextSide = iota
	SideLeft
	SideRight
)

// ParseContextSide parses "left", "right" or "bilateral".
func ParseContextSide(s string) (ContextSide, error) {
	switch s {
	case "bilateral":
		return SideBilateral, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return 0, fmt.Errorf("unknown context type %q (want left, right or bilateral)", s)
}

func (s ContextSide) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "bilateral"
	}
}

// FragmentForm selects how a neighbouring word turns into context
// fragments: the whole word, or every one of its suffixes including the
// empty suffix.
type FragmentForm int

const (
	FormSuffix FragmentForm = iota
	FormWord
)

// ParseFragmentForm parses "word" or "suffix".
func ParseFragmentForm(s string) (FragmentForm, error) {
	switch s {
	case "suffix":
		return FormSuffix, nil
	case "word":
		return FormWord, nil
	}
	return 0, fmt.Errorf("unknown context word form %q (want word or suffix)", s)
}

func (f FragmentForm) String() string {
	if f == FormWord {
		return "word"
	}
	return "suffix"
}

// CountSemantics selects how co-occurrence counts accumulate: token
// statistics count every occurrence, type statistics saturate at 1 per
// distinct pair.
type CountSemantics int

const (
	CountToken CountSemantics = iota
	CountType
)

// ParseCountSemantics parses "token" or "type".
func ParseCountSemantics(s string) (CountSemantics, error) {
	switch s {
	case "token":
		return CountToken, nil
	case "type":
		return CountType, nil
	}
	return 0, fmt.Errorf("unknown statistics type %q (want token or type)", s)
}

func (c CountSemantics) String() string {
	if c == CountToken {
		return "token"
	}
	return "type"
}

// fragments expands one neighbouring word into its context fragments.
// Suffix expansion walks runes, not bytes, so diacritics stay intact.
func fragments(word string, form FragmentForm) []string {
	if form == FormWord {
		return []string{word}
	}
	runes := []rune(word)
	out := make([]string, 0, len(runes)+1)
	for i := 0; i <= len(runes); i++ {
		out = append(out, string(runes[i:]))
	}
	return out
}

// genContexts returns the cartesian product of the left and right fragment
// sets for one occurrence. A disabled side contributes only the empty
// string, so unilateral configurations produce one-sided contexts.
func genContexts(side ContextSide, form FragmentForm, left, right string) []Context {
	lefts := []string{""}
	rights := []string{""}
	if side == SideLeft || side == SideBilateral {
		lefts = fragments(left, form)
	}
	if side == SideRight || side == SideBilateral {
		rights = fragments(right, form)
	}
	out := make([]Context, 0, len(lefts)*len(rights))
	for _, l := range lefts {
		for _, r := range rights {
			out = append(out, Context{Left: l, Right: r})
		}
	}
	return out
}
