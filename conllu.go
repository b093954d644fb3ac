package genus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Token is a single corpus token: its lowercase-normalized surface form
// and its PDT positional tag (empty when the corpus carries none).
type Token struct {
	Form string
	Tag  string
}

// Sentence is an ordered sequence of tokens.
type Sentence struct {
	Tokens []Token
}

// Triple is one (previous, current, next) token window. Prev and Next are
// nil at sentence boundaries.
type Triple struct {
	Prev *Token
	Cur  *Token
	Next *Token
}

// Triples returns the token windows of the sentence in order.
func (s *Sentence) Triples() []Triple {
	out := make([]Triple, len(s.Tokens))
	for i := range s.Tokens {
		t := Triple{Cur: &s.Tokens[i]}
		if i > 0 {
			t.Prev = &s.Tokens[i-1]
		}
		if i < len(s.Tokens)-1 {
			t.Next = &s.Tokens[i+1]
		}
		out[i] = t
	}
	return out
}

// ParseFile reads a CoNLL-U corpus into sentences. An unreadable path is
// a fatal input error surfaced before any induction stage runs.
func ParseFile(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return parseCoNLLU(f)
}

// parseCoNLLU scans CoNLL-U lines: sentences are separated by blank
// lines, comment lines start with '#', token lines carry 10 tab-separated
// columns of which we keep FORM (lowercased) and XPOS (the PDT tag).
// Multiword-token ranges ("1-2") and empty nodes ("1.1") are skipped,
// and an XPOS of "_" means the token has no tag.
func parseCoNLLU(r io.Reader) ([]Sentence, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sentences []Sentence
	var cur Sentence
	flush := func() {
		if len(cur.Tokens) > 0 {
			sentences = append(sentences, cur)
			cur = Sentence{}
		}
	}

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			continue
		}
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}
		tag := fields[4]
		if tag == "_" {
			tag = ""
		}
		cur.Tokens = append(cur.Tokens, Token{
			Form: strings.ToLower(fields[1]),
			Tag:  tag,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	flush()
	return sentences, nil
}
