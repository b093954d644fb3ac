package genus

import "math"

// trieNode represents one suffix length of a reversed noun. Children are
// created lazily during insertion; after normalization the node is never
// mutated again, and queries must not extend the trie.
type trieNode struct {
	children map[rune]*trieNode
	d        dist
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// suffixTrie is the character-suffix smoothing model. Every observed noun
// is inserted reversed, so traversal proceeds from the word's ending
// inward, and each node accumulates the gender distributions of all nouns
// whose suffix passes through it.
type suffixTrie struct {
	root  *trieNode
	alpha float64
	beta  float64
}

// newSuffixTrie builds the trie from every noun and its gender
// distribution, then normalizes each node's accumulated distribution in
// place. Nouns are inserted in slice order so repeated builds are
// bit-identical.
func newSuffixTrie(nouns []string, dists map[string]dist, alpha, beta float64) *suffixTrie {
	t := &suffixTrie{root: newTrieNode(), alpha: alpha, beta: beta}
	for _, noun := range nouns {
		t.insert(noun, dists[noun])
	}
	t.normalize()
	return t
}

// insert adds the noun's distribution, unknown mass included, to every
// node on its reversed path: the root, each intermediate suffix node, and
// the full-length leaf.
func (t *suffixTrie) insert(noun string, d dist) {
	node := t.root
	node.d.add(d)
	runes := []rune(noun)
	for i := len(runes) - 1; i >= 0; i-- {
		child := node.children[runes[i]]
		if child == nil {
			child = newTrieNode()
			node.children[runes[i]] = child
		}
		node = child
		node.d.add(d)
	}
}

// normalize rescales every node's distribution to sum to 1. Nodes are
// independent, so visit order does not matter; the walk is iterative to
// keep stack depth flat.
func (t *suffixTrie) normalize() {
	stack := []*trieNode{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node.d.normalize()
		for _, child := range node.children {
			stack = append(stack, child)
		}
	}
}

// path returns the nodes along the noun's reversed suffix chain, from the
// 1-character suffix node to the full-length node. The walk stops where
// the trie ends; a path shorter than the noun means the noun was never
// inserted.
func (t *suffixTrie) path(noun string) []*trieNode {
	runes := []rune(noun)
	nodes := make([]*trieNode, 0, len(runes))
	node := t.root
	for i := len(runes) - 1; i >= 0; i-- {
		node = node.children[runes[i]]
		if node == nil {
			break
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// genderProb blends the evidence along the suffix chain into one smoothed
// probability for g. The estimate starts at the 1-character suffix node
// and each longer suffix folds its own evidence over it:
//
//	gamma = (1 − β·q^α) / (1 − q)
//	computed = gamma·p + β·q^α·computed
//
// where q is the node's unknown mass and p its mass on g. A node carrying
// only unknown mass (q == 1) contributes nothing. Longer suffixes are
// trusted more, and β·q^α grows with how unresolved the finer node is.
// Walking off the trie before the noun is consumed yields 0.
func (t *suffixTrie) genderProb(nodes []*trieNode, nounLen int, g Gender) float64 {
	if nounLen == 0 || len(nodes) == 0 || len(nodes) < nounLen {
		return 0
	}
	computed := nodes[0].d[genderBucket(g)]
	for _, node := range nodes[1:] {
		q := node.d[bucketUnknown]
		if q >= 1 {
			continue
		}
		w := t.beta * math.Pow(q, t.alpha)
		gamma := (1 - w) / (1 - q)
		computed = gamma*node.d[genderBucket(g)] + w*computed
	}
	return computed
}

// genderProbs computes the noun's smoothed distribution over the four
// genders, normalized to sum to 1. An empty noun or a suffix path missing
// from the trie leaves every gender at 0.
func (t *suffixTrie) genderProbs(noun string) dist {
	var d dist
	nodes := t.path(noun)
	nounLen := len([]rune(noun))
	for _, g := range AllGenders() {
		d[genderBucket(g)] = t.genderProb(nodes, nounLen, g)
	}
	d.normalize()
	return d
}
