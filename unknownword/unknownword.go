// Package unknownword synthesizes fallback lattice nodes for byte
// positions no dictionary token covers: a single-rune node always,
// plus one collapsed node for a maximal numeric or Latin-letter run
// starting there, plus, when a KagomeGuesser is attached, one
// morphologically-guessed node from kagome/v2's IPADIC analysis.
// Grounded on the teacher's script-class predicates (isKanji/isKana),
// generalized here to also classify ASCII digit/letter runs via the
// standard unicode package (no example repo does rune classification
// differently, so stdlib is the right tool for this leaf, see
// DESIGN.md).
package unknownword

import (
	"unicode"
	"unicode/utf8"

	"kanaconv/lattice"
	"kanaconv/pos"
)

// Costs are deliberately high relative to dictionary entries so a
// known-word path is always preferred when one exists; they only
// determine which fallback shape wins when no dictionary token covers
// a position at all.
const (
	singleCharCost = 5000
	numberRunCost  = 3000
	alphaRunCost   = 3000
)

// Guesser tags synthesized nodes with POS IDs drawn from a small
// fixed table, so the caller's Matcher can recognize them
// (IsNumber/IsAlphabet) without needing to know about this package.
type Guesser struct {
	DefaultLeft, DefaultRight pos.ID // generic unknown-word POS
	NumberLeft, NumberRight   pos.ID
	AlphaLeft, AlphaRight     pos.ID

	// Kagome is an optional additive guess source: when set, Guess also
	// asks it for a morphologically-informed node at the same position,
	// alongside (never instead of) the script-class nodes below.
	Kagome *KagomeGuesser
}

// Guess returns one or more candidate unknown-word nodes anchored at
// byte offset at within key. The caller inserts whichever of these
// Viterbi ultimately prefers; this function never returns an empty
// slice for a valid rune boundary.
func (g *Guesser) Guess(key string, at int) []lattice.Node {
	if at < 0 || at >= len(key) {
		return nil
	}
	r, size := utf8.DecodeRuneInString(key[at:])
	if size <= 0 {
		return nil
	}

	nodes := []lattice.Node{g.singleRuneNode(key, at, r, size)}

	switch {
	case unicode.IsDigit(r):
		if n, ok := g.runNode(key, at, unicode.IsDigit, g.NumberLeft, g.NumberRight, numberRunCost); ok {
			nodes = append(nodes, n)
		}
	case isLatinLetter(r):
		if n, ok := g.runNode(key, at, isLatinLetter, g.AlphaLeft, g.AlphaRight, alphaRunCost); ok {
			nodes = append(nodes, n)
		}
	}
	if g.Kagome != nil {
		nodes = append(nodes, g.Kagome.Guess(key, at)...)
	}
	return nodes
}

func (g *Guesser) singleRuneNode(key string, at int, r rune, size int) lattice.Node {
	n := lattice.NewNode()
	n.Begin = at
	n.Length = size
	n.CharLen = 1
	n.Key = key[at : at+size]
	n.Value = n.Key
	n.LeftID, n.RightID = g.DefaultLeft, g.DefaultRight
	n.WordCost = singleCharCost
	n.Type = lattice.Unknown
	return n
}

// runNode collapses the maximal run of runes satisfying pred starting
// at byte offset at into a single node, if that run is longer than
// one rune (otherwise it would duplicate singleRuneNode).
func (g *Guesser) runNode(key string, at int, pred func(rune) bool, left, right pos.ID, cost int32) (lattice.Node, bool) {
	i := at
	chars := 0
	for i < len(key) {
		r, size := utf8.DecodeRuneInString(key[i:])
		if size <= 0 || !pred(r) {
			break
		}
		i += size
		chars++
	}
	if chars <= 1 {
		return lattice.Node{}, false
	}
	n := lattice.NewNode()
	n.Begin = at
	n.Length = i - at
	n.CharLen = chars
	n.Key = key[at:i]
	n.Value = n.Key
	n.LeftID, n.RightID = left, right
	n.WordCost = cost
	n.Type = lattice.Unknown
	return n, true
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
