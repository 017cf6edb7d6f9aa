package unknownword

import (
	"kanaconv/lattice"
	"kanaconv/pos"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// kagomeRunCost sits between a real dictionary entry's typical cost and
// the bare single-rune fallback's singleCharCost, so a kagome-backed
// guess is preferred over the single-rune fallback but never over an
// actual dictionary hit.
const kagomeRunCost = 4000

// ClassIDs is the left/right POS ID pair a guessed node should carry.
type ClassIDs struct {
	Left, Right pos.ID
}

// KagomeGuesser is an additive unknown-word guess source backed by
// github.com/ikawaha/kagome/v2 and its bundled IPADIC
// (github.com/ikawaha/kagome-dict/ipa). It morphologically analyzes
// the untyped tail and contributes one extra node shaped by whatever
// morpheme kagome finds at the guess position, alongside (never in
// place of) Guesser's script-class fallback nodes. Grounded on the
// teacher's own tokenize package, which builds exactly this tokenizer
// (tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())) for its surface
// analysis pass; here it is repurposed from a standalone CLI analyzer
// into a lattice-node source for positions the system dictionary does
// not cover.
type KagomeGuesser struct {
	tok      *tokenizer.Tokenizer
	classes  map[string]ClassIDs
	fallback ClassIDs
}

// NewKagomeGuesser builds a KagomeGuesser. classes maps a kagome major
// POS class label (the first element of Token.POS(), e.g. "名詞",
// "動詞") to the POS IDs a guessed node should carry; classes absent
// from the table fall back to fallback. Returns an error only if the
// bundled IPADIC fails to load.
func NewKagomeGuesser(classes map[string]ClassIDs, fallback ClassIDs) (*KagomeGuesser, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeGuesser{tok: t, classes: classes, fallback: fallback}, nil
}

// Guess morphologically analyzes key[at:] and, if kagome's first
// morpheme there is longer than a single rune, returns one node for
// it. It returns nil when kagome has nothing to offer beyond what
// Guesser's rule-based fallback already covers at this position.
func (g *KagomeGuesser) Guess(key string, at int) []lattice.Node {
	if g == nil || g.tok == nil || at < 0 || at >= len(key) {
		return nil
	}
	morphs := g.tok.Tokenize(key[at:])
	if len(morphs) == 0 {
		return nil
	}
	m := morphs[0]
	if m.Surface == "" || charCount(m.Surface) <= 1 {
		return nil
	}

	ids := g.fallback
	if classes := m.POS(); len(classes) > 0 {
		if c, ok := g.classes[classes[0]]; ok {
			ids = c
		}
	}

	n := lattice.NewNode()
	n.Begin = at
	n.Length = len(m.Surface)
	n.CharLen = charCount(m.Surface)
	n.Key = key[at : at+n.Length]
	n.Value = n.Key
	n.LeftID, n.RightID = ids.Left, ids.Right
	n.WordCost = kagomeRunCost
	n.Type = lattice.Unknown
	return []lattice.Node{n}
}

func charCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
