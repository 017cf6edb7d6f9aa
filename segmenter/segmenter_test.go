package segmenter

import (
	"testing"

	"kanaconv/lattice"
	"kanaconv/pos"
)

const (
	noun pos.ID = 1
	verb pos.ID = 2
	aux  pos.ID = 3
)

func newMatcher() *pos.Matcher {
	return pos.NewMatcher(map[pos.ID]pos.Category{
		noun: pos.CatNoun,
		verb: pos.CatVerb,
		aux:  pos.CatAuxiliaryVerb,
	}, nil)
}

func node(rightID pos.ID) *lattice.Node {
	return &lattice.Node{RightID: rightID}
}

func nodeLeft(leftID pos.ID) *lattice.Node {
	return &lattice.Node{LeftID: leftID}
}

func TestBoundaryRuleMatch(t *testing.T) {
	s := New(newMatcher(), []Rule{
		{LeftCat: pos.CatVerb, RightCat: pos.CatAuxiliaryVerb, Boundary: false, Penalty: 5000},
	})
	if s.IsBoundary(node(verb), nodeLeft(aux)) {
		t.Errorf("verb->aux should not be a boundary per the rule")
	}
	if got := s.BoundaryPenalty(node(verb), nodeLeft(aux)); got != 5000 {
		t.Errorf("BoundaryPenalty = %d, want 5000", got)
	}
}

func TestDefaultWhenNoRuleMatches(t *testing.T) {
	s := New(newMatcher(), []Rule{
		{LeftCat: pos.CatVerb, RightCat: pos.CatAuxiliaryVerb, Boundary: false, Penalty: 5000},
	})
	if !s.IsBoundary(node(noun), nodeLeft(noun)) {
		t.Errorf("unmatched pair should default to boundary allowed")
	}
	if got := s.BoundaryPenalty(node(noun), nodeLeft(noun)); got != 0 {
		t.Errorf("unmatched pair should default to zero penalty, got %d", got)
	}
}
