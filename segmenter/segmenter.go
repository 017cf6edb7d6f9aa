// Package segmenter implements the pure boundary predicate and
// penalty. The converter adds BoundaryPenalty on every edge it scores;
// locked (FIXED_BOUNDARY) boundaries are enforced by the converter
// itself, not through IsBoundary.
package segmenter

import (
	"kanaconv/lattice"
	"kanaconv/pos"
)

// Rule is one entry of the boundary rule table: whether a boundary
// may occur between a left node in category leftCat and a right node
// in category rightCat, and the penalty for crossing it.
type Rule struct {
	LeftCat, RightCat pos.Category
	Boundary          bool
	Penalty           int32
}

// Segmenter answers whether a segment boundary may occur between two
// adjacent lattice nodes, and the cost of crossing one. Both
// operations are pure and read-only.
type Segmenter struct {
	matcher *pos.Matcher
	rules   []Rule
}

// New builds a Segmenter over a POS matcher and an ordered rule
// table; the first matching rule (by left/right category bitmask
// intersection) wins, mirroring a typical handwritten connection-rule
// table. No matching rule means "boundary allowed, no penalty".
func New(matcher *pos.Matcher, rules []Rule) *Segmenter {
	return &Segmenter{matcher: matcher, rules: rules}
}

// catsOf returns the left node's right-POS category and the right
// node's left-POS category, the pair that determines whether a
// boundary may fall between them.
func (s *Segmenter) catsOf(left, right *lattice.Node) (pos.Category, pos.Category) {
	return s.matcher.CategoryOf(left.RightID), s.matcher.CategoryOf(right.LeftID)
}

// IsBoundary reports whether a segment boundary may occur between
// left and right.
func (s *Segmenter) IsBoundary(left, right *lattice.Node) bool {
	lc, rc := s.catsOf(left, right)
	for _, r := range s.rules {
		if lc&r.LeftCat != 0 && rc&r.RightCat != 0 {
			return r.Boundary
		}
	}
	return true
}

// BoundaryPenalty returns the cost added to a Viterbi relaxation for
// crossing the edge between left and right.
func (s *Segmenter) BoundaryPenalty(left, right *lattice.Node) int32 {
	lc, rc := s.catsOf(left, right)
	for _, r := range s.rules {
		if lc&r.LeftCat != 0 && rc&r.RightCat != 0 {
			return r.Penalty
		}
	}
	return 0
}
