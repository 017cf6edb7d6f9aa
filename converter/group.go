package converter

import "kanaconv/segment"

// MakeGroup returns, for every byte position 0..L of the lattice key
// segments implies, the id of the locked-boundary span that position
// falls within. Two positions share a group id exactly when no locked
// boundary (per lockedBoundaries) separates them, the same constraint
// Viterbi and NBest enforce on edges, exposed here for white-box
// testing of segment/boundary assignment independent of a full
// conversion call.
func (c *ImmutableConverter) MakeGroup(segments *segment.Segments) []uint16 {
	total := 0
	for i := 0; i < segments.Size(); i++ {
		total += len(segments.Segment(i).Key)
	}
	locked := lockedBoundaries(segments)

	group := make([]uint16, total+1)
	var id uint16
	for p := 0; p <= total; p++ {
		group[p] = id
		if locked[p] {
			id++
		}
	}
	return group
}
