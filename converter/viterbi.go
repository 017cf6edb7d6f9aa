package converter

import (
	"kanaconv/lattice"
	"kanaconv/segment"
)

// Viterbi runs a single forward pass: for every position left to
// right, every right node's forward cost is relaxed against every
// left node ending at that position, through the connector and
// segmenter cost terms. Nodes whose edge would cross a locked segment
// boundary are skipped entirely, leaving their Prev at lattice.None
// if no unlocked edge ever relaxes them.
//
// The computed locked-boundary set is cached on the converter so
// NBest (whose signature takes only the lattice) can reapply the same
// constraint when exploring alternative edges. An ImmutableConverter
// is therefore scoped to one conversion call at a time; callers
// running concurrent conversions construct one instance per call over
// the same shared, read-only collaborators (the collaborators must be
// read-safe, not the orchestrator itself).
func (c *ImmutableConverter) Viterbi(segments *segment.Segments, lat *lattice.Lattice) {
	c.lastLocked = lockedBoundaries(segments)

	for at := 0; at <= lat.Len(); at++ {
		rightIdxs := lat.BeginNodes(at)
		leftIdxs := lat.EndNodes(at)
		for _, rIdx := range rightIdxs {
			right := lat.Node(rIdx)
			if right.Type == lattice.BOS {
				continue
			}
			for _, lIdx := range leftIdxs {
				left := lat.Node(lIdx)
				if left.FwdCost >= lattice.Unreached {
					continue
				}
				if crossesLocked(left.Begin, right.End(), at, c.lastLocked) {
					continue
				}
				cost := left.FwdCost + c.conn.Cost(left.RightID, right.LeftID) + c.segmenter.BoundaryPenalty(left, right) + right.WordCost
				if cost < right.FwdCost {
					right.FwdCost = cost
					right.Prev = lIdx
				} else if cost == right.FwdCost && right.Prev != lattice.None && betterPredecessor(lat, lIdx, right.Prev) {
					right.Prev = lIdx
				}
			}
		}
	}
}

// betterPredecessor implements the deterministic tie-break order:
// lower word cost wins, then longer node length, then whichever
// predecessor relaxed first (kept, since it is only replaced when
// strictly better by the first two criteria).
func betterPredecessor(lat *lattice.Lattice, newIdx, curIdx lattice.NodeIndex) bool {
	newNode, curNode := lat.Node(newIdx), lat.Node(curIdx)
	if newNode.WordCost != curNode.WordCost {
		return newNode.WordCost < curNode.WordCost
	}
	if newNode.Length != curNode.Length {
		return newNode.Length > curNode.Length
	}
	return false
}

// crossesLocked reports whether an edge spanning [leftBegin, rightEnd)
// and meeting at byte position at crosses any locked boundary other
// than at itself.
func crossesLocked(leftBegin, rightEnd, at int, locked map[int]bool) bool {
	for p := range locked {
		if p == at {
			continue
		}
		if p > leftBegin && p < rightEnd {
			return true
		}
	}
	return false
}

// lockedBoundaries derives the set of byte positions a Viterbi edge
// may not cross from segments' layout: for CONVERSION-family requests
// every inter-segment boundary is locked, since the result projects
// onto one output segment per user-defined segment; for
// PREDICTION-family requests only the history/conversion boundary is
// locked, since all conversion segments collapse into one full-span
// output segment.
func lockedBoundaries(segments *segment.Segments) map[int]bool {
	locked := map[int]bool{}
	n := segments.Size()
	if n == 0 {
		return locked
	}
	histN := segments.HistorySegmentsSize()
	predictionFamily := isPredictionFamily(segments.RequestType)

	offset := 0
	for i := 0; i < n; i++ {
		offset += len(segments.Segment(i).Key)
		if i == n-1 {
			break
		}
		if predictionFamily {
			if histN > 0 && i == histN-1 {
				locked[offset] = true
			}
			continue
		}
		locked[offset] = true
	}
	return locked
}
