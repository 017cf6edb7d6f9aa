package converter

import (
	"kanaconv/lattice"
	"kanaconv/request"
	"kanaconv/segment"
)

// populateSegments projects the N-best paths onto segments' output
// candidates, branching on request type: CONVERSION
// produces one segment per user-defined span with no inner-segment
// boundaries, PREDICTION/SUGGESTION collapse into a single full-span
// segment whose candidates carry inner-segment boundaries and,
// optionally, partial-key candidates.
func (c *ImmutableConverter) populateSegments(req *request.Request, segments *segment.Segments, lat *lattice.Lattice, paths [][]lattice.NodeIndex) error {
	if isPredictionFamily(segments.RequestType) {
		return c.populatePredictionSegment(req, segments, lat, paths)
	}
	return c.populateConversionSegments(segments, lat, paths)
}

func (c *ImmutableConverter) populateConversionSegments(segments *segment.Segments, lat *lattice.Lattice, paths [][]lattice.NodeIndex) error {
	histN := segments.HistorySegmentsSize()
	n := segments.Size()
	if n <= histN {
		return ErrInvalidInput
	}

	type span struct{ start, end int }
	spans := make([]span, 0, n-histN)
	offset := 0
	for i := 0; i < histN; i++ {
		offset += len(segments.Segment(i).Key)
	}
	for i := histN; i < n; i++ {
		start := offset
		offset += len(segments.Segment(i).Key)
		spans = append(spans, span{start, offset})
		segments.Segment(i).Candidates = nil
	}

	seenPerSpan := make([]map[string]bool, len(spans))
	acceptedPerSpan := make([][]segment.Candidate, len(spans))
	for i := range seenPerSpan {
		seenPerSpan[i] = map[string]bool{}
	}

	for _, path := range paths {
		for si, sp := range spans {
			nodes := nodesInRange(lat, path, sp.start, sp.end)
			if len(nodes) == 0 {
				continue
			}
			cand := c.buildCandidate(lat, nodes, false)
			sig := cand.Key + "\x00" + cand.Value
			if seenPerSpan[si][sig] {
				continue
			}
			if c.isGroupDuplicate(acceptedPerSpan[si], cand) {
				continue
			}
			seenPerSpan[si][sig] = true
			acceptedPerSpan[si] = append(acceptedPerSpan[si], cand)
			segments.Segment(histN + si).AddCandidate(cand)
		}
	}

	for i := histN; i < n; i++ {
		if len(segments.Segment(i).Candidates) == 0 {
			return ErrCoverageFailure
		}
	}
	return nil
}

func (c *ImmutableConverter) populatePredictionSegment(req *request.Request, segments *segment.Segments, lat *lattice.Lattice, paths [][]lattice.NodeIndex) error {
	histN := segments.HistorySegmentsSize()
	n := segments.Size()
	if n <= histN {
		return ErrInvalidInput
	}

	start := 0
	for i := 0; i < histN; i++ {
		start += len(segments.Segment(i).Key)
	}
	fullKey := lat.Key()[start:]

	out := segment.Segment{Type: segment.Free, Key: fullKey}
	singleSegment := segments.ConversionSegmentsSize() == 1

	seen := map[string]bool{}
	var accepted []segment.Candidate
	for pi, path := range paths {
		nodes := nodesFrom(lat, path, start)
		if len(nodes) == 0 {
			continue
		}
		cand := c.buildCandidate(lat, nodes, true)
		sig := cand.Key + "\x00" + cand.Value
		if seen[sig] {
			continue
		}
		if c.isGroupDuplicate(accepted, cand) {
			continue
		}
		seen[sig] = true
		accepted = append(accepted, cand)
		out.AddCandidate(cand)

		if req.CreatePartialCandidates && singleSegment && pi == 0 {
			for k := 1; k < len(nodes); k++ {
				partial := c.buildCandidate(lat, nodes[:k], true)
				if partial.Key == cand.Key {
					continue
				}
				psig := partial.Key + "\x00" + partial.Value
				if seen[psig] {
					continue
				}
				seen[psig] = true
				partial.Attr |= segment.AttrPartiallyKeyConsumed
				out.AddCandidate(partial)
			}
		}
	}

	if len(out.Candidates) == 0 {
		return ErrCoverageFailure
	}

	rebuilt := make([]segment.Segment, 0, histN+1)
	for i := 0; i < histN; i++ {
		rebuilt = append(rebuilt, *segments.Segment(i))
	}
	rebuilt = append(rebuilt, out)
	requestType := segments.RequestType
	maxPred := segments.MaxPredictionCandidatesSize
	segments.Clear()
	segments.RequestType = requestType
	segments.MaxPredictionCandidatesSize = maxPred
	for _, s := range rebuilt {
		segments.AddSegment(s)
	}
	return nil
}

// isGroupDuplicate reports whether cand's content collapses into an
// already-accepted candidate under POS group equivalence: same
// content key/value, and a group-equivalent trailing right POS
// (mozc's PosGroup collapses candidates like this, e.g. an honorific
// suffix variant against its plain-form group representative).
func (c *ImmutableConverter) isGroupDuplicate(accepted []segment.Candidate, cand segment.Candidate) bool {
	if c.posGroup == nil {
		return false
	}
	for _, a := range accepted {
		if a.ContentKey == cand.ContentKey && a.ContentValue == cand.ContentValue && c.posGroup.SameGroup(a.RightID, cand.RightID) {
			return true
		}
	}
	return false
}

// nodesInRange returns the non-sentinel, non-history nodes of path
// whose Begin falls within [start, end).
func nodesInRange(lat *lattice.Lattice, path []lattice.NodeIndex, start, end int) []lattice.NodeIndex {
	var out []lattice.NodeIndex
	for _, idx := range path {
		n := lat.Node(idx)
		if n.Type == lattice.BOS || n.Type == lattice.EOS || n.Type == lattice.History {
			continue
		}
		if n.Begin < start || n.Begin >= end {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// nodesFrom returns the non-sentinel, non-history nodes of path whose
// Begin is at or after start, in path order. Unlike nodesInRange it
// has no upper bound, since predictive nodes may report a Length
// extending past the lattice's key.
func nodesFrom(lat *lattice.Lattice, path []lattice.NodeIndex, start int) []lattice.NodeIndex {
	var out []lattice.NodeIndex
	for _, idx := range path {
		n := lat.Node(idx)
		if n.Type == lattice.BOS || n.Type == lattice.EOS || n.Type == lattice.History {
			continue
		}
		if n.Begin < start {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// buildCandidate concatenates nodes' key/value into one candidate,
// computing content-key/value by stripping the trailing run of nodes
// whose LeftID is functional ("content key / value"), and optionally
// populating per-node inner-segment boundaries (never requested for
// CONVERSION-mode candidates).
func (c *ImmutableConverter) buildCandidate(lat *lattice.Lattice, nodes []lattice.NodeIndex, includeInner bool) segment.Candidate {
	if len(nodes) == 0 {
		return segment.Candidate{}
	}

	contentEnd := len(nodes)
	for contentEnd > 0 && c.posMatcher.IsFunctional(lat.Node(nodes[contentEnd-1]).LeftID) {
		contentEnd--
	}
	if contentEnd == 0 {
		contentEnd = len(nodes)
	}

	var key, value, contentKey, contentValue []byte
	var wordCost, structureCost int32
	var inner []segment.InnerBoundary

	for i, idx := range nodes {
		n := lat.Node(idx)
		key = append(key, n.Key...)
		value = append(value, n.Value...)
		wordCost += n.WordCost
		if i > 0 {
			prev := lat.Node(nodes[i-1])
			structureCost += c.conn.Cost(prev.RightID, n.LeftID) + c.segmenter.BoundaryPenalty(prev, n)
		}

		b := segment.InnerBoundary{KeyBytes: len(n.Key), ValueBytes: len(n.Value)}
		if i < contentEnd {
			b.ContentKeyBytes, b.ContentValueBytes = len(n.Key), len(n.Value)
			contentKey = append(contentKey, n.Key...)
			contentValue = append(contentValue, n.Value...)
		}
		if includeInner {
			inner = append(inner, b)
		}
	}

	return segment.Candidate{
		Key:           string(key),
		Value:         string(value),
		ContentKey:    string(contentKey),
		ContentValue:  string(contentValue),
		WordCost:      wordCost,
		StructureCost: structureCost,
		InnerSegments: inner,
		LeftID:        lat.Node(nodes[0]).LeftID,
		RightID:       lat.Node(nodes[len(nodes)-1]).RightID,
	}
}
