package converter

import "kanaconv/segment"

// topUpWithDummies runs InsertDummyCandidates over every conversion
// segment (history segments are never padded), targeting the same
// desired size the N-best search was run with.
func (c *ImmutableConverter) topUpWithDummies(segments *segment.Segments) {
	histN := segments.HistorySegmentsSize()
	desired := c.nBestSize(segments)
	for i := histN; i < segments.Size(); i++ {
		c.InsertDummyCandidates(segments.Segment(i), desired)
	}
}
