// Package segment is the converter's output data model: the ordered
// sequence of segments and per-segment candidates returned to a
// caller. Grounded on the teacher's Result/analysis
// output structs (model package), generalized here to the richer
// shape a conversion/prediction engine needs: multiple ranked
// candidates per segment, inner-segment boundaries for compound
// predictions, and a request-type tag that downstream consumers use
// to decide which fields apply.
package segment

import "kanaconv/pos"

// Type classifies a segment's mutability during re-conversion. The
// converter seeds a FixedValue segment's first candidate as the only
// lattice node over its span. For CONVERSION-family requests every
// inter-segment boundary is locked whatever the Type, so Free and
// FixedBoundary segments are handled alike and are not re-split.
type Type uint8

const (
	Free Type = iota
	FixedBoundary
	FixedValue
	History
	Submitted
)

// RequestType tags which conversion mode produced a Segments value,
// mirroring the distinction the lattice's predictive-node injection
// and inner-segment population both key off of.
type RequestType uint8

const (
	Conversion RequestType = iota
	Prediction
	Suggestion
	PartialPrediction
	PartialSuggestion
	ReverseConversion
)

// Attr is a candidate attribute bitset.
type Attr uint8

const (
	// AttrPartiallyKeyConsumed marks a candidate synthesized by
	// partial-key consumption: its key is a strict, non-empty prefix
	// of the segment's full key.
	AttrPartiallyKeyConsumed Attr = 1 << iota
	AttrSpellingCorrection
	AttrNoModification
	AttrReranked
)

// InnerBoundary marks one component of a multi-word candidate's
// decomposition, expressed as that component's own byte lengths of
// key, value, content key and content value (summing them over a
// candidate gives the lengths of its Key/Value/ContentKey/ContentValue).
// Only populated for Prediction/Suggestion candidates; Conversion
// candidates leave Candidate.InnerSegments empty.
type InnerBoundary struct {
	KeyBytes, ValueBytes               int
	ContentKeyBytes, ContentValueBytes int
}

// Candidate is one ranked conversion result for a segment.
type Candidate struct {
	Key, Value               string
	ContentKey, ContentValue string
	WordCost                 int32
	StructureCost            int32
	Attr                     Attr
	InnerSegments            []InnerBoundary
	LeftID, RightID          pos.ID
}

// Segment holds a segment's source key and its ranked candidate list,
// candidate 0 being the top pick.
type Segment struct {
	Type       Type
	Key        string
	Candidates []Candidate
}

// Candidate returns a pointer to the i'th candidate, or nil if i is
// out of range.
func (s *Segment) Candidate(i int) *Candidate {
	if i < 0 || i >= len(s.Candidates) {
		return nil
	}
	return &s.Candidates[i]
}

// AddCandidate appends c to the segment's candidate list.
func (s *Segment) AddCandidate(c Candidate) {
	s.Candidates = append(s.Candidates, c)
}

// Segments is the converter's full output: zero or more leading
// History segments (already-committed text, not re-converted) followed
// by the current conversion/prediction segments.
type Segments struct {
	list                        []Segment
	RequestType                 RequestType
	MaxPredictionCandidatesSize int
}

// HistorySegmentsSize returns the count of leading segments whose Type
// is History.
func (s *Segments) HistorySegmentsSize() int {
	n := 0
	for i := range s.list {
		if s.list[i].Type != History {
			break
		}
		n++
	}
	return n
}

// ConversionSegmentsSize returns the count of segments after the
// leading history run.
func (s *Segments) ConversionSegmentsSize() int {
	return len(s.list) - s.HistorySegmentsSize()
}

// Size returns the total segment count, history included.
func (s *Segments) Size() int {
	return len(s.list)
}

// Segment returns a pointer to the i'th segment (history segments
// included, at the front), or nil if i is out of range.
func (s *Segments) Segment(i int) *Segment {
	if i < 0 || i >= len(s.list) {
		return nil
	}
	return &s.list[i]
}

// AddSegment appends seg to the end of the segment list.
func (s *Segments) AddSegment(seg Segment) {
	s.list = append(s.list, seg)
}

// Clear resets Segments to empty, preserving RequestType and
// MaxPredictionCandidatesSize.
func (s *Segments) Clear() {
	s.list = nil
}
