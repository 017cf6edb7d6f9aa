package converter

import (
	"context"
	"unicode/utf8"

	"kanaconv/dictionary"
	"kanaconv/lattice"
	"kanaconv/request"
	"kanaconv/segment"
)

// MakeLattice populates lat for a single conversion call: history
// segments become a chain of pre-seated History nodes, a segment
// pinned to a FixedValue (re-conversion: the caller has already
// committed that span's candidate) becomes a single pre-seeded
// constrained node spanning the whole segment, and every valid UTF-8
// boundary of every other segment is driven through a dictionary
// prefix lookup, falling back to the unknown-word guesser at any
// position no token covers.
func (c *ImmutableConverter) MakeLattice(req *request.Request, segments *segment.Segments, lat *lattice.Lattice) error {
	if segments.ConversionSegmentsSize() == 0 {
		return ErrInvalidInput
	}
	fullKey := concatKeys(segments)
	if len(fullKey) == 0 || !utf8.ValidString(fullKey) {
		return ErrInvalidInput
	}

	lat.SetKey(fullKey)

	offset := c.insertHistoryNodes(segments, lat)

	for i := segments.HistorySegmentsSize(); i < segments.Size(); i++ {
		seg := segments.Segment(i)
		end := offset + len(seg.Key)
		if seg.Type == segment.FixedValue {
			c.insertFixedValueNode(lat, seg, offset)
		} else {
			for p := offset; p < end; {
				r, size := utf8.DecodeRuneInString(fullKey[p:])
				if r == utf8.RuneError && size <= 1 {
					return ErrInvalidInput
				}
				if !c.insertDictionaryNodes(lat, fullKey, p) {
					for _, n := range c.guesser.Guess(fullKey, p) {
						lat.Insert(n)
					}
				}
				p += size
			}
		}
		offset = end
	}

	return nil
}

// insertFixedValueNode seeds the single constrained node that
// represents an already-committed FixedValue segment, so Viterbi has
// no alternative but to route through the caller's pinned candidate
// for that span.
func (c *ImmutableConverter) insertFixedValueNode(lat *lattice.Lattice, seg *segment.Segment, at int) {
	n := lattice.NewNode()
	n.Begin = at
	n.Length = len(seg.Key)
	n.CharLen = utf8Len(seg.Key)
	n.Key = seg.Key
	n.Value = seg.Key
	if cand := seg.Candidate(0); cand != nil {
		n.Value = cand.Value
		n.LeftID, n.RightID = cand.LeftID, cand.RightID
		n.WordCost = cand.WordCost
	}
	n.Type = lattice.Constrained
	lat.Insert(n)
}

// insertHistoryNodes seeds one History-typed node per leading History
// segment, chained by Prev, each pre-relaxed to forward cost 0. It
// returns the byte offset one past the last history segment, i.e.
// where conversion-segment lattice construction begins.
func (c *ImmutableConverter) insertHistoryNodes(segments *segment.Segments, lat *lattice.Lattice) int {
	offset := 0
	prev := lat.BOS()
	for i := 0; i < segments.HistorySegmentsSize(); i++ {
		seg := segments.Segment(i)
		n := lattice.NewNode()
		n.Begin = offset
		n.Length = len(seg.Key)
		n.CharLen = utf8Len(seg.Key)
		n.Key = seg.Key
		n.Value = seg.Key
		if cand := seg.Candidate(0); cand != nil {
			n.Value = cand.Value
			n.LeftID, n.RightID = cand.LeftID, cand.RightID
		}
		n.Type = lattice.History
		n.WordCost = 0
		n.FwdCost = 0
		n.Prev = prev
		prev = lat.Insert(n)
		offset += len(seg.Key)
	}
	return offset
}

// insertDictionaryNodes runs a prefix lookup against the system
// dictionary for the key suffix starting at byte offset at, inserting
// one Normal node per returned token. It reports whether any token
// was found, so the caller knows whether to fall back to the
// unknown-word guesser.
func (c *ImmutableConverter) insertDictionaryNodes(lat *lattice.Lattice, key string, at int) bool {
	found := false
	cb := func(matchedKey string, tok dictionary.Token) dictionary.Result {
		n := lattice.NewNode()
		n.Begin = at
		n.Length = len(matchedKey)
		n.CharLen = utf8Len(matchedKey)
		n.Key = matchedKey
		n.Value = tok.Value
		n.LeftID, n.RightID = tok.LeftID, tok.RightID
		n.WordCost = int32(tok.Cost)
		n.Type = lattice.Normal
		n.Attr = lattice.AttrSystemDictionary
		lat.Insert(n)
		found = true
		return dictionary.Continue
	}
	c.dict.LookupPrefix(context.Background(), key[at:], cb)
	return found
}

// MakeLatticeNodesForPredictiveNodes injects predictive-suffix nodes
// for the last conversion segment: at every UTF-8 boundary from the
// first byte of the last conversion segment to the end of the key, it
// queries the suffix dictionary's LookupPredictive on the remaining
// tail and inserts a node for each completion found, additionally
// querying the system dictionary too when req.MixedConversion is set.
// Because the scan never starts before the last conversion segment's
// first byte, no predictive query is ever rooted inside a history
// segment; scanning every position within the segment, not just its
// start, is what lets a tail partway through the segment surface a
// predictive completion.
func (c *ImmutableConverter) MakeLatticeNodesForPredictiveNodes(segments *segment.Segments, req *request.Request, lat *lattice.Lattice) {
	lastConvIdx := segments.Size() - 1
	if lastConvIdx < segments.HistorySegmentsSize() {
		return
	}
	begin := 0
	for i := 0; i < lastConvIdx; i++ {
		begin += len(segments.Segment(i).Key)
	}

	key := lat.Key()
	for i := begin; i < len(key); {
		r, size := utf8.DecodeRuneInString(key[i:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		pos := i
		cb := func(matchedKey string, tok dictionary.Token) dictionary.Result {
			n := lattice.NewNode()
			n.Begin = pos
			n.Length = len(matchedKey)
			n.CharLen = utf8Len(matchedKey)
			n.Key = matchedKey
			n.Value = tok.Value
			n.LeftID, n.RightID = tok.LeftID, tok.RightID
			n.WordCost = int32(tok.Cost)
			n.Type = lattice.Normal
			lat.InsertAt(n, lat.Len())
			return dictionary.Continue
		}
		c.suffixDict.LookupPredictive(context.Background(), key[i:], cb)
		if req.MixedConversion {
			c.dict.LookupPredictive(context.Background(), key[i:], cb)
		}
		i += size
	}
}

func utf8Len(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
