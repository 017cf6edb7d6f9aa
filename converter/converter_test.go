package converter

import (
	"testing"

	"kanaconv/config"
	"kanaconv/connector"
	"kanaconv/dictionary"
	"kanaconv/lattice"
	"kanaconv/pos"
	"kanaconv/request"
	"kanaconv/segment"
	"kanaconv/segmenter"
	"kanaconv/unknownword"
)

// Shared POS fixture. posPart/posAux are functional (stripped from
// content-key/value); the rest are not.
const (
	posNoun  pos.ID = 1
	posPart  pos.ID = 2
	posAux   pos.ID = 3
	posNum   pos.ID = 4
	posAlpha pos.ID = 5
	posUnk   pos.ID = 6
)

func newMatcher() *pos.Matcher {
	return pos.NewMatcher(map[pos.ID]pos.Category{
		posNoun:  pos.CatNoun,
		posPart:  pos.CatParticle,
		posAux:   pos.CatAuxiliaryVerb,
		posNum:   pos.CatNumber,
		posAlpha: pos.CatAlphabet,
	}, nil)
}

func newGuesser() *unknownword.Guesser {
	return &unknownword.Guesser{
		DefaultLeft: posUnk, DefaultRight: posUnk,
		NumberLeft: posNum, NumberRight: posNum,
		AlphaLeft: posAlpha, AlphaRight: posAlpha,
	}
}

// zeroConnector carries no connection costs, so tests can reason about
// total path cost purely in terms of the tokens' own word costs.
func zeroConnector() *connector.Connector {
	const size = 16
	return connector.NewConnector(make([]int16, size*size), size, size)
}

func noBoundaryRules() *segmenter.Segmenter {
	return segmenter.New(newMatcher(), nil)
}

func newTestConverter(dict, suffix dictionary.Interface) *ImmutableConverter {
	return New(dict, suffix, zeroConnector(), noBoundaryRules(), newMatcher(), pos.NewGroup(nil), newGuesser(), config.Default(), nil)
}

func tok(key, value string, cost int16, left, right pos.ID) dictionary.Token {
	return dictionary.Token{Key: key, Value: value, LeftID: left, RightID: right, Cost: cost}
}

func emptyDict() dictionary.Interface { return dictionary.NewTrie(nil) }

func convSeg(key string) segment.Segment { return segment.Segment{Type: segment.Free, Key: key} }

// --- Convert preserves the joined reading ---

func TestConversionPreservesJoinedReading(t *testing.T) {
	dict := dictionary.NewTrie([]dictionary.Token{
		tok("さくら", "桜", 100, posNoun, posNoun),
		tok("はな", "花", 100, posNoun, posNoun),
	})
	conv := newTestConverter(dict, emptyDict())

	var segs segment.Segments
	segs.RequestType = segment.Conversion
	segs.AddSegment(convSeg("さくら"))
	segs.AddSegment(convSeg("はな"))

	if !conv.Convert(&segs) {
		t.Fatal("Convert returned false")
	}

	var joined string
	for i := 0; i < segs.Size(); i++ {
		joined += segs.Segment(i).Key
	}
	if joined != "さくらはな" {
		t.Errorf("joined key = %q, want さくらはな", joined)
	}
}

// --- Inner-segment boundaries reported on a merged prediction candidate ---

func buildMultiWordDict() dictionary.Interface {
	return dictionary.NewTrie([]dictionary.Token{
		tok("わたしの", "私の", 50, posNoun, posNoun),
		tok("なまえは", "名前は", 50, posNoun, posNoun),
		tok("なかのです", "中ノです", 50, posNoun, posNoun),
	})
}

func TestInnerSegmentBoundariesSumToCandidateLength(t *testing.T) {
	conv := newTestConverter(buildMultiWordDict(), emptyDict())

	var segs segment.Segments
	segs.RequestType = segment.Prediction
	segs.MaxPredictionCandidatesSize = 1
	segs.AddSegment(convSeg("わたしのなまえはなかのです"))

	req := request.New()
	if !conv.ConvertForRequest(&req, &segs) {
		t.Fatal("ConvertForRequest returned false")
	}
	if segs.ConversionSegmentsSize() != 1 {
		t.Fatalf("ConversionSegmentsSize = %d, want 1", segs.ConversionSegmentsSize())
	}
	seg := segs.Segment(0)
	top := seg.Candidate(0)
	if top == nil {
		t.Fatal("no top candidate")
	}
	if top.Key != seg.Key {
		t.Fatalf("top candidate key = %q, want full segment key %q", top.Key, seg.Key)
	}
	if len(top.InnerSegments) != 3 {
		t.Fatalf("len(InnerSegments) = %d, want 3", len(top.InnerSegments))
	}

	var keySum, valueSum int
	for _, b := range top.InnerSegments {
		keySum += b.KeyBytes
		valueSum += b.ValueBytes
	}
	if keySum != len(top.Key) {
		t.Errorf("summed key bytes = %d, want %d", keySum, len(top.Key))
	}
	if valueSum != len(top.Value) {
		t.Errorf("summed value bytes = %d, want %d", valueSum, len(top.Value))
	}
	wantKeys := []int{len("わたしの"), len("なまえは"), len("なかのです")}
	for i, b := range top.InnerSegments {
		if b.KeyBytes != wantKeys[i] {
			t.Errorf("InnerSegments[%d].KeyBytes = %d, want %d", i, b.KeyBytes, wantKeys[i])
		}
	}
}

// --- Conversion candidates never carry inner segments ---

func TestConversionCandidatesHaveNoInnerSegments(t *testing.T) {
	dict := dictionary.NewTrie([]dictionary.Token{
		tok("さくら", "桜", 100, posNoun, posNoun),
	})
	conv := newTestConverter(dict, emptyDict())

	var segs segment.Segments
	segs.RequestType = segment.Conversion
	segs.AddSegment(convSeg("さくら"))

	if !conv.Convert(&segs) {
		t.Fatal("Convert returned false")
	}
	for i := 0; i < segs.Size(); i++ {
		seg := segs.Segment(i)
		for _, c := range seg.Candidates {
			if len(c.InnerSegments) != 0 {
				t.Errorf("conversion candidate %+v carries inner segments", c)
			}
		}
	}
}

// --- Dummy fill produces strictly increasing costs ---

func TestDummyCandidatesHaveMonotoneCost(t *testing.T) {
	conv := newTestConverter(emptyDict(), emptyDict())
	seg := &segment.Segment{Key: "てすと"}
	seg.AddCandidate(segment.Candidate{Key: "てすと", Value: "test", WordCost: 100})

	conv.InsertDummyCandidates(seg, 10)

	if len(seg.Candidates) < 3 {
		t.Fatalf("len(Candidates) = %d, want >= 3", len(seg.Candidates))
	}
	for i := 1; i < 3; i++ {
		if seg.Candidates[i].WordCost <= seg.Candidates[i-1].WordCost {
			t.Errorf("candidate %d wcost %d not strictly greater than candidate %d wcost %d",
				i, seg.Candidates[i].WordCost, i-1, seg.Candidates[i-1].WordCost)
		}
	}
}

func TestDummyCandidatesLeaveCandidatelessSegmentUntouched(t *testing.T) {
	conv := newTestConverter(emptyDict(), emptyDict())
	seg := &segment.Segment{Key: "x"}
	conv.InsertDummyCandidates(seg, 10)
	if len(seg.Candidates) != 0 {
		t.Errorf("InsertDummyCandidates should not touch a candidate-less segment")
	}
}

// --- A fixed segment boundary is never relaxed across ---

func TestFixedBoundaryNotCrossed(t *testing.T) {
	// "しょうめい" | "できる", with a deliberately cross-boundary token
	// "いで" (last char of segment 1 + first char of segment 2) added
	// to the test dictionary to probe the constraint.
	dict := dictionary.NewTrie([]dictionary.Token{
		tok("しょうめい", "証明", 100, posNoun, posNoun),
		tok("できる", "出来る", 100, posNoun, posNoun),
		tok("いで", "いで", 10, posNoun, posNoun),
	})
	conv := newTestConverter(dict, emptyDict())

	var segs segment.Segments
	segs.RequestType = segment.Conversion
	segs.AddSegment(segment.Segment{Type: segment.FixedBoundary, Key: "しょうめい"})
	segs.AddSegment(segment.Segment{Type: segment.FixedBoundary, Key: "できる"})

	lat := lattice.New()
	req := request.New()
	if err := conv.MakeLattice(&req, &segs, lat); err != nil {
		t.Fatalf("MakeLattice: %v", err)
	}
	conv.Viterbi(&segs, lat)

	boundary := len([]byte("しょうめい"))
	found := false
	for i := 0; i < lat.NumNodes(); i++ {
		n := lat.Node(lattice.NodeIndex(i))
		if n.Key == "いで" {
			found = true
			if n.Begin >= boundary || n.Begin+n.Length <= boundary {
				t.Fatalf("test token does not actually straddle the boundary: %+v", n)
			}
			if n.Prev != lattice.None {
				t.Errorf("cross-boundary node has prev = %v, want None", n.Prev)
			}
		}
	}
	if !found {
		t.Fatal("cross-boundary probe token was not inserted into the lattice")
	}
}

// --- Over-long history is dropped wholesale ---

func TestOverLongHistoryIsDropped(t *testing.T) {
	conv := newTestConverter(emptyDict(), emptyDict())

	var segs segment.Segments
	segs.RequestType = segment.Conversion
	long := ""
	for i := 0; i < 100; i++ {
		long += "あ"
	}
	for i := 0; i < 4; i++ {
		segs.AddSegment(segment.Segment{Type: segment.History, Key: long})
	}
	segs.AddSegment(convSeg("あ"))

	if !conv.Convert(&segs) {
		t.Fatal("Convert returned false")
	}
	if got := segs.HistorySegmentsSize(); got != 0 {
		t.Errorf("HistorySegmentsSize() = %d, want 0", got)
	}
	if segs.ConversionSegmentsSize() == 0 || len(segs.Segment(0).Candidates) == 0 {
		t.Errorf("expected at least one conversion candidate after history drop")
	}
}

// --- Predictive lookups never root inside a history segment, and do root within the conversion segment ---

func TestPredictiveLookupSuppressedInsideHistory(t *testing.T) {
	suffix := dictionary.NewSpy(dictionary.NewTrie([]dictionary.Token{
		tok("いかが", "如何", 50, posNoun, posNoun),
	}))
	conv := newTestConverter(emptyDict(), suffix)

	var segs segment.Segments
	segs.RequestType = segment.Prediction
	segs.MaxPredictionCandidatesSize = 5
	segs.AddSegment(segment.Segment{Type: segment.History, Key: "いいんじゃな"})
	segs.AddSegment(convSeg("いか"))

	req := request.New(request.WithMixedConversion(true))
	conv.ConvertForRequest(&req, &segs)

	if suffix.Received("ないか") {
		t.Errorf("predictive lookup must never be rooted inside a history segment")
	}
	if !suffix.Received("いか") {
		t.Errorf("expected a predictive lookup for いか (start of the conversion segment)")
	}
}

func TestPredictiveLookupRootsWithinConversionSegment(t *testing.T) {
	suffix := dictionary.NewSpy(dictionary.NewTrie([]dictionary.Token{
		tok("しまね", "島根", 50, posNoun, posNoun),
	}))
	conv := newTestConverter(emptyDict(), suffix)

	var segs segment.Segments
	segs.RequestType = segment.Prediction
	segs.MaxPredictionCandidatesSize = 5
	segs.AddSegment(convSeg("よろしくおねがいします"))

	req := request.New(request.WithMixedConversion(true))
	conv.ConvertForRequest(&req, &segs)

	if !suffix.Received("します") {
		t.Errorf("expected a predictive lookup for します (a tail within the conversion segment)")
	}
}

// --- Basic prediction extends the typed key ---

func TestBasicPredictionExtendsTypedKey(t *testing.T) {
	dict := dictionary.NewTrie([]dictionary.Token{
		tok("よろしく", "宜しく", 100, posNoun, posNoun),
	})
	suffix := dictionary.NewTrie([]dictionary.Token{
		tok("よろしくおねがいします", "宜しくお願いします", 10, posNoun, posNoun),
	})
	conv := newTestConverter(dict, suffix)

	var segs segment.Segments
	segs.RequestType = segment.Prediction
	segs.MaxPredictionCandidatesSize = 10
	segs.AddSegment(convSeg("よろしく"))

	req := request.New(request.WithMixedConversion(true))
	if !conv.ConvertForRequest(&req, &segs) {
		t.Fatal("ConvertForRequest returned false")
	}
	if segs.ConversionSegmentsSize() != 1 {
		t.Fatalf("ConversionSegmentsSize = %d, want 1", segs.ConversionSegmentsSize())
	}
	seg := segs.Segment(0)
	if seg.Key != "よろしく" {
		t.Errorf("segment key mutated: %q", seg.Key)
	}
	if len(seg.Candidates) == 0 {
		t.Fatal("no candidates produced")
	}
	if seg.Candidates[0].Key == seg.Key {
		t.Errorf("expected the top candidate to extend the typed key, got exact match %q", seg.Candidates[0].Key)
	}
}

// --- The partial-candidates request option toggles strict-prefix candidates ---

func anyStrictPrefixCandidate(seg *segment.Segment) bool {
	for _, c := range seg.Candidates {
		if len(c.Key) < len(seg.Key) {
			return true
		}
	}
	return false
}

func TestPartialCandidatesToggle(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		conv := newTestConverter(buildMultiWordDict(), emptyDict())
		var segs segment.Segments
		segs.RequestType = segment.Prediction
		segs.MaxPredictionCandidatesSize = 10
		segs.AddSegment(convSeg("わたしのなまえはなかのです"))

		req := request.New(request.WithPartialCandidates(enabled))
		if !conv.ConvertForRequest(&req, &segs) {
			t.Fatalf("ConvertForRequest returned false (enabled=%v)", enabled)
		}
		seg := segs.Segment(0)
		got := anyStrictPrefixCandidate(seg)
		if got != enabled {
			t.Errorf("create_partial_candidates=%v: strict-prefix candidate present = %v, want %v", enabled, got, enabled)
		}
		if enabled {
			foundAttr := false
			for _, c := range seg.Candidates {
				if len(c.Key) < len(seg.Key) && c.Attr&segment.AttrPartiallyKeyConsumed != 0 {
					foundAttr = true
				}
			}
			if !foundAttr {
				t.Errorf("expected at least one PARTIALLY_KEY_CONSUMED candidate when enabled")
			}
		}
	}
}

// --- Orchestrator input validation ---

func TestConvertRejectsEmptySegments(t *testing.T) {
	conv := newTestConverter(emptyDict(), emptyDict())
	var segs segment.Segments
	if conv.Convert(&segs) {
		t.Errorf("Convert should fail with zero conversion segments")
	}
}

func TestConvertFailsWhenDictionaryMissing(t *testing.T) {
	conv := New(nil, emptyDict(), zeroConnector(), noBoundaryRules(), newMatcher(), pos.NewGroup(nil), newGuesser(), config.Default(), nil)
	var segs segment.Segments
	segs.RequestType = segment.Conversion
	segs.AddSegment(convSeg("さくら"))
	if conv.Convert(&segs) {
		t.Errorf("Convert should fail when a required collaborator is nil")
	}
}

// --- A FixedValue segment pins its candidate, immune to relaxation ---

func TestFixedValueSegmentPinsCandidate(t *testing.T) {
	dict := dictionary.NewTrie([]dictionary.Token{
		tok("さくら", "サクラ", 10, posNoun, posNoun),
		tok("はな", "花", 100, posNoun, posNoun),
	})
	conv := newTestConverter(dict, emptyDict())

	var segs segment.Segments
	segs.RequestType = segment.Conversion
	fixed := segment.Segment{Type: segment.FixedValue, Key: "さくら"}
	fixed.AddCandidate(segment.Candidate{Key: "さくら", Value: "桜", WordCost: 100, LeftID: posNoun, RightID: posNoun})
	segs.AddSegment(fixed)
	segs.AddSegment(convSeg("はな"))

	if !conv.Convert(&segs) {
		t.Fatal("Convert returned false")
	}
	top := segs.Segment(0).Candidate(0)
	if top == nil || top.Value != "桜" {
		t.Fatalf("fixed segment candidate = %+v, want pinned value 桜", top)
	}
}
