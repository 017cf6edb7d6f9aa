// Command kanaconv wires the conversion core end to end over a small
// built-in demo dictionary and runs one conversion and one prediction
// pass, printing the resulting segments as JSON. It exists to exercise
// the whole stack the way a real caller would assemble it, not as a
// production IME frontend: no UI/IPC surface.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"kanaconv/config"
	"kanaconv/connector"
	"kanaconv/converter"
	"kanaconv/dictionary"
	"kanaconv/klog"
	"kanaconv/pos"
	"kanaconv/request"
	"kanaconv/segment"
	"kanaconv/segmenter"
	"kanaconv/unknownword"
)

// Demo POS IDs. A real deployment loads these, the connector matrix,
// and the dictionary tokens from a data package; this command hardcodes
// a small closed set so it runs standalone (grounded on the teacher's
// own const-text-instead-of-CLI-flag shortcut in main.go, "replace CLI
// flag with a const text to make running `go run main.go` simple").
const (
	posBOS pos.ID = iota
	posEOS
	posNoun
	posParticle
	posVerb
	posUnknown
)

func demoDictionary() *dictionary.Trie {
	return dictionary.NewTrie([]dictionary.Token{
		{Key: "わたし", Value: "私", LeftID: posNoun, RightID: posNoun, Cost: 100},
		{Key: "の", Value: "の", LeftID: posParticle, RightID: posParticle, Cost: 50},
		{Key: "なまえ", Value: "名前", LeftID: posNoun, RightID: posNoun, Cost: 100},
		{Key: "は", Value: "は", LeftID: posParticle, RightID: posParticle, Cost: 50},
		{Key: "よろしく", Value: "宜しく", LeftID: posVerb, RightID: posVerb, Cost: 100},
	})
}

func demoSuffixDictionary() *dictionary.Trie {
	return dictionary.NewTrie([]dictionary.Token{
		{Key: "よろしくおねがいします", Value: "宜しくお願いします", LeftID: posVerb, RightID: posVerb, Cost: 10},
	})
}

func demoMatcher() *pos.Matcher {
	return pos.NewMatcher(map[pos.ID]pos.Category{
		posBOS:      pos.CatBOS,
		posEOS:      pos.CatEOS,
		posNoun:     pos.CatNoun,
		posParticle: pos.CatParticle,
		posVerb:     pos.CatVerb,
		posUnknown:  0,
	}, map[pos.ID]string{
		posNoun:     "名詞",
		posParticle: "助詞",
		posVerb:     "動詞",
	})
}

func buildConverter() *converter.ImmutableConverter {
	matcher := demoMatcher()
	group := pos.NewGroup(nil)
	conn := connector.NewConnector(make([]int16, 36), 6, 6)
	seg := segmenter.New(matcher, nil)
	guesser := &unknownword.Guesser{
		DefaultLeft: posUnknown, DefaultRight: posUnknown,
		NumberLeft: posUnknown, NumberRight: posUnknown,
		AlphaLeft: posUnknown, AlphaRight: posUnknown,
	}
	if kg, err := unknownword.NewKagomeGuesser(nil, unknownword.ClassIDs{Left: posUnknown, Right: posUnknown}); err == nil {
		guesser.Kagome = kg
	} else {
		klog.Default().Warn("kagome guesser unavailable, continuing without it", "err", err)
	}

	return converter.New(
		demoDictionary(), demoSuffixDictionary(),
		conn, seg, matcher, group, guesser,
		config.Default(), klog.Default(),
	)
}

func main() {
	conv := buildConverter()

	var convSegs segment.Segments
	convSegs.RequestType = segment.Conversion
	convSegs.AddSegment(segment.Segment{Type: segment.Free, Key: "わたしの"})
	convSegs.AddSegment(segment.Segment{Type: segment.Free, Key: "なまえは"})
	if !conv.Convert(&convSegs) {
		fmt.Fprintln(os.Stderr, "conversion failed")
		os.Exit(1)
	}
	printSegments("conversion", &convSegs)

	var predSegs segment.Segments
	predSegs.RequestType = segment.Prediction
	predSegs.MaxPredictionCandidatesSize = 5
	predSegs.AddSegment(segment.Segment{Type: segment.Free, Key: "よろしく"})
	req := request.New(request.WithMixedConversion(true))
	if !conv.ConvertForRequest(&req, &predSegs) {
		fmt.Fprintln(os.Stderr, "prediction failed")
		os.Exit(1)
	}
	printSegments("prediction", &predSegs)
}

func printSegments(label string, segs *segment.Segments) {
	type segOut struct {
		Key        string              `json:"key"`
		Candidates []segment.Candidate `json:"candidates"`
	}
	out := make([]segOut, 0, segs.Size())
	for i := 0; i < segs.Size(); i++ {
		s := segs.Segment(i)
		out = append(out, segOut{Key: s.Key, Candidates: s.Candidates})
	}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Printf("%s:\n%s\n", label, b)
}
