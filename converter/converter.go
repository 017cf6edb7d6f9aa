// Package converter is the immutable conversion core: lattice
// construction, Viterbi, backward N-best, segment grouping, candidate
// synthesis and dummy fill. Grounded on the mozc test
// harness's MockDataAndImmutableConverter wiring order (dictionary,
// suffix dictionary, connector, segmenter, pos matcher, pos group) and
// on the teacher's preference for small explicit constructors over a
// process-wide data manager (the "global data manager" redesign flag).
package converter

import (
	"kanaconv/config"
	"kanaconv/connector"
	"kanaconv/dictionary"
	"kanaconv/klog"
	"kanaconv/lattice"
	"kanaconv/pos"
	"kanaconv/request"
	"kanaconv/segment"
	"kanaconv/segmenter"
	"kanaconv/unknownword"

	"github.com/charmbracelet/log"
)

// ImmutableConverter holds every read-only collaborator the core
// needs for a conversion call. None of them are mutated by a call;
// they must all be safe for concurrent readers, which a caller
// satisfies by handing every ImmutableConverter instance (or several,
// sharing the same collaborators) the same values.
type ImmutableConverter struct {
	dict       dictionary.Interface
	suffixDict dictionary.Interface
	conn       *connector.Connector
	segmenter  *segmenter.Segmenter
	posMatcher *pos.Matcher
	posGroup   *pos.Group
	guesser    *unknownword.Guesser
	cfg        config.Config
	logger     *log.Logger

	// lastLocked is the locked-boundary set Viterbi computed for the
	// call in progress; NBest reapplies it. See Viterbi's doc comment.
	lastLocked map[int]bool
}

// New builds an ImmutableConverter. logger may be nil, in which case
// klog.Default() is used.
func New(
	dict, suffixDict dictionary.Interface,
	conn *connector.Connector,
	seg *segmenter.Segmenter,
	posMatcher *pos.Matcher,
	posGroup *pos.Group,
	guesser *unknownword.Guesser,
	cfg config.Config,
	logger *log.Logger,
) *ImmutableConverter {
	if logger == nil {
		logger = klog.Default()
	}
	return &ImmutableConverter{
		dict:       dict,
		suffixDict: suffixDict,
		conn:       conn,
		segmenter:  seg,
		posMatcher: posMatcher,
		posGroup:   posGroup,
		guesser:    guesser,
		cfg:        cfg,
		logger:     logger,
	}
}

// Convert runs ConvertForRequest with default request options; the
// mode (conversion or prediction family) comes from
// segments.RequestType.
func (c *ImmutableConverter) Convert(segments *segment.Segments) bool {
	req := request.New()
	return c.ConvertForRequest(&req, segments)
}

// ConvertForRequest is the orchestrator entry point: it validates
// input, drops over-long history, builds the lattice, injects
// predictive nodes for PREDICTION-family requests, runs Viterbi and
// N-best, populates segments, tops up with dummies, and returns
// success/failure. Segments is mutated in place; on failure it may
// already carry the history drop and, if failure came during segment
// population, conversion segments whose candidates were cleared or
// only partly refilled.
func (c *ImmutableConverter) ConvertForRequest(req *request.Request, segments *segment.Segments) bool {
	if segments.ConversionSegmentsSize() == 0 {
		c.logger.Debug("convert: no conversion segments")
		return false
	}

	if err := c.checkCollaborators(); err != nil {
		c.logger.Debug("convert: collaborator unavailable", "err", err)
		return false
	}

	c.dropHistoryIfTooLong(segments)

	lat := lattice.New()
	if err := c.MakeLattice(req, segments, lat); err != nil {
		c.logger.Debug("convert: lattice construction failed", "err", err)
		return false
	}

	if isPredictionFamily(segments.RequestType) {
		c.MakeLatticeNodesForPredictiveNodes(segments, req, lat)
	}

	c.Viterbi(segments, lat)

	if lat.Node(lat.EOS()).FwdCost >= lattice.Unreached {
		c.logger.Debug("convert: EOS unreachable, coverage failure")
		return false
	}

	n := c.nBestSize(segments)
	paths := c.NBest(lat, n)
	if len(paths) == 0 {
		return false
	}

	if err := c.populateSegments(req, segments, lat, paths); err != nil {
		c.logger.Debug("convert: segment population failed", "err", err)
		return false
	}

	c.topUpWithDummies(segments)

	return true
}

// checkCollaborators reports ErrDataUnavailable if any collaborator a
// conversion call needs was never wired in.
func (c *ImmutableConverter) checkCollaborators() error {
	if c.dict == nil || c.conn == nil || c.segmenter == nil || c.posMatcher == nil || c.guesser == nil {
		return ErrDataUnavailable
	}
	return nil
}

func (c *ImmutableConverter) nBestSize(segments *segment.Segments) int {
	if isPredictionFamily(segments.RequestType) && segments.MaxPredictionCandidatesSize > 0 {
		return segments.MaxPredictionCandidatesSize
	}
	return c.cfg.DefaultConversionCandidates
}

func isPredictionFamily(rt segment.RequestType) bool {
	switch rt {
	case segment.Prediction, segment.Suggestion, segment.PartialPrediction, segment.PartialSuggestion:
		return true
	default:
		return false
	}
}

// dropHistoryIfTooLong removes every leading History segment from
// segments if their concatenated key byte length exceeds
// cfg.HistoryKeyByteLimit.
func (c *ImmutableConverter) dropHistoryIfTooLong(segments *segment.Segments) {
	n := segments.HistorySegmentsSize()
	if n == 0 {
		return
	}
	total := 0
	for i := 0; i < n; i++ {
		total += len(segments.Segment(i).Key)
	}
	if total <= c.cfg.HistoryKeyByteLimit {
		return
	}
	rest := make([]segment.Segment, 0, segments.Size()-n)
	for i := n; i < segments.Size(); i++ {
		rest = append(rest, *segments.Segment(i))
	}
	segments.Clear()
	for _, s := range rest {
		segments.AddSegment(s)
	}
}

// concatKeys returns the concatenation of every segment's key, in
// order (history segments first), which is the full lattice key.
func concatKeys(segments *segment.Segments) string {
	var sb []byte
	for i := 0; i < segments.Size(); i++ {
		sb = append(sb, segments.Segment(i).Key...)
	}
	return string(sb)
}
