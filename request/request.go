// Package request carries per-call conversion options into the
// converter, keeping the large ImmutableConverter constructor free of
// an ever-growing parameter list. Grounded on the
// teacher's option-struct style for its own tokenizer config, switched
// here to the functional-options idiom used throughout the example
// pack's constructors (bastiangx-wordserve's server options in
// particular) since a Request is built once per call site and tends
// to accrete fields over time.
package request

// Composer abstracts the caller's text composition state (the
// in-progress keystroke buffer) for reverse-conversion-style use
// cases. The converter never inspects it; it is passed through so
// callers embedding this engine in a larger IME can recover their own
// composer instance from within callbacks that only receive a
// *Request.
type Composer any

// Request carries the options that change how ConvertForRequest
// behaves for a single call.
type Request struct {
	// CreatePartialCandidates enables partial-key candidate synthesis
	// for PREDICTION-family requests with a single conversion segment:
	// each proper prefix of the best path's node sequence is added as a
	// PARTIALLY_KEY_CONSUMED candidate whose key stops short of the
	// full key.
	CreatePartialCandidates bool

	// UseActualConverterForRealtimeConversion is carried on the request
	// but is not read by the converter; every call runs the same full
	// N-best search whatever its value.
	UseActualConverterForRealtimeConversion bool

	// MixedConversion widens predictive-suffix node injection during
	// PREDICTION mode to also query the system dictionary, not just
	// the suffix dictionary, for completions of the typed tail.
	// Predictive-suffix injection itself always runs for PREDICTION
	// requests; this only controls which dictionaries feed it.
	MixedConversion bool

	Composer Composer
}

// Option mutates a Request under construction.
type Option func(*Request)

// New builds a Request, applying opts in order.
func New(opts ...Option) Request {
	var r Request
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithPartialCandidates enables or disables partial-key candidate
// synthesis.
func WithPartialCandidates(enabled bool) Option {
	return func(r *Request) { r.CreatePartialCandidates = enabled }
}

// WithActualConverterForRealtime sets
// UseActualConverterForRealtimeConversion.
func WithActualConverterForRealtime(enabled bool) Option {
	return func(r *Request) { r.UseActualConverterForRealtimeConversion = enabled }
}

// WithMixedConversion enables or disables widening predictive-suffix
// injection to also draw from the system dictionary.
func WithMixedConversion(enabled bool) Option {
	return func(r *Request) { r.MixedConversion = enabled }
}

// WithComposer attaches a caller-owned composer value to the Request.
func WithComposer(c Composer) Option {
	return func(r *Request) { r.Composer = c }
}
