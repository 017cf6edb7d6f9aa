// Package dictionary defines the read-only lookup capability the
// conversion core consumes: four visitor-driven lookup modes plus
// membership predicates. The concrete implementation is a trie over
// github.com/tchap/go-patricia, the same library bastiangx-wordserve
// uses for prefix completion (patricia.Trie's VisitSubtree is the
// natural expression of this package's callback-bounded
// prefix/predictive walks).
package dictionary

import (
	"context"

	"kanaconv/pos"
)

// Token is a single dictionary entry: the reading/value pair plus the
// POS and cost data a lattice node needs.
type Token struct {
	Key     string
	Value   string
	LeftID  pos.ID
	RightID pos.ID
	Cost    int16
}

// Result is the callback control value a Callback returns, standing
// in for the source's polymorphic callback object per the design
// notes' "closed tagged-variant" guidance.
type Result int

const (
	// Continue tells the lookup to keep visiting further tokens.
	Continue Result = iota
	// Stop tells the lookup to halt immediately.
	Stop
	// RemoveToken tells the lookup to discard the current token but
	// continue visiting.
	RemoveToken
	// RemoveAllRemaining tells the lookup to discard the current and
	// all further tokens, halting the walk.
	RemoveAllRemaining
)

// Callback is invoked once per candidate token during a lookup, with
// the key that actually matched (which may be a prefix of the query
// key) and the token itself.
type Callback func(matchedKey string, t Token) Result

// Interface is the read-only capability the conversion core depends
// on. Implementations must be safe for concurrent readers and must
// never mutate state visible to a caller.
type Interface interface {
	// LookupPrefix emits every token whose key is a prefix of k.
	LookupPrefix(ctx context.Context, k string, cb Callback)
	// LookupExact emits tokens whose key equals k.
	LookupExact(ctx context.Context, k string, cb Callback)
	// LookupPredictive emits tokens whose key has k as a prefix.
	LookupPredictive(ctx context.Context, k string, cb Callback)
	// LookupReverse emits tokens whose surface value is a prefix of s.
	LookupReverse(ctx context.Context, s string, cb Callback)
	// HasKey reports whether any token has key k.
	HasKey(k string) bool
	// HasValue reports whether any token has surface value v.
	HasValue(v string) bool
}
