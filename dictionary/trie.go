package dictionary

import (
	"context"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Trie is the concrete, immutable dictionary implementation backing
// every dictionary kind the core depends on (system/suffix/value/user/
// suppression dictionaries all share this shape, differing only in
// the token set they are built from). It is built once via NewTrie
// and never mutated afterward, satisfying the read-safety contract of
// Interface.
type Trie struct {
	forward *patricia.Trie // key -> []Token, for prefix/exact/predictive lookups
	reverse *patricia.Trie // value -> []Token, for reverse lookups
	keys    map[string]bool
	values  map[string]bool
}

// NewTrie builds a Trie from a flat token list. Multiple tokens may
// share a key (homophones) or a value; both tries store a slice of
// tokens per node.
func NewTrie(tokens []Token) *Trie {
	t := &Trie{
		forward: patricia.NewTrie(),
		reverse: patricia.NewTrie(),
		keys:    make(map[string]bool),
		values:  make(map[string]bool),
	}
	byKey := make(map[string][]Token)
	byValue := make(map[string][]Token)
	for _, tok := range tokens {
		byKey[tok.Key] = append(byKey[tok.Key], tok)
		byValue[tok.Value] = append(byValue[tok.Value], tok)
		t.keys[tok.Key] = true
		t.values[tok.Value] = true
	}
	for k, toks := range byKey {
		t.forward.Insert(patricia.Prefix(k), toks)
	}
	for v, toks := range byValue {
		t.reverse.Insert(patricia.Prefix(v), toks)
	}
	return t
}

func toksOf(item patricia.Item) []Token {
	if item == nil {
		return nil
	}
	toks, _ := item.([]Token)
	return toks
}

// LookupPrefix emits every token whose key is a byte-for-byte prefix
// of k, walking UTF-8 character boundaries only.
func (t *Trie) LookupPrefix(ctx context.Context, k string, cb Callback) {
	for i := 0; i <= len(k); {
		item := t.forward.Get(patricia.Prefix(k[:i]))
		if res := emitAll(k[:i], toksOf(item), cb); res == Stop || res == RemoveAllRemaining {
			return
		}
		if i == len(k) {
			break
		}
		_, size := utf8.DecodeRuneInString(k[i:])
		if size <= 0 {
			size = 1
		}
		i += size
	}
}

// LookupExact emits tokens whose key equals k exactly.
func (t *Trie) LookupExact(ctx context.Context, k string, cb Callback) {
	item := t.forward.Get(patricia.Prefix(k))
	emitAll(k, toksOf(item), cb)
}

// LookupPredictive emits tokens whose key has k as a prefix, i.e. the
// reverse direction of LookupPrefix, bounded by the callback's control
// return.
func (t *Trie) LookupPredictive(ctx context.Context, k string, cb Callback) {
	_ = t.forward.VisitSubtree(patricia.Prefix(k), func(p patricia.Prefix, item patricia.Item) error {
		res := emitAll(string(p), toksOf(item), cb)
		if res == Stop || res == RemoveAllRemaining {
			return errStopVisit
		}
		return nil
	})
}

// LookupReverse emits tokens whose surface value is a prefix of s.
func (t *Trie) LookupReverse(ctx context.Context, s string, cb Callback) {
	for i := 0; i <= len(s); {
		item := t.reverse.Get(patricia.Prefix(s[:i]))
		if res := emitAll(s[:i], toksOf(item), cb); res == Stop || res == RemoveAllRemaining {
			return
		}
		if i == len(s) {
			break
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			size = 1
		}
		i += size
	}
}

// HasKey reports whether any token has key k.
func (t *Trie) HasKey(k string) bool { return t.keys[k] }

// HasValue reports whether any token has surface value v.
func (t *Trie) HasValue(v string) bool { return t.values[v] }

// errStopVisit is a private sentinel used only to unwind
// VisitSubtree's visitor early; it never escapes this package.
var errStopVisit = errStop{}

type errStop struct{}

func (errStop) Error() string { return "dictionary: lookup stopped" }

// emitAll invokes cb for each token in toks matched at matchedKey,
// honoring the Result control protocol: RemoveToken skips that one
// token but continues, Stop/RemoveAllRemaining halt immediately.
func emitAll(matchedKey string, toks []Token, cb Callback) Result {
	for _, tok := range toks {
		switch cb(matchedKey, tok) {
		case Continue, RemoveToken:
			continue
		case Stop:
			return Stop
		case RemoveAllRemaining:
			return RemoveAllRemaining
		}
	}
	return Continue
}
