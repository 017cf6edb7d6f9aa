package dictionary

import "context"

// Spy wraps an Interface and records every key passed to
// LookupPredictive, letting tests assert which predictive queries the
// lattice-construction stage actually issued, grounded directly on
// the reference test harness's KeyCheckDictionary, which records
// LookupPredictive queries the same way.
type Spy struct {
	Interface
	PredictiveQueries []string
}

// NewSpy wraps inner, recording its LookupPredictive queries.
func NewSpy(inner Interface) *Spy {
	return &Spy{Interface: inner}
}

// LookupPredictive records k before delegating to the wrapped
// dictionary.
func (s *Spy) LookupPredictive(ctx context.Context, k string, cb Callback) {
	s.PredictiveQueries = append(s.PredictiveQueries, k)
	s.Interface.LookupPredictive(ctx, k, cb)
}

// Received reports whether LookupPredictive was ever called with
// exactly key k.
func (s *Spy) Received(key string) bool {
	for _, q := range s.PredictiveQueries {
		if q == key {
			return true
		}
	}
	return false
}
