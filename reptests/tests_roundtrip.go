package reptests

import "github.com/act4e/data-contract-tests/corpus"

// DoRoundTripTests runs the loader/saver round trip for every family the
// corpus has fixtures for, one subtest per fixture.
func DoRoundTripTests(t *T) {
	for _, family := range corpus.AllowedTags {
		family := family
		sel := t.Corpus().ByTag(family)
		if len(sel) == 0 {
			continue
		}
		t.Run(family, func(t *T) {
			t.requireRepresentation(family)
			for _, key := range sel.Keys() {
				f := sel[key]
				if len(f.Requires) > 0 {
					continue // exercised by the optional-operation tests
				}
				t.Run(key, func(t *T) {
					t.RoundTripPayload(family, f.Data)
				})
			}
		})
	}
}
