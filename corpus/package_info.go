// Package corpus loads and validates the fixture corpus that drives the
// conformance tests.
//
// A fixture file is a YAML document whose top level is a mapping from fixture
// name to record:
//
//	set_two:
//	    tags: {set: true}
//	    data:
//	        elements: [a, b]
//	    properties:
//	        powerset: set_two_powerset
//
// A record may declare tags (which abstraction families the fixture
// exercises), requires (optional operations the fixture needs), and
// properties (expected mathematical facts about the fixture). All three are
// checked against fixed whitelists at load time, so a misspelled key fails
// the load instead of silently never matching any test. The data field is
// the fixture payload and is mandatory.
//
// Inside data, a mapping containing the key "load" is a cross-reference: the
// whole mapping is replaced by the named fixture's data. References may be
// chained across fixtures and across files; a reference cycle is a load
// error.
//
// Fixture names are unique across the whole corpus. Load returns an error,
// never a partial corpus.
package corpus
