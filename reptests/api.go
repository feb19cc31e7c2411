package reptests

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/require"

	"github.com/act4e/data-contract-tests/checks"
	"github.com/act4e/data-contract-tests/contract"
	"github.com/act4e/data-contract-tests/corpus"
	"github.com/act4e/data-contract-tests/framework"
)

// AllCapabilities is every capability name a candidate can declare: one per
// abstraction family, plus one per optional operation.
var AllCapabilities = append(append([]string{}, corpus.AllowedTags...), corpus.AllowedRequires...)

// familyResultTypes gives, per family tag, the interface a loaded object must
// satisfy unless the candidate overrides it.
var familyResultTypes = map[string]reflect.Type{
	"set":               reflect.TypeOf((*contract.FiniteSet)(nil)).Elem(),
	"poset":             reflect.TypeOf((*contract.FinitePoset)(nil)).Elem(),
	"relation":          reflect.TypeOf((*contract.FiniteRelation)(nil)).Elem(),
	"map":               reflect.TypeOf((*contract.FiniteMap)(nil)).Elem(),
	"semigroup":         reflect.TypeOf((*contract.FiniteSemigroup)(nil)).Elem(),
	"monoid":            reflect.TypeOf((*contract.FiniteMonoid)(nil)).Elem(),
	"group":             reflect.TypeOf((*contract.FiniteGroup)(nil)).Elem(),
	"category":          reflect.TypeOf((*contract.FiniteCategory)(nil)).Elem(),
	"natural_transform": reflect.TypeOf((*contract.FiniteNaturalTransformation)(nil)).Elem(),
	"dp":                reflect.TypeOf((*contract.FiniteDP)(nil)).Elem(),
}

// Candidate describes an implementation under test: which families it can
// represent, which optional operations it supports, and how to reach it.
type Candidate struct {
	// Name is used in log output only.
	Name string

	// Capabilities holds the family tags and optional-operation names the
	// implementation declares.
	Capabilities []string

	// Representations maps family tags to the loader/saver pair for that
	// family. A family without an entry is skipped.
	Representations map[string]contract.Representation

	// ResultTypes optionally overrides, per family, the type a Load result
	// must have. Bridged candidates set this to their handle type; when absent
	// the family's contract interface is required.
	ResultTypes map[string]reflect.Type
}

func (c Candidate) hasCapability(name string) bool {
	for _, capability := range c.Capabilities {
		if capability == name {
			return true
		}
	}
	return false
}

func (c Candidate) resultType(family string) reflect.Type {
	if t, ok := c.ResultTypes[family]; ok {
		return t
	}
	return familyResultTypes[family]
}

// T represents a test or subtest in the conformance suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such
// as per-test debug logging provided by the lower-level framework package.
//
// To make test assertions, you can use the assert and require packages,
// passing the *T as if it were a *testing.T. The fixture interaction methods
// also carry built-in assertions, so tests stay free of boilerplate.
type T struct {
	context   *framework.Context
	candidate Candidate
	corpus    corpus.Corpus
	helper    contract.IOHelper
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...any) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, candidate: t.candidate, corpus: t.corpus, helper: t.helper})
	})
}

// Debug logs some debug output for the test. The output is passed to the test
// logger at the end of the test.
func (t *T) Debug(format string, args ...any) {
	t.context.Debug(format, args...)
}

// SkipWithReason marks the test as skipped and immediately exits it.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Candidate returns the implementation under test.
func (t *T) Candidate() Candidate {
	return t.candidate
}

// Corpus returns the fixture corpus the suite runs against.
func (t *T) Corpus() corpus.Corpus {
	return t.corpus
}

// RequireCapability skips this test if the candidate did not declare that it
// supports the specified capability.
func (t *T) RequireCapability(capability string) {
	if !t.candidate.hasCapability(capability) {
		t.context.SkipWithReason(fmt.Sprintf("candidate does not have capability %q", capability))
	}
}

func (t *T) requireRepresentation(family string) contract.Representation {
	rep, ok := t.candidate.Representations[family]
	if !ok {
		t.context.SkipWithReason(fmt.Sprintf("candidate has no %s representation", family))
	}
	return rep
}

// RoundTripPayload loads a payload with the family's representation, saves
// the loaded object back, validates the saved form, and finally loads the
// saved form again to confirm the representation accepts its own output.
//
// The test is skipped if the candidate has no representation for the family
// or answers "not implemented" for the initial load. The reloaded object is
// returned.
func (t *T) RoundTripPayload(family string, payload any) any {
	rep := t.requireRepresentation(family)
	want := t.candidate.resultType(family)

	data, err := corpus.Purify(payload)
	require.NoError(t, err)

	t.Debug("loading %s payload: %v", family, data)
	ob, err := checks.LoadValue(t, rep, t.helper, data, want)
	if err != nil {
		t.context.SkipWithReason(err.Error())
	}

	saved := checks.SaveValue(t, rep, t.helper, ob)
	t.Debug("saved form: %v", saved)

	reloaded, err := checks.LoadValue(t, rep, t.helper, saved, want)
	if err != nil {
		t.Errorf("Load() accepted the original data but called its own saved form unimplemented: %v", err)
		t.FailNow()
	}
	return reloaded
}
