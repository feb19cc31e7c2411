package reptests

import (
	"github.com/act4e/data-contract-tests/contract"
	"github.com/act4e/data-contract-tests/corpus"
	"github.com/act4e/data-contract-tests/framework"
)

// RunTestSuite runs the full conformance suite for one candidate against the
// given fixture corpus, returning the accumulated results.
func RunTestSuite(
	candidate Candidate,
	c corpus.Corpus,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(ctx *framework.Context) {
		t := &T{
			context:   ctx,
			candidate: candidate,
			corpus:    c,
			helper:    contract.StubIOHelper{},
		}

		t.Run("round trips", DoRoundTripTests)
		t.Run("optional operations", DoRequirementTests)
	})
}
