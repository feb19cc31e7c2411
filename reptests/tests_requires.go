package reptests

import (
	"github.com/stretchr/testify/require"

	"github.com/act4e/data-contract-tests/corpus"
)

// requirementFamily names the family whose representation an optional
// operation's fixtures are written in.
var requirementFamily = map[string]string{
	"set_product":   "set",
	"set_union":     "set",
	"poset_product": "poset",
	"poset_sum":     "poset",
}

// DoRequirementTests exercises the fixtures of each optional operation the
// candidate declares. Such a fixture describes one application of the
// operation: operand payloads plus the expected result payload, all in the
// representation of the operation's family. The suite round-trips every
// payload; verifying the mathematics of the operation itself is the
// implementation's own business.
func DoRequirementTests(t *T) {
	for _, req := range corpus.AllowedRequires {
		req := req
		sel := t.Corpus().ByRequirement(req)
		if len(sel) == 0 {
			continue
		}
		t.Run(req, func(t *T) {
			t.RequireCapability(req)
			family := requirementFamily[req]
			for _, key := range sel.Keys() {
				f := sel[key]
				t.Run(key, func(t *T) {
					data, ok := f.Data.(map[string]any)
					require.True(t, ok, "payload of a %s fixture must be a mapping", req)

					operands, ok := data["operands"].([]any)
					require.True(t, ok, "payload of a %s fixture must include an operands list", req)
					for i, operand := range operands {
						t.Debug("round-tripping operand %d", i)
						t.RoundTripPayload(family, operand)
					}
					result, ok := data["result"]
					require.True(t, ok, "payload of a %s fixture must include the expected result", req)
					t.RoundTripPayload(family, result)
				})
			}
		})
	}
}
