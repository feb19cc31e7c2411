package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysAreSorted(t *testing.T) {
	c := Corpus{"b": {}, "a": {}, "c": {}}
	assert.Equal(t, []string{"a", "b", "c"}, c.Keys())
}

func TestByTagSelectsDeclaredFamilies(t *testing.T) {
	c := Corpus{
		"yes":    {Tags: map[string]bool{"poset": true}},
		"no":     {Tags: map[string]bool{"poset": false}},
		"absent": {Tags: map[string]bool{"set": true}},
	}
	assert.Equal(t, []string{"yes"}, c.ByTag("poset").Keys())
	assert.Empty(t, c.ByTag("group"))
}

func TestByRequirementMatchesKeySetExactly(t *testing.T) {
	c := Corpus{
		"only":     {Requires: map[string]bool{"set_union": true}},
		"declined": {Requires: map[string]bool{"set_union": false}},
		"both":     {Requires: map[string]bool{"set_union": true, "poset_sum": true}},
		"other":    {Requires: map[string]bool{"poset_sum": true}},
		"none":     {},
	}
	// key presence counts, not the declared value
	assert.Equal(t, []string{"declined", "only"}, c.ByRequirement("set_union").Keys())
}
