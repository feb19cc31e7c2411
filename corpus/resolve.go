package corpus

import (
	"fmt"
	"strings"
)

// Resolve replaces cross-references in node with the corresponding values from
// entries. A mapping containing the key "load" is replaced wholesale by
// entries[name]; its other keys, if any, are ignored. Other mappings and
// sequences are rebuilt with every value resolved, scalars are returned
// unchanged. Resolve never mutates its inputs.
//
// Resolve is single-level: the substituted value is taken from entries
// verbatim. resolveAll arranges for entries to hold already-resolved data, so
// chained references come out fully inlined.
func Resolve(entries map[string]any, node any) (any, error) {
	switch a := node.(type) {
	case map[string]any:
		if ref, ok := a["load"]; ok {
			name, ok := ref.(string)
			if !ok {
				return nil, fmt.Errorf(`%w: "load" value %v is not a fixture name`, ErrEntryNotFound, ref)
			}
			value, ok := entries[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
			}
			return value, nil
		}
		res := make(map[string]any, len(a))
		for k, v := range a {
			rv, err := Resolve(entries, v)
			if err != nil {
				return nil, err
			}
			res[k] = rv
		}
		return res, nil
	case []any:
		res := make([]any, len(a))
		for i, v := range a {
			rv, err := Resolve(entries, v)
			if err != nil {
				return nil, err
			}
			res[i] = rv
		}
		return res, nil
	default:
		return node, nil
	}
}

// resolveAll inlines every cross-reference in the corpus, visiting fixtures in
// dependency order so that a fixture's data is fully resolved before anything
// that references it. A reference cycle fails the load, naming the fixtures
// on the cycle.
func resolveAll(c Corpus) error {
	const (
		inProgress = 1
		done       = 2
	)
	resolved := make(map[string]any, len(c))
	state := make(map[string]int, len(c))

	var visit func(key string, stack []string) error
	visit = func(key string, stack []string) error {
		switch state[key] {
		case done:
			return nil
		case inProgress:
			return fmt.Errorf("%w: %s", ErrReferenceCycle, strings.Join(append(stack, key), " -> "))
		}
		state[key] = inProgress
		for _, dep := range referencedKeys(c[key].Data) {
			if _, ok := c[dep]; !ok {
				continue // Resolve reports the missing entry below
			}
			if err := visit(dep, append(stack, key)); err != nil {
				return err
			}
		}
		data, err := Resolve(resolved, c[key].Data)
		if err != nil {
			return fmt.Errorf("fixture %q: %w", key, err)
		}
		resolved[key] = data
		f := c[key]
		f.Data = data
		c[key] = f
		state[key] = done
		return nil
	}

	for _, key := range c.Keys() {
		if err := visit(key, nil); err != nil {
			return err
		}
	}
	return nil
}

// referencedKeys lists the fixture names that node's cross-references point
// at, in deterministic order. Nodes nested under a reference are not walked,
// matching how Resolve replaces such mappings wholesale.
func referencedKeys(node any) []string {
	var keys []string
	var walk func(any)
	walk = func(n any) {
		switch a := n.(type) {
		case map[string]any:
			if ref, ok := a["load"]; ok {
				if name, ok := ref.(string); ok {
					keys = append(keys, name)
				}
				return
			}
			for _, k := range sortedKeys(a) {
				walk(a[k])
			}
		case []any:
			for _, v := range a {
				walk(v)
			}
		}
	}
	walk(node)
	return keys
}
