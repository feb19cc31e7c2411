package corpus

// Keys returns the fixture names in sorted order, for deterministic iteration.
func (c Corpus) Keys() []string {
	return sortedKeys(c)
}

// ByTag returns the fixtures that declare the given abstraction-family tag as
// true. A fixture that does not mention the tag is never included.
func (c Corpus) ByTag(tag string) Corpus {
	res := Corpus{}
	for k, f := range c {
		if f.Tags[tag] {
			res[k] = f
		}
	}
	return res
}

// ByRequirement returns the fixtures whose requires key set is exactly the
// given operation. A fixture that needs that operation plus others is
// excluded.
func (c Corpus) ByRequirement(req string) Corpus {
	res := Corpus{}
	for k, f := range c {
		if len(f.Requires) != 1 {
			continue
		}
		if _, ok := f.Requires[req]; ok {
			res[k] = f
		}
	}
	return res
}
