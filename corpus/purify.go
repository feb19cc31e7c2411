package corpus

import "gopkg.in/yaml.v3"

// Purify normalizes a value by serializing it to YAML and parsing it back.
// The result contains only plain maps, slices and scalars, with any
// loader-specific wrappers stripped, which is the shape candidates are
// entitled to expect for fixture payloads.
func Purify(a any) (any, error) {
	b, err := yaml.Marshal(a)
	if err != nil {
		return nil, err
	}
	var res any
	if err := yaml.Unmarshal(b, &res); err != nil {
		return nil, err
	}
	return res, nil
}
