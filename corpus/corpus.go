package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is one named test case: a data payload plus the metadata describing
// which tests it participates in and what is expected of it.
type Fixture struct {
	Tags       map[string]bool
	Requires   map[string]bool
	Properties map[string]any
	Data       any
}

// Corpus is the full deduplicated fixture set, keyed by fixture name. After a
// successful Load all cross-references in fixture data are already inlined.
type Corpus map[string]Fixture

// Whitelists for fixture metadata keys. These are fixed: the corpus format
// grows by extending them here, not per-file.
var (
	AllowedTags = []string{
		"poset", "set", "semigroup", "monoid", "group",
		"relation", "map", "dp", "category", "natural_transform",
	}
	AllowedRequires = []string{
		"set_product", "poset_product", "set_union", "poset_sum",
	}
	AllowedProperties = []string{
		"powerset",
		"some_antichains", "some_not_antichains",
		"some_chains", "some_not_chains",
		"surjective", "defined_everywhere", "single_valued", "injective",
		"reflexive", "irreflexive", "transitive",
		"asymmetric", "symmetric", "antisymmetric",
		"has_top", "has_bottom", "top", "bottom",
		"height", "width", "opposite", "lattice",
		"some_uppersets", "some_not_uppersets",
		"some_lowersets", "some_not_lowersets",
	}
)

var (
	allowedTags       = setOf(AllowedTags)
	allowedRequires   = setOf(AllowedRequires)
	allowedProperties = setOf(AllowedProperties)
)

// Load-time failure causes. Errors returned by Load, LoadFS, and Resolve wrap
// one of these, so callers can classify with errors.Is.
var (
	ErrDuplicateKey   = errors.New("duplicate fixture key")
	ErrMissingData    = errors.New(`fixture has no "data" field`)
	ErrUnknownField   = errors.New("unknown fixture field")
	ErrDisallowedKey  = errors.New("disallowed key")
	ErrEntryNotFound  = errors.New("cannot find entry to load")
	ErrReferenceCycle = errors.New("fixture reference cycle")
)

// Load reads every .yaml file under the given directories, in directory order,
// and returns the validated corpus with all cross-references resolved.
func Load(dirs ...string) (Corpus, error) {
	res := Corpus{}
	for _, dir := range dirs {
		if err := loadDir(res, os.DirFS(dir), ".", dir); err != nil {
			return nil, err
		}
	}
	if err := resolveAll(res); err != nil {
		return nil, err
	}
	return res, nil
}

// LoadFS is Load over a single directory of an fs.FS. It is how the embedded
// built-in corpus is read; tests also use it with fstest maps.
func LoadFS(fsys fs.FS, dir string) (Corpus, error) {
	res := Corpus{}
	if err := loadDir(res, fsys, dir, dir); err != nil {
		return nil, err
	}
	if err := resolveAll(res); err != nil {
		return nil, err
	}
	return res, nil
}

func loadDir(dst Corpus, fsys fs.FS, dir, display string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		src, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		shown := e.Name()
		if display != "." {
			shown = path.Join(display, e.Name())
		}
		if err := loadFile(dst, src, shown); err != nil {
			return err
		}
	}
	return nil
}

// loadFile parses one fixture file into dst. It walks the YAML document node
// rather than decoding straight into a map, so fixtures are added in file
// order and duplicate names get a proper error instead of a silent overwrite.
func loadFile(dst Corpus, src []byte, filename string) error {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil // empty file
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: top level must be a mapping of fixture names", filename)
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		if _, exists := dst[key]; exists {
			return fmt.Errorf("found %w %q in %s", ErrDuplicateKey, key, filename)
		}
		f, err := decodeFixture(doc.Content[i+1])
		if err != nil {
			return fmt.Errorf("%s: fixture %q: %w", filename, key, err)
		}
		dst[key] = f
	}
	return nil
}

func decodeFixture(node *yaml.Node) (Fixture, error) {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return Fixture{}, err
	}

	f := Fixture{
		Tags:       map[string]bool{},
		Requires:   map[string]bool{},
		Properties: map[string]any{},
	}

	data, ok := raw["data"]
	if !ok {
		return Fixture{}, ErrMissingData
	}
	f.Data = data
	delete(raw, "data")

	if v, ok := raw["tags"]; ok {
		m, err := boolMap(v, "tags")
		if err != nil {
			return Fixture{}, err
		}
		f.Tags = m
		delete(raw, "tags")
	}
	if v, ok := raw["requires"]; ok {
		m, err := boolMap(v, "requires")
		if err != nil {
			return Fixture{}, err
		}
		f.Requires = m
		delete(raw, "requires")
	}
	if v, ok := raw["properties"]; ok {
		m, ok := v.(map[string]any)
		if !ok {
			return Fixture{}, fmt.Errorf("properties must be a mapping, got %T", v)
		}
		f.Properties = m
		delete(raw, "properties")
	}

	if len(raw) > 0 {
		return Fixture{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(sortedKeys(raw), ", "))
	}

	if extra := extraKeys(f.Tags, allowedTags); len(extra) > 0 {
		return Fixture{}, fmt.Errorf("%w: extra tags: %s", ErrDisallowedKey, strings.Join(extra, ", "))
	}
	if extra := extraKeys(f.Requires, allowedRequires); len(extra) > 0 {
		return Fixture{}, fmt.Errorf("%w: extra requires: %s (allowed: %s)",
			ErrDisallowedKey, strings.Join(extra, ", "), strings.Join(AllowedRequires, ", "))
	}
	if extra := extraKeys(f.Properties, allowedProperties); len(extra) > 0 {
		return Fixture{}, fmt.Errorf("%w: extra properties: %s", ErrDisallowedKey, strings.Join(extra, ", "))
	}

	return f, nil
}

func boolMap(v any, field string) (map[string]bool, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping, got %T", field, v)
	}
	res := make(map[string]bool, len(m))
	for k, raw := range m {
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%s value for %q must be a boolean, got %T", field, k, raw)
		}
		res[k] = b
	}
	return res, nil
}

func setOf(keys []string) map[string]bool {
	res := make(map[string]bool, len(keys))
	for _, k := range keys {
		res[k] = true
	}
	return res
}

func extraKeys[V any](m map[string]V, allowed map[string]bool) []string {
	var extra []string
	for k := range m {
		if !allowed[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return extra
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
