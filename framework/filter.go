package framework

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters is a combination of positive and negative test name patterns, as
// specified with the -run and -skip command line options.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter is a Filter in terms of the regex lists.
func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

// RegexList is a list of regular expressions that can be built up from repeated
// command line options.
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// IsDefined is true if at least one pattern was provided.
func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// AnyMatch is true if any of the patterns matches the string.
func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains on the console which tests will be skipped, either
// because of the filter criteria or because the implementation under test did not
// declare a capability that some fixtures need.
func PrintFilterDescription(filters RegexFilters, allCapabilities []string, supported []string) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}

	supportedSet := make(map[string]bool, len(supported))
	for _, c := range supported {
		supportedSet[c] = true
	}
	var missingCapabilities []string
	for _, c := range allCapabilities {
		if !supportedSet[c] {
			missingCapabilities = append(missingCapabilities, c)
		}
	}
	if len(missingCapabilities) > 0 {
		fmt.Println("Some tests may be skipped because the implementation under test does not support the following capabilities:")
		fmt.Printf("  %s\n", strings.Join(missingCapabilities, ", "))
		fmt.Println()
	}
}
