package framework

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// PrintResults writes a summary of the test run to standard output, repeating the
// errors for every failed test so they can be seen without scrolling back through
// the full log.
func PrintResults(results Results) {
	if results.OK() {
		fmt.Println(color.GreenString("All tests passed (%d)", len(results.Tests)))
		return
	}

	fmt.Println(color.RedString("FAILED TESTS (%d/%d):", len(results.Failures), len(results.Tests)))
	for _, f := range results.Failures {
		fmt.Printf("* %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}
