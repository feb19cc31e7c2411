package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/act4e/data-contract-tests/corpus"
	"github.com/act4e/data-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL       string
	dataDir          string
	statusTimeout    time.Duration
	filters          framework.RegexFilters
	stopServiceAtEnd bool
	debug            bool
	debugAll         bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "test service URL")
	fs.StringVar(&c.dataDir, "data", "",
		"path of a fixture directory to use instead of the built-in corpus (same effect as "+corpus.EnvDataDir+")")
	fs.DurationVar(&c.statusTimeout, "timeout", statusQueryTimeout,
		"how long to wait for the test service to become available")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.stopServiceAtEnd, "stop-service-at-end", false, "tell test service to exit after the test run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunPattern builds a regex that matches the given test and each of its
// ancestors, since the filter must also match every parent for a test to run.
func rerunPattern(id framework.TestID) string {
	var sb strings.Builder
	sb.WriteString("^")
	for i, part := range id.Path {
		if i > 0 {
			sb.WriteString("(/")
		}
		sb.WriteString(regexp.QuoteMeta(part))
	}
	for i := 1; i < len(id.Path); i++ {
		sb.WriteString(")?")
	}
	sb.WriteString("$")
	return sb.String()
}

func printRerunCommand(argv0 string, params commandParams, results framework.Results) {
	var cmd commandBuilder
	cmd.add(argv0, "-url", params.serviceURL)
	if params.dataDir != "" {
		cmd.add("-data", params.dataDir)
	}
	for _, f := range results.Failures {
		cmd.add("-run", rerunPattern(f.TestID))
	}
	fmt.Println("To rerun only the failed tests:")
	fmt.Printf("  %s\n", cmd)
}
