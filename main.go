package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/act4e/data-contract-tests/client"
	"github.com/act4e/data-contract-tests/corpus"
	"github.com/act4e/data-contract-tests/framework"
	"github.com/act4e/data-contract-tests/reptests"
)

const statusQueryTimeout = time.Second * 10

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	serviceClient, err := client.NewTestServiceClient(params.serviceURL, params.statusTimeout, mainDebugLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test service error: %s\n", err)
		return 1
	}
	if name := serviceClient.Status().Description; name != "" {
		fmt.Printf("Test service: %s\n", name)
	}

	fixtures, err := loadFixtures(params.dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fixture error: %s\n", err)
		return 1
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters, reptests.AllCapabilities, serviceClient.Capabilities())

	fmt.Println("Running test suite")

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := reptests.RunTestSuite(client.NewCandidate(serviceClient), fixtures, params.filters.AsFilter, testLogger)

	serviceClient.CloseAll()
	if params.stopServiceAtEnd {
		fmt.Println("Stopping test service")
		if err := serviceClient.StopService(); err != nil {
			fmt.Fprintf(os.Stderr, "Error stopping test service: %s\n", err)
		}
	}

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		printRerunCommand(args[0], params, results)
		return 1
	}
	return 0
}

func loadFixtures(dataDir string) (corpus.Corpus, error) {
	if dataDir != "" {
		return corpus.Load(dataDir)
	}
	return corpus.Default()
}
