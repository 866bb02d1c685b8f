package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fyerfyer/podem-atpg/pkg/algorithm"
	"github.com/fyerfyer/podem-atpg/pkg/circuit"
	"github.com/fyerfyer/podem-atpg/pkg/utils"
)

func main() {
	circuitFile := flag.String("circuit", "", "Circuit file in BENCH format")
	faultStr := flag.String("fault", "", "Fault to test (e.g., 'net42/1' for net42 stuck-at-1)")
	allFaults := flag.Bool("all", false, "Generate tests for all faults")
	outputFile := flag.String("output", "", "Output file for test patterns (default: stdout)")
	limit := flag.Int("limit", 100, "Backtrack limit per fault")
	patterns := flag.Int("patterns", 1, "Patterns to generate per fault")
	seed := flag.Int64("seed", 1, "Seed for random-fill of unassigned inputs")
	verbose := flag.Bool("verbose", false, "Verbose output")
	logFile := flag.String("log", "", "Log file (default: stderr)")
	flag.Parse()

	logLevel := utils.InfoLevel
	if *verbose {
		logLevel = utils.DebugLevel
	}

	var logger *utils.Logger
	var err error

	if *logFile != "" {
		logger, err = utils.NewFileLogger(logLevel, *logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file: %v\n", err)
			os.Exit(1)
		}
	} else {
		logger = utils.NewWriterLogger(logLevel, os.Stderr)
	}

	if *circuitFile == "" {
		fmt.Println("Error: Circuit file is required")
		flag.Usage()
		os.Exit(1)
	}

	if !*allFaults && *faultStr == "" {
		fmt.Println("Error: Either specify a fault or use -all flag")
		flag.Usage()
		os.Exit(1)
	}

	if *limit < 0 || *patterns < 1 {
		fmt.Println("Error: -limit must be >= 0 and -patterns >= 1")
		os.Exit(1)
	}

	logger.Info("parsing circuit from %s", *circuitFile)
	c, err := utils.ParseBenchFile(*circuitFile)
	if err != nil {
		logger.Error("failed to parse circuit: %v", err)
		os.Exit(1)
	}

	podem := algorithm.NewPodem(c, logger)
	podem.BacktrackLimit = *limit
	podem.Patterns = *patterns
	podem.SetSeed(*seed)

	if *outputFile != "" {
		file, err := os.Create(*outputFile)
		if err != nil {
			logger.Error("failed to create output file: %v", err)
			os.Exit(1)
		}
		defer file.Close()
		podem.Out = file
	}

	if *allFaults {
		faults := circuit.EnumerateFaults(c)
		detected, untestable, aborted := podem.RunAll(faults)
		logger.Info("circuit %s: %d gates, %d lines, %d PIs, %d POs",
			c.Name, len(c.Gates), len(c.Lines), len(c.Inputs), len(c.Outputs))
		logger.Info("faults: %d total, %d detected, %d untestable, %d aborted",
			len(faults), detected, untestable, aborted)
		return
	}

	fault, err := utils.ParseFaultString(*faultStr, c)
	if err != nil {
		logger.Error("invalid fault: %v", err)
		os.Exit(1)
	}

	result, backtracks := podem.FindTest(fault)
	logger.Info("%s: %s (%d backtracks)", fault, result, backtracks)
	if result == algorithm.Untestable {
		os.Exit(2)
	}
	if result == algorithm.Aborted {
		os.Exit(3)
	}
}
