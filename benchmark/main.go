// Package main provides a performance benchmarking tool for the devscope CLI.
// It measures how long a full lookup takes for a set of handles under
// different --workers settings, running each combination several times and
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - devscope binary installed and available in PATH
// - A GitHub token in GITHUB_TOKEN, since every run spends API quota
//
// Usage: go run benchmark/main.go [handle...]
//
//	handle: GitHub usernames to look up (defaults to a small fixed set)
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the timings of one handle and workers combination.
type BenchmarkResult struct {
	Handle  string
	Workers int
	Runs    int
	AvgTime string
	MinTime string
	MaxTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout       time.Duration
	Runs          int
	WorkerOptions []int
	Handles       []string
}

func main() {
	config := BenchmarkConfig{
		Timeout:       2 * time.Minute,
		Runs:          3,
		WorkerOptions: []int{0, 4, 16},
		Handles:       []string{"octocat", "torvalds", "gaearon"},
	}
	if len(os.Args) > 1 {
		config.Handles = os.Args[1:]
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the devscope binary and a token are available
func checkPrerequisites() error {
	if _, err := exec.LookPath("devscope"); err != nil {
		return errors.New("devscope binary not found in PATH")
	}
	if os.Getenv("GITHUB_TOKEN") == "" && os.Getenv("DEVSCOPE_TOKEN") == "" {
		return errors.New("set GITHUB_TOKEN or DEVSCOPE_TOKEN; anonymous quota is too small")
	}
	return nil
}

// runBenchmarks executes every handle and workers combination
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d handles, %v timeout, workers %v, %d runs each\n",
		len(config.Handles), config.Timeout, config.WorkerOptions, config.Runs)

	for _, handle := range config.Handles {
		fmt.Printf("Benchmarking %s\n", handle)
		for _, workers := range config.WorkerOptions {
			results = append(results, runBenchmarkSuite(config, handle, workers))
		}
	}

	return results
}

// runBenchmarkSuite runs one combination several times and summarizes the timings
func runBenchmarkSuite(config BenchmarkConfig, handle string, workers int) BenchmarkResult {
	fmt.Printf("  workers=%d (%d runs)\n", workers, config.Runs)

	result := BenchmarkResult{
		Handle:  handle,
		Workers: workers,
		AvgTime: "FAILED",
		MinTime: "FAILED",
		MaxTime: "FAILED",
	}

	times := runBenchmark(config, handle, workers)
	result.Runs = len(times)
	if len(times) == 0 {
		return result
	}

	var sum float64
	for _, t := range times {
		sum += t
	}
	result.AvgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	result.MinTime = fmt.Sprintf("%.3fs", slices.Min(times))
	result.MaxTime = fmt.Sprintf("%.3fs", slices.Max(times))

	fmt.Printf("  Average: %s, Min: %s, Max: %s\n", result.AvgTime, result.MinTime, result.MaxTime)
	return result
}

// runBenchmark executes a devscope lookup multiple times and returns the successful run times
func runBenchmark(config BenchmarkConfig, handle string, workers int) []float64 {
	args := []string{"languages", handle, "--workers", strconv.Itoa(workers), "--color", "no", "--emoji", "no"}

	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "devscope", args...).CombinedOutput()
		elapsed := time.Since(start)
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed.Seconds())
		}
	}
	return times
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Lookup completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/devscope_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"handle", "workers", "runs", "avg", "min", "max"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		record := []string{r.Handle, strconv.Itoa(r.Workers), strconv.Itoa(r.Runs), r.AvgTime, r.MinTime, r.MaxTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-12s workers=%-3d: Avg: %s, Min: %s, Max: %s\n", r.Handle, r.Workers, r.AvgTime, r.MinTime, r.MaxTime)
	}
}
