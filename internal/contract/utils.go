package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/devscope/schema"
)

// Color variables for console output.
var (
	DominantColor = color.New(color.FgGreen, color.Bold) // DominantColor marks the languages a profile is built on.
	MajorColor    = color.New(color.FgCyan, color.Bold)  // MajorColor marks strong secondary languages.
	MinorColor    = color.New(color.FgYellow)            // MinorColor marks languages in regular use.
	TraceColor    = color.New(color.FgHiBlack)           // TraceColor marks incidental languages.
	HeaderColor   = color.New(color.FgMagenta, color.Bold)
	ErrorColor    = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text label for the share of bytes a language has.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(percentage float64) string {
	return schema.GetShareLabel(percentage)
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(percentage float64) string {
	text := GetPlainLabel(percentage)

	switch text {
	case schema.DominantValue:
		return DominantColor.Sprint(text)
	case schema.MajorValue:
		return MajorColor.Sprint(text)
	case schema.MinorValue:
		return MinorColor.Sprint(text)
	default: // "Trace"
		return TraceColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
