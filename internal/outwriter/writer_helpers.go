package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
)

// barWidth is the number of cells used by a full (100%) language bar.
const barWidth = 20

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() {
			if err := file.Close(); err != nil {
				contract.LogWarn("Failed to close "+outputFile, err)
			}
		}()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeToPath runs a writer that needs a real file path, such as Parquet.
func writeToPath(outputFile string, output schema.OutputMode, writer func(string) error, successMsg string) error {
	if outputFile == "" {
		return fmt.Errorf("--output-file is required for %s output", output)
	}
	if err := writer(outputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// labelFor returns the share label, colored when the config asks for it.
func labelFor(percentage float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(percentage)
	}
	return contract.GetPlainLabel(percentage)
}

// languageBar draws a horizontal bar proportional to the percentage.
// Any non-zero share gets at least one cell.
func languageBar(percentage float64, useColors bool) string {
	cells := int(math.Round(percentage / 100 * barWidth))
	if cells == 0 && percentage > 0 {
		cells = 1
	}
	cells = min(max(cells, 0), barWidth)

	bar := strings.Repeat("█", cells) + strings.Repeat("░", barWidth-cells)
	if !useColors {
		return bar
	}
	return barColor(percentage).Sprint(bar)
}

func barColor(percentage float64) *color.Color {
	switch schema.GetShareLabel(percentage) {
	case schema.DominantValue:
		return contract.DominantColor
	case schema.MajorValue:
		return contract.MajorColor
	case schema.MinorValue:
		return contract.MinorColor
	default:
		return contract.TraceColor
	}
}

// printf writes formatted output and reports only the error, so callers can chain
// summary lines without repeating the byte count.
func printf(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
