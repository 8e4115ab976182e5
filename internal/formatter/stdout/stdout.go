// Package stdout writes run summaries to a terminal or any io.Writer.
package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jacoelho/combine/internal/formatter"
	"github.com/jacoelho/combine/internal/results"
)

const (
	separator = "--------------------------------------------------------------------------------"
	banner    = "================================================================================"
)

// Formatter implements stdout-based output formatting.
type Formatter struct {
	writer io.Writer
	format results.OutputFormat
}

// New creates a formatter that writes to stdout.
func New(format results.OutputFormat) formatter.Formatter {
	return NewWithWriter(os.Stdout, format)
}

// NewWithWriter creates a formatter with a custom writer.
func NewWithWriter(writer io.Writer, format results.OutputFormat) formatter.Formatter {
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// Format prints a single summary, or per-iteration results plus aggregated
// statistics when given more than one.
func (f *Formatter) Format(summaries ...*results.Summary) error {
	if f.format == results.FormatJSON {
		return f.formatJSON(summaries)
	}

	switch len(summaries) {
	case 0:
		return nil
	case 1:
		return f.formatSingle(summaries[0])
	default:
		return f.formatAggregated(summaries)
	}
}

func (f *Formatter) formatSingle(s *results.Summary) error {
	for _, fileResult := range s.FileResults {
		if err := f.printFile(fileResult); err != nil {
			return err
		}
	}

	lines := []string{
		separator,
		fmt.Sprintf("Executed files:    %d", s.ExecutedFiles),
		fmt.Sprintf("Executed cases:    %d (%.2f/s)", s.ExecutedCases, s.CasesPerSecond()),
		fmt.Sprintf("Parsed input:      %s (%s/s)", humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.BytesPerSecond()))),
		fmt.Sprintf("Succeeded files:   %d (%.1f%%)", s.SucceededFiles, s.SuccessPercentage()),
		fmt.Sprintf("Failed files:      %d (%.1f%%)", s.FailedFiles, s.FailurePercentage()),
		fmt.Sprintf("Failed cases:      %d", s.FailedCases),
		fmt.Sprintf("Duration:          %d ms", s.TotalDuration.Milliseconds()),
	}
	return f.println(lines...)
}

func (f *Formatter) printFile(r results.FileResult) error {
	status := "Success"
	if r.Error != nil {
		status = fmt.Sprintf("Failed: %v", r.Error)
	}
	_, err := fmt.Fprintf(f.writer, "%s: %s (%d case(s), %s in %d ms)\n",
		r.Filename, status, len(r.Cases), humanize.Bytes(uint64(r.Bytes())), r.Duration.Milliseconds())
	if err != nil {
		return err
	}

	for _, c := range r.Cases {
		if c.Passed() {
			continue
		}
		if _, err := fmt.Fprintf(f.writer, "  FAIL %s [%s]: %v\n", c.Name, c.Grammar, c.Error); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) formatAggregated(allResults []*results.Summary) error {
	if err := f.println(banner, "ITERATION RESULTS:", banner); err != nil {
		return err
	}

	for i, s := range allResults {
		status := "SUCCESS"
		if s.Failed() {
			status = "FAILED"
		}
		_, err := fmt.Fprintf(f.writer, "Iteration %d: %s (%d files, %d cases, %d ms)\n",
			i+1, status, s.ExecutedFiles, s.ExecutedCases, s.TotalDuration.Milliseconds())
		if err != nil {
			return err
		}
		for _, r := range s.FileResults {
			if r.Error == nil {
				continue
			}
			if err := f.printFile(r); err != nil {
				return err
			}
		}
	}

	stats := results.CalculateAggregatedStats(allResults)
	iterations := stats.IterationCount

	return f.println(
		banner,
		"AGGREGATED RESULTS:",
		banner,
		fmt.Sprintf("Total iterations:      %d", iterations),
		fmt.Sprintf("Successful iterations: %d (%.1f%%)", stats.SuccessfulIterations, stats.SuccessRate()),
		fmt.Sprintf("Failed iterations:     %d (%.1f%%)", iterations-stats.SuccessfulIterations, 100-stats.SuccessRate()),
		fmt.Sprintf("Total executed files:  %d", stats.TotalExecutedFiles),
		fmt.Sprintf("Total executed cases:  %d (%.2f/s)", stats.TotalExecutedCases, stats.CasesPerSecond()),
		fmt.Sprintf("Total failed cases:    %d", stats.TotalFailedCases),
		fmt.Sprintf("Total parsed input:    %s", humanize.Bytes(uint64(stats.TotalInputBytes))),
		fmt.Sprintf("Total duration:        %d ms", stats.TotalDuration.Milliseconds()),
		separator,
		fmt.Sprintf("Avg cases per iteration:    %.1f", float64(stats.TotalExecutedCases)/float64(iterations)),
		fmt.Sprintf("Avg duration per iteration: %d ms", (stats.TotalDuration / time.Duration(iterations)).Milliseconds()),
	)
}

func (f *Formatter) println(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}

type caseReport struct {
	Name       string `json:"name"`
	Grammar    string `json:"grammar"`
	Bytes      int64  `json:"bytes"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

type fileReport struct {
	Filename   string       `json:"filename"`
	Cases      []caseReport `json:"cases"`
	DurationMS int64        `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
}

type summaryReport struct {
	RunID          string       `json:"run_id,omitempty"`
	Files          []fileReport `json:"files"`
	ExecutedFiles  int          `json:"executed_files"`
	ExecutedCases  int          `json:"executed_cases"`
	FailedCases    int          `json:"failed_cases"`
	SucceededFiles int          `json:"succeeded_files"`
	FailedFiles    int          `json:"failed_files"`
	InputBytes     int64        `json:"input_bytes"`
	DurationMS     int64        `json:"duration_ms"`
}

// formatJSON writes one JSON document holding every iteration.
func (f *Formatter) formatJSON(summaries []*results.Summary) error {
	out := struct {
		Iterations []summaryReport `json:"iterations"`
	}{Iterations: make([]summaryReport, 0, len(summaries))}

	for _, s := range summaries {
		out.Iterations = append(out.Iterations, toSummaryReport(s))
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toSummaryReport(s *results.Summary) summaryReport {
	report := summaryReport{
		RunID:          s.RunID,
		Files:          make([]fileReport, 0, len(s.FileResults)),
		ExecutedFiles:  s.ExecutedFiles,
		ExecutedCases:  s.ExecutedCases,
		FailedCases:    s.FailedCases,
		SucceededFiles: s.SucceededFiles,
		FailedFiles:    s.FailedFiles,
		InputBytes:     s.InputBytes,
		DurationMS:     s.TotalDuration.Milliseconds(),
	}

	for _, r := range s.FileResults {
		fr := fileReport{
			Filename:   r.Filename,
			Cases:      make([]caseReport, 0, len(r.Cases)),
			DurationMS: r.Duration.Milliseconds(),
			Error:      errString(r.Error),
		}
		for _, c := range r.Cases {
			fr.Cases = append(fr.Cases, caseReport{
				Name:       c.Name,
				Grammar:    c.Grammar,
				Bytes:      c.Bytes,
				DurationMS: c.Duration.Milliseconds(),
				Error:      errString(c.Error),
			})
		}
		report.Files = append(report.Files, fr)
	}

	return report
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
