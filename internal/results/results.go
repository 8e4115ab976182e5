// Package results collects case outcomes into per-file and per-run summaries.
package results

import (
	"time"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string
	Grammar  string
	Bytes    int64 // input size
	Duration time.Duration
	Error    error // nil when the case passed
}

func (c CaseResult) Passed() bool {
	return c.Error == nil
}

// FileResult is the outcome of one case file. Error is set when the file
// could not be loaded or at least one case failed.
type FileResult struct {
	Filename string
	Cases    []CaseResult
	Duration time.Duration
	Error    error
}

// FailedCases returns the number of failed cases.
func (f FileResult) FailedCases() int {
	n := 0
	for _, c := range f.Cases {
		if !c.Passed() {
			n++
		}
	}
	return n
}

// Bytes returns the total input size of the file's cases.
func (f FileResult) Bytes() int64 {
	var n int64
	for _, c := range f.Cases {
		n += c.Bytes
	}
	return n
}

type FileResultBuilder struct {
	filename string
	cases    []CaseResult
	duration time.Duration
	err      error
}

func NewFileResultBuilder(filename string) *FileResultBuilder {
	return &FileResultBuilder{
		filename: filename,
	}
}

func (b *FileResultBuilder) AddCase(c CaseResult) *FileResultBuilder {
	b.cases = append(b.cases, c)
	return b
}

func (b *FileResultBuilder) WithDuration(duration time.Duration) *FileResultBuilder {
	b.duration = duration
	return b
}

func (b *FileResultBuilder) WithError(err error) *FileResultBuilder {
	b.err = err
	return b
}

func (b *FileResultBuilder) Build() FileResult {
	return FileResult{
		Filename: b.filename,
		Cases:    b.cases,
		Duration: b.duration,
		Error:    b.err,
	}
}

// Summary is the outcome of one pass over all case files.
type Summary struct {
	RunID          string
	FileResults    []FileResult
	ExecutedFiles  int
	ExecutedCases  int
	FailedCases    int
	SucceededFiles int
	FailedFiles    int
	InputBytes     int64
	TotalDuration  time.Duration
}

func NewSummary(runID string, expectedFiles int) *Summary {
	return &Summary{
		RunID:       runID,
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

func (s *Summary) Add(builder *FileResultBuilder) {
	result := builder.Build()

	s.FileResults = append(s.FileResults, result)
	s.ExecutedFiles++
	s.ExecutedCases += len(result.Cases)
	s.FailedCases += result.FailedCases()
	s.InputBytes += result.Bytes()

	if result.Error != nil {
		s.FailedFiles++
	} else {
		s.SucceededFiles++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

func (s *Summary) Failed() bool {
	return s.FailedFiles > 0
}

func (s *Summary) CasesPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.ExecutedCases) / s.TotalDuration.Seconds()
}

func (s *Summary) BytesPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.InputBytes) / s.TotalDuration.Seconds()
}

func (s *Summary) SuccessPercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.SucceededFiles) / float64(s.ExecutedFiles)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.FailedFiles) / float64(s.ExecutedFiles)) * 100
}

type AggregatedStats struct {
	TotalExecutedFiles   int
	TotalExecutedCases   int
	TotalFailedCases     int
	TotalSucceededFiles  int
	TotalFailedFiles     int
	TotalInputBytes      int64
	TotalDuration        time.Duration
	SuccessfulIterations int
	IterationCount       int
}

func CalculateAggregatedStats(allResults []*Summary) AggregatedStats {
	var stats AggregatedStats
	stats.IterationCount = len(allResults)

	for _, results := range allResults {
		stats.TotalExecutedFiles += results.ExecutedFiles
		stats.TotalExecutedCases += results.ExecutedCases
		stats.TotalFailedCases += results.FailedCases
		stats.TotalSucceededFiles += results.SucceededFiles
		stats.TotalFailedFiles += results.FailedFiles
		stats.TotalInputBytes += results.InputBytes
		stats.TotalDuration += results.TotalDuration

		if results.FailedFiles == 0 {
			stats.SuccessfulIterations++
		}
	}

	return stats
}

// SuccessRate returns the percentage of iterations without failed files.
func (a AggregatedStats) SuccessRate() float64 {
	if a.IterationCount == 0 {
		return 0
	}
	return float64(a.SuccessfulIterations) / float64(a.IterationCount) * 100
}

func (a AggregatedStats) CasesPerSecond() float64 {
	if a.TotalDuration == 0 {
		return 0
	}
	return float64(a.TotalExecutedCases) / a.TotalDuration.Seconds()
}
