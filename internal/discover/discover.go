// Package discover scans Claude Code session transcripts for shell
// commands that ran raw but would have been rewritten through the proxy.
//
// DESIGN: Transcript files are JSONL, one event per line. A bounded
// worker pool takes one file per job; each worker walks the file's
// lines, pulls Bash tool invocations out of assistant events, and runs
// every command through the rewriter. Commands the rewriter accepts are
// missed opportunities. When the paired tool result is present in the
// same transcript, its recorded output goes through the real filter
// pipeline so the report carries measured, not guessed, savings.
// Workers aggregate under one mutex; the final report is sorted, so the
// outcome is deterministic regardless of scheduling.
//
// FILES:
//   - discover.go:   Scanner, worker pool, aggregation, report
//   - transcript.go: JSONL event parsing via gjson
package discover

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/compresr/ctk/internal/compact"
	"github.com/compresr/ctk/internal/monitoring"
	"github.com/compresr/ctk/internal/rewrite"
	"github.com/compresr/ctk/internal/tokens"
)

// Candidate is one distinct command line that ran unproxied.
type Candidate struct {
	Command      string
	Category     compact.Category
	Count        int
	OutputTokens int // tokens of the recorded raw output
	TokensSaved  int // tokens the filter would have removed
}

// Report is the aggregated outcome of one scan.
type Report struct {
	Files      int64
	Entries    int64
	Commands   int64
	Candidates []Candidate // sorted: savings desc, count desc, command asc
}

// Options tunes a scan.
type Options struct {
	Workers int    // concurrent file scanners; <= 0 means 4
	Project string // substring filter on transcript paths
}

// Scanner walks transcript trees and aggregates missed rewrites.
type Scanner struct {
	counter  tokens.Counter
	pipeline *compact.Pipeline
	opts     Options

	collector *monitoring.Collector

	mu  sync.Mutex
	agg map[string]*Candidate
}

// NewScanner creates a scanner. The pipeline is used to measure what
// filtering would have saved on recorded outputs.
func NewScanner(counter tokens.Counter, pipeline *compact.Pipeline, opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Scanner{
		counter:   counter,
		pipeline:  pipeline,
		opts:      opts,
		collector: monitoring.NewCollector(),
		agg:       make(map[string]*Candidate),
	}
}

// DefaultRoots returns the transcript directories Claude Code writes to.
func DefaultRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".claude", "projects"),
		filepath.Join(home, ".config", "claude", "projects"),
	}
}

// Scan walks the given roots (DefaultRoots when empty) and returns the
// aggregated report. Missing roots and unreadable files are skipped;
// only context cancellation aborts the scan.
func (s *Scanner) Scan(ctx context.Context, roots ...string) (*Report, error) {
	if len(roots) == 0 {
		roots = DefaultRoots()
	}

	files := s.collectFiles(roots)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					continue
				}
				s.scanFile(path)
			}
		}()
	}

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.report(), nil
}

// collectFiles gathers the transcript paths to scan, in walk order.
// Missing roots are normal; unreadable subtrees are skipped.
func (s *Scanner) collectFiles(roots []string) []string {
	var files []string
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(path, ".jsonl") {
				return nil
			}
			if s.opts.Project != "" && !strings.Contains(path, s.opts.Project) {
				return nil
			}
			files = append(files, path)
			return nil
		})
	}
	return files
}

// scanFile walks one transcript. Tool results trail their tool calls in
// the same file, so pairing state stays file-local.
func (s *Scanner) scanFile(path string) {
	// tool_use id -> accepted rewrite, awaiting its recorded output
	pending := make(map[string]rewrite.Result)

	lines, err := walkEvents(path, func(ev event) {
		for _, call := range ev.bashCalls() {
			res, ok := rewrite.ShouldRewrite(call.command)
			s.collector.RecordCommand(ok)
			if !ok {
				continue
			}
			s.record(res)
			if call.id != "" {
				pending[call.id] = res
			}
		}

		for _, out := range ev.toolResults() {
			res, ok := pending[out.id]
			if !ok {
				continue
			}
			delete(pending, out.id)
			s.measure(res, out.text)
		}
	})
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("discover: skipping transcript")
		return
	}

	s.collector.RecordFile()
	s.collector.RecordLines(lines)
}

// record counts one missed rewrite.
func (s *Scanner) record(res rewrite.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.agg[res.Original]
	if !ok {
		c = &Candidate{Command: res.Original, Category: res.Category}
		s.agg[res.Original] = c
	}
	c.Count++
}

// measure runs a recorded output through the filter pipeline and adds
// the measured savings to the command's candidate.
func (s *Scanner) measure(res rewrite.Result, output string) {
	if output == "" {
		return
	}

	filtered := s.pipeline.FilterOutput(output, res.Category)
	sav := tokens.Calculate(s.counter, output, filtered)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.agg[res.Original]
	if !ok {
		return
	}
	c.OutputTokens += sav.OriginalTokens
	c.TokensSaved += sav.TokensSaved
}

// report snapshots the aggregation into a sorted Report.
func (s *Scanner) report() *Report {
	stats := s.collector.Stats()

	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]Candidate, 0, len(s.agg))
	for _, c := range s.agg {
		candidates = append(candidates, *c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.TokensSaved != b.TokensSaved {
			return a.TokensSaved > b.TokensSaved
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Command < b.Command
	})

	return &Report{
		Files:      stats["files"],
		Entries:    stats["lines"],
		Commands:   stats["commands"],
		Candidates: candidates,
	}
}
