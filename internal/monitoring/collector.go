// Package monitoring - collector.go provides simple counters.
//
// DESIGN: Lightweight in-memory counters shared by the concurrent
// transcript scan. Workers bump them lock-free; the reporter reads a
// snapshot once the pool drains.
package monitoring

import (
	"sync/atomic"
)

// Collector counts scan progress across workers.
type Collector struct {
	files      atomic.Int64
	lines      atomic.Int64
	commands   atomic.Int64
	rewritable atomic.Int64
}

// NewCollector creates a new collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordFile records one scanned transcript file.
func (c *Collector) RecordFile() { c.files.Add(1) }

// RecordLines records parsed transcript lines.
func (c *Collector) RecordLines(n int) { c.lines.Add(int64(n)) }

// RecordCommand records one shell command found in a transcript.
func (c *Collector) RecordCommand(rewritable bool) {
	c.commands.Add(1)
	if rewritable {
		c.rewritable.Add(1)
	}
}

// Stats returns current counters.
func (c *Collector) Stats() map[string]int64 {
	return map[string]int64{
		"files":      c.files.Load(),
		"lines":      c.lines.Load(),
		"commands":   c.commands.Load(),
		"rewritable": c.rewritable.Load(),
	}
}
