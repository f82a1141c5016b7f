// Package tokens estimates the token cost of command output so savings can
// be measured and recorded.
//
// DESIGN: Counting goes through the Counter interface. The default counter
// encodes with the cl100k_base BPE vocabulary (the tokenizer of current
// chat models); loading that vocabulary can fail offline, in which case a
// word/punctuation heuristic stands in. Counting never returns an error:
// a worse estimate beats a broken proxy.
package tokens

import (
	"math"
	"regexp"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Counter turns text into an approximate token count.
type Counter interface {
	Count(text string) int
}

const encodingName = "cl100k_base"

var (
	defaultOnce    sync.Once
	defaultCounter Counter
)

// NewCounter returns the process-wide counter. The BPE vocabulary loads on
// first call; when loading fails the heuristic counter is installed
// instead and kept for the life of the process.
func NewCounter() Counter {
	defaultOnce.Do(func() {
		if enc, err := tiktoken.GetEncoding(encodingName); err == nil {
			defaultCounter = bpeCounter{enc: enc}
			return
		}
		defaultCounter = heuristicCounter{}
	})
	return defaultCounter
}

// ===== COUNTERS =====

type bpeCounter struct {
	enc *tiktoken.Tiktoken
}

var _ Counter = bpeCounter{}

func (c bpeCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, nil, nil))
}

// heuristicCounter approximates a BPE count: words weigh about 1.3 tokens,
// punctuation about half a token.
type heuristicCounter struct{}

var _ Counter = heuristicCounter{}

var (
	wordRe  = regexp.MustCompile(`\b\w+\b`)
	punctRe = regexp.MustCompile(`[^\w\s]`)
)

func (heuristicCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	words := len(wordRe.FindAllString(text, -1))
	punct := len(punctRe.FindAllString(text, -1))
	return int(float64(words)*1.3 + float64(punct)*0.5 + 1)
}

// ===== SAVINGS =====

// Savings reports how much one compacted execution saved.
type Savings struct {
	OriginalTokens int
	FilteredTokens int
	TokensSaved    int
	SavingsPercent float64
}

// Calculate measures original against filtered text with the given
// counter. Saved tokens never go negative; the percentage is rounded to
// one decimal place.
func Calculate(c Counter, original, filtered string) Savings {
	orig := c.Count(original)
	filt := c.Count(filtered)

	saved := orig - filt
	if saved < 0 {
		saved = 0
	}

	var pct float64
	if orig > 0 {
		pct = math.Round(float64(saved)/float64(orig)*1000) / 10
	}

	return Savings{
		OriginalTokens: orig,
		FilteredTokens: filt,
		TokensSaved:    saved,
		SavingsPercent: pct,
	}
}
