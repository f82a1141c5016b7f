package compact

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	curlMaxBody       = 10
	curlBodyHead      = 5
	wgetMaxLines      = 10
	networkMaxDefault = 20
)

var (
	curlFormatRe    = regexp.MustCompile(`(?m)^(<|>|\*|%|Trying|Connected)`)
	wgetFormatRe    = regexp.MustCompile(`(?i)(Saving|Resolving|Connecting).*wget`)
	curlNoiseRe     = regexp.MustCompile(`^\s*[%*]\s+`)
	curlProgressRe  = regexp.MustCompile(`^\s*\d+\s+\d+\s+\d+`)
	curlZeroRe      = regexp.MustCompile(`^\s*0\s+0\s+0`)
	curlHandshakeRe = regexp.MustCompile(`^\s*(Trying|Connected|TLS|SSL|ALPN)`)
	curlReqHeaderRe = regexp.MustCompile(`^>\s+(Host|User-Agent|Accept|Content-Type)`)
	curlRspHeaderRe = regexp.MustCompile(`^<\s+(Date|Server|Content-Type|Transfer-Encoding)`)
	curlStatusRe    = regexp.MustCompile(`^<\s+HTTP`)
	httpCodeRe      = regexp.MustCompile(`HTTP/[\d.]+\s+(\d+)`)
	wgetProgressRe  = regexp.MustCompile(`^\s*\d+\s+\d+`)
	wgetPercentRe   = regexp.MustCompile(`^\s*%.*%`)
	wgetPhaseRe     = regexp.MustCompile(`^\s*(Saving|Resolving|Connecting|HTTP)`)
	wgetCodeRe      = regexp.MustCompile(`HTTP/\S+\s+(\d+)`)
	wgetSavedRe     = regexp.MustCompile(`(?i)saved\s+\[.*\]\s*(.+\.?\s*)?`)
	networkSniffRe  = regexp.MustCompile(`(?i)(HTTP|curl|wget|Connecting|Resolving)`)
)

type networkCompressor struct{}

var _ Compressor = networkCompressor{}

func (networkCompressor) Matches(text string) bool {
	return networkSniffRe.MatchString(text)
}

// Compress detects curl or wget transcripts by shape and reduces them to
// the HTTP status plus a truncated body. Anything else is capped at 20
// non-blank lines.
func (networkCompressor) Compress(lines []string) []string {
	text := strings.Join(lines, "\n")
	if curlFormatRe.MatchString(text) {
		return compressCurl(lines)
	}
	if wgetFormatRe.MatchString(text) {
		return compressWget(lines)
	}

	var result []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result = append(result, strings.TrimRight(line, " \t\r\f\v"))
		if len(result) >= networkMaxDefault {
			break
		}
	}
	return result
}

// compressCurl keeps "HTTP:<code>" from the status line and up to 10 body
// lines, dropping verbose handshake and routine header chatter.
func compressCurl(lines []string) []string {
	var result []string
	var body []string

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if curlNoiseRe.MatchString(line) ||
			curlProgressRe.MatchString(line) ||
			curlZeroRe.MatchString(line) ||
			curlHandshakeRe.MatchString(line) ||
			curlReqHeaderRe.MatchString(line) ||
			curlRspHeaderRe.MatchString(line) {
			continue
		}

		if curlStatusRe.MatchString(line) {
			if m := httpCodeRe.FindStringSubmatch(line); m != nil {
				result = append(result, "HTTP:"+m[1])
			}
			continue
		}

		if stripped != "" && !strings.HasPrefix(line, "<") && !strings.HasPrefix(line, ">") {
			body = append(body, stripped)
		}
	}

	if len(body) > curlMaxBody {
		result = append(result, body[:curlBodyHead]...)
		result = append(result, fmt.Sprintf("... [%d more lines]", len(body)-curlBodyHead))
	} else {
		result = append(result, body...)
	}
	return result
}

// compressWget keeps the HTTP status and the "saved" confirmation, capped
// at 10 lines.
func compressWget(lines []string) []string {
	var result []string

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if wgetProgressRe.MatchString(line) || wgetPercentRe.MatchString(line) {
			continue
		}

		if wgetPhaseRe.MatchString(line) {
			if m := wgetCodeRe.FindStringSubmatch(line); m != nil {
				result = append(result, "HTTP:"+m[1])
			}
			continue
		}

		if strings.Contains(strings.ToLower(stripped), "saved") {
			if m := wgetSavedRe.FindStringSubmatch(stripped); m != nil {
				target := m[1]
				if target == "" {
					target = "done"
				}
				result = append(result, "saved:"+target)
			}
			continue
		}

		if stripped != "" {
			result = append(result, stripped)
		}
	}

	if len(result) > wgetMaxLines {
		result = result[:wgetMaxLines]
	}
	return result
}
