package compact

import (
	"regexp"
	"strings"

	"github.com/compresr/ctk/internal/symbols"
)

var (
	dockerHeaderRe    = regexp.MustCompile(`^\s*(CONTAINER ID|REPOSITORY|NETWORK ID|VOLUME NAME|IMAGE\s+COMMAND)`)
	dockerColumnRe    = regexp.MustCompile(`\s{2,}`)
	dockerBoundPortRe = regexp.MustCompile(`0\.0\.0\.0:(\d+)->`)
	dockerAnyPortRe   = regexp.MustCompile(`:(\d+)->`)
	dockerLongIDRe    = regexp.MustCompile(`\b([a-f0-9]{12,})\b`)
	dockerSniffRe     = regexp.MustCompile(`(CONTAINER ID|[a-f0-9]{12,}\s+\w+)`)
)

type dockerCompressor struct{}

var _ Compressor = dockerCompressor{}

func (dockerCompressor) Matches(text string) bool {
	return dockerSniffRe.MatchString(text)
}

// Compress rewrites `docker ps` style tables into one short line per
// container:
//
//	abc1234   nginx:latest   "/docker-entrypoint…"   Up 2 hours   0.0.0.0:80->80/tcp   web
//
// becomes "abc1234 nginx U2h 80 web". Lines that don't split into enough
// columns keep their text with long hex IDs truncated.
func (dockerCompressor) Compress(lines []string) []string {
	var result []string
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if dockerHeaderRe.MatchString(stripped) {
			continue
		}

		parts := dockerColumnRe.Split(stripped, -1)
		if len(parts) < 5 {
			compressed := dockerLongIDRe.ReplaceAllStringFunc(stripped, func(id string) string {
				return id[:7]
			})
			if compressed != "" {
				result = append(result, compressed)
			}
			continue
		}

		id := parts[0]
		if len(id) >= 7 {
			id = id[:7]
		}

		image, _, _ := strings.Cut(parts[1], ":")
		if len(image) > 15 {
			image = image[:12] + "..."
		}

		status := symbols.SymbolizeDockerState(parts[4])
		name := parts[len(parts)-1]

		// PORTS sits second from the end when present. Keep the host port.
		ports := ""
		if len(parts) >= 7 {
			portsRaw := parts[len(parts)-2]
			if m := dockerBoundPortRe.FindStringSubmatch(portsRaw); m != nil {
				ports = m[1]
			} else if strings.Contains(portsRaw, "->") {
				if m := dockerAnyPortRe.FindStringSubmatch(portsRaw); m != nil {
					ports = m[1]
				}
			}
		}

		if ports != "" && ports != name {
			result = append(result, id+" "+image+" "+status+" "+ports+" "+name)
		} else {
			result = append(result, id+" "+image+" "+status+" "+name)
		}
	}
	return result
}
