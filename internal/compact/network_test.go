package compact

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetwork_CurlKeepsStatusAndBody(t *testing.T) {
	lines := []string{
		"*   Trying 93.184.216.34:443...",
		"* Connected to example.com (93.184.216.34) port 443",
		"> GET / HTTP/1.1",
		"> Host: example.com",
		"> User-Agent: curl/8.4.0",
		"< HTTP/1.1 200 OK",
		"< Date: Mon, 01 Jan 2024 00:00:00 GMT",
		"< Content-Type: application/json",
		`{"status":"healthy"}`,
	}

	out := networkCompressor{}.Compress(lines)

	require.Len(t, out, 2)
	assert.Equal(t, "HTTP:200", out[0])
	assert.Equal(t, `{"status":"healthy"}`, out[1])
}

func TestNetwork_CurlTruncatesLongBody(t *testing.T) {
	lines := []string{"< HTTP/1.1 200 OK"}
	for i := 0; i < 12; i++ {
		lines = append(lines, fmt.Sprintf("body line %d", i))
	}

	out := networkCompressor{}.Compress(lines)

	require.Len(t, out, 7)
	assert.Equal(t, "HTTP:200", out[0])
	assert.Equal(t, "body line 0", out[1])
	assert.Equal(t, "... [7 more lines]", out[6])
}

func TestNetwork_WgetKeepsStatusAndSaved(t *testing.T) {
	lines := []string{
		"Resolving example.com (example.com)... 93.184.216.34 via wget",
		"Connecting to example.com|93.184.216.34|:443... connected.",
		"HTTP request sent, awaiting response... 200 OK",
		"2024-01-01 00:00:00 (1.2 MB/s) - saved [51200/51200] file.tar.gz",
	}

	out := networkCompressor{}.Compress(lines)

	require.NotEmpty(t, out)
	assert.Contains(t, out[len(out)-1], "saved:")
}

func TestNetwork_DefaultCapsAtTwenty(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = fmt.Sprintf("plain output row %d", i)
	}

	out := networkCompressor{}.Compress(lines)
	assert.Len(t, out, 20)
}

func TestNetwork_Sniff(t *testing.T) {
	assert.True(t, networkCompressor{}.Matches("HTTP/1.1 200 OK"))
	assert.True(t, networkCompressor{}.Matches("Resolving example.com..."))
	assert.False(t, networkCompressor{}.Matches("entirely unrelated"))
}
