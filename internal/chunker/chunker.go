package chunker

import (
	"strings"
	"unicode"
)

// DefaultMaxChars is the chunk size used when no override is configured.
const DefaultMaxChars = 1000

// Split breaks text into chunks of at most maxChars characters each,
// preferring to break at whitespace. When a run of text longer than
// maxChars contains no whitespace (long URLs, base64 blobs), the cut
// falls mid-word at exactly maxChars. Every chunk is trimmed of
// surrounding whitespace; empty input or whitespace-only input yields
// no chunks.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var chunks []string
	remaining := []rune(text)

	for len(remaining) > maxChars {
		breakAt := lastWhitespace(remaining, maxChars)
		if breakAt == -1 {
			breakAt = maxChars
		}
		if chunk := strings.TrimSpace(string(remaining[:breakAt])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		remaining = []rune(strings.TrimSpace(string(remaining[breakAt:])))
	}

	if chunk := strings.TrimSpace(string(remaining)); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

// lastWhitespace returns the index of the last whitespace rune at or
// before position limit, or -1 if there is none.
func lastWhitespace(runes []rune, limit int) int {
	for i := limit; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
