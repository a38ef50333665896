package curator

import "strings"

// The curator template instructs the model to wrap the new cheatsheet in
// these tags. They are the output contract between prompt and extractor.
const (
	openTag  = "<cheatsheet>"
	closeTag = "</cheatsheet>"
)

// Extract parses the curator's raw output for the last complete
// <cheatsheet>...</cheatsheet> block (tags matched case-insensitively) and
// returns the trimmed enclosed text. When no complete block is found the
// fallback is returned unchanged, so an unparseable response preserves the
// previous cheatsheet instead of corrupting the session.
func Extract(raw, fallback string) string {
	lower := strings.ToLower(raw)

	start := strings.LastIndex(lower, openTag)
	if start == -1 {
		return fallback
	}

	bodyStart := start + len(openTag)
	end := strings.Index(lower[bodyStart:], closeTag)
	if end == -1 {
		return fallback
	}

	return strings.TrimSpace(raw[bodyStart : bodyStart+end])
}
