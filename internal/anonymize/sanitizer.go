package anonymize

import "regexp"

// Secret-bearing patterns redacted from captured messages before the
// identity battery runs. A leaked credential is worse than a leaked
// hostname, so these always win.
var secretPatterns = []*regexp.Regexp{
	// API keys of common providers
	regexp.MustCompile(`sk-[A-Za-z0-9-]{20,}`),
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{35}`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36}`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`xox[baprs]-[0-9a-zA-Z-]{10,}`),
	// Generic credential assignments
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)api[_-]?key["'\s:=]+[a-zA-Z0-9_-]{20,}`),
	regexp.MustCompile(`(?i)token["'\s:=]+[a-zA-Z0-9._-]{20,}`),
	regexp.MustCompile(`(?i)password["'\s:=]+[^\s"']{8,}`),
	regexp.MustCompile(`(?i)secret["'\s:=]+[a-zA-Z0-9_-]{20,}`),
}

const redactedPlaceholder = "[REDACTED]"

// MessageSanitizer cleans free-text warning/error messages at
// ingestion time: secrets are redacted outright, then identifying
// data goes through the identity battery. Events are stored already
// sanitized; nothing downstream sees the raw message.
type MessageSanitizer struct {
	identity *IdentityAnonymizer
}

// NewMessageSanitizer creates a sanitizer backed by the given
// identity anonymizer.
func NewMessageSanitizer(identity *IdentityAnonymizer) *MessageSanitizer {
	return &MessageSanitizer{identity: identity}
}

// Sanitize returns msg with secrets redacted and identifying data
// replaced by placeholders. A clean string comes back unchanged.
func (s *MessageSanitizer) Sanitize(msg string) string {
	if msg == "" {
		return msg
	}
	out := msg
	for _, re := range secretPatterns {
		out = re.ReplaceAllString(out, redactedPlaceholder)
	}
	return s.identity.Anonymize(out)
}
