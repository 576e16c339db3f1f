package anonymize

import (
	"net"
	"os"
	"os/user"
	"regexp"
	"strings"
)

// Static matchers for the identity battery. Both IP matchers find
// candidates by shape only; net.ParseIP decides whether a candidate
// is really an address, so timestamps ("12:30:45") and version
// strings survive untouched.
var (
	reIPv6Candidate = regexp.MustCompile(`[0-9A-Fa-f]{1,4}(?::[0-9A-Fa-f]{0,4}){2,8}|::[0-9A-Fa-f]{1,4}(?::[0-9A-Fa-f]{0,4}){0,6}`)
	reIPv4Candidate = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	reWindowsPath   = regexp.MustCompile(`(?:[A-Za-z]:\\|\\\\)[^\s"'<>|*?]+`)
	reUnixPath      = regexp.MustCompile(`(?:/[\w.\-~+@<>:]+){2,}/?`)
	reDomain        = regexp.MustCompile(`(?i)\b(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+(?:com|net|org|io|dev|app|edu|gov|mil|info|biz|me|co|uk|de|fr|es|it|nl|se|no|fi|pl|cz|eu|ai|cloud|tech)\b`)
)

// IdentityAnonymizer applies a fixed, ordered battery of matchers to
// free text: username, IPv6, IPv4, Windows paths, Unix paths, domain
// names. Order is most-specific-first so a narrow match (the
// username, an address) is never absorbed into a broader one (a path
// or domain). Matches are replaced by typed placeholders embedding a
// truncated keyed hash of the matched value; TLDs of domains are
// preserved.
type IdentityAnonymizer struct {
	salt   Salt
	reUser *regexp.Regexp // nil when no username is known
}

// NewIdentityAnonymizer creates an identity anonymizer keyed by salt.
// username is matched exactly and case-insensitively; pass
// CurrentUsername() for the session user, or "" to disable that
// matcher.
func NewIdentityAnonymizer(salt Salt, username string) *IdentityAnonymizer {
	a := &IdentityAnonymizer{salt: salt}
	if len(username) >= 2 {
		a.reUser = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(username) + `\b`)
	}
	return a
}

// CurrentUsername returns the login name of the current user,
// best-effort. Windows DOMAIN\user prefixes are stripped.
func CurrentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		if idx := strings.LastIndex(name, `\`); idx >= 0 {
			name = name[idx+1:]
		}
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return os.Getenv("USERNAME")
}

// Anonymize runs the battery over s. Strings without matches are
// returned unchanged; malformed input cannot fail, only pass
// through. Deterministic for one instance.
func (a *IdentityAnonymizer) Anonymize(s string) string {
	if s == "" {
		return s
	}
	out := s
	if a.reUser != nil {
		out = a.reUser.ReplaceAllStringFunc(out, func(m string) string {
			return "<user:" + a.salt.shortHash(strings.ToLower(m)) + ">"
		})
	}
	out = reIPv6Candidate.ReplaceAllStringFunc(out, a.replaceIP)
	out = reIPv4Candidate.ReplaceAllStringFunc(out, a.replaceIP)
	out = reWindowsPath.ReplaceAllStringFunc(out, a.replacePath)
	out = reUnixPath.ReplaceAllStringFunc(out, a.replacePath)
	out = reDomain.ReplaceAllStringFunc(out, a.replaceDomain)
	return out
}

func (a *IdentityAnonymizer) replaceIP(m string) string {
	if net.ParseIP(m) == nil {
		return m
	}
	return "<ip:" + a.salt.shortHash(m) + ">"
}

func (a *IdentityAnonymizer) replacePath(m string) string {
	return "<path:" + a.salt.shortHash(m) + ">"
}

func (a *IdentityAnonymizer) replaceDomain(m string) string {
	idx := strings.LastIndex(m, ".")
	return "<domain:" + a.salt.shortHash(strings.ToLower(m)) + ">" + m[idx:]
}
