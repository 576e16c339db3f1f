package anonymize

import "strings"

// PathAnonymizer replaces every path component with a truncated
// keyed hash while preserving the path shape: separator style,
// depth, and the trailing file extension.
type PathAnonymizer struct {
	salt Salt
}

// NewPathAnonymizer creates a path anonymizer keyed by salt.
func NewPathAnonymizer(salt Salt) *PathAnonymizer {
	return &PathAnonymizer{salt: salt}
}

// Anonymize hashes each component of p independently. The final
// component keeps its extension verbatim so reports stay useful for
// format-related debugging. Empty components (leading separator,
// doubled separators) pass through, so the result has identical
// depth and the same absolute/relative shape as the input.
func (a *PathAnonymizer) Anonymize(p string) string {
	if p == "" {
		return ""
	}

	sep := "/"
	if strings.Contains(p, `\`) {
		sep = `\`
	}

	parts := strings.Split(p, sep)
	for i, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if i == len(parts)-1 {
			parts[i] = a.salt.shortHash(stripExt(part)) + extOf(part)
			continue
		}
		parts[i] = a.salt.shortHash(part)
	}
	return strings.Join(parts, sep)
}

// extOf returns the trailing extension including the dot, or "".
// A leading dot (hidden files) does not count as an extension.
func extOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx:]
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, extOf(name))
}
