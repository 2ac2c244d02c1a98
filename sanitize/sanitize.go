// Package sanitize strips obvious personal data and credentials from
// text before it is sent to an AI backend.
package sanitize

import "regexp"

// Replacement markers left in sanitized text.
const (
	RedactedEmail  = "<REDACTED_EMAIL>"
	RedactedIP     = "<REDACTED_IP>"
	RedactedSecret = "<REDACTED_SECRET>"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Known credential prefixes followed by a long token body. The
	// length floor keeps short identifiers like "sk-test" intact.
	secretPattern = regexp.MustCompile(`(sk-|ghp_|gho_|xoxb-|xoxp-|AKIA|AIza)[a-zA-Z0-9_\-]{20,}`)

	// Four dotted octets not embedded in a longer dotted run, so
	// semantic versions like 1.2.3 stay untouched.
	ipPattern = regexp.MustCompile(`(^|[^0-9.])((?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])(?:\.(?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])){3})($|[^0-9.])`)
)

// Redact replaces emails, credentials, and IPv4 addresses with
// placeholder markers.
func Redact(text string) string {
	out := secretPattern.ReplaceAllString(text, RedactedSecret)
	out = emailPattern.ReplaceAllString(out, RedactedEmail)
	out = ipPattern.ReplaceAllString(out, "${1}"+RedactedIP+"${3}")
	return out
}

// ContainsSensitive reports whether the text holds anything Redact
// would remove.
func ContainsSensitive(text string) bool {
	return secretPattern.MatchString(text) ||
		emailPattern.MatchString(text) ||
		ipPattern.MatchString(text)
}
