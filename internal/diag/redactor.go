package diag

import (
	"regexp"
	"strings"
)

// Redactor removes secrets and user names from bundle text
type Redactor struct {
	patterns []redactionPattern
}

type redactionPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a redactor for launch options and config files.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []redactionPattern{
			// NAME=value assignments in launch options
			{
				regex:       regexp.MustCompile(`(?i)\b([A-Z0-9_]*(?:KEY|TOKEN|SECRET|PASSWORD|PASSWD)[A-Z0-9_]*)=("[^"]*"|'[^']*'|\S+)`),
				replacement: `$1=[REDACTED]`,
			},
			// --token=value style program flags
			{
				regex:       regexp.MustCompile(`(?i)(--?[a-z0-9-]*(?:key|token|secret|password)[a-z0-9-]*)[ =]("[^"]*"|'[^']*'|[^\s-]\S*)`),
				replacement: `$1=[REDACTED]`,
			},
			{
				regex:       regexp.MustCompile(`(?i)Bearer\s+([A-Za-z0-9_\-\.]+)`),
				replacement: `Bearer [REDACTED]`,
			},
			// Home directories reveal the user name
			{
				regex:       regexp.MustCompile(`/home/[^/\s"']+`),
				replacement: `/home/[USER]`,
			},
		},
	}
}

// Redact applies all redaction patterns to the input text
func (r *Redactor) Redact(input string) string {
	result := input
	for _, pattern := range r.patterns {
		result = pattern.regex.ReplaceAllString(result, pattern.replacement)
	}
	return result
}

// IsLikelySensitive checks if a line contains potentially sensitive data
func IsLikelySensitive(line string) bool {
	lowerLine := strings.ToLower(line)
	for _, keyword := range []string{"password", "passwd", "secret", "token", "api_key", "apikey", "credential"} {
		if strings.Contains(lowerLine, keyword) {
			return true
		}
	}
	return false
}
