package log

import "strings"

// controlCharReplacer escapes control characters that can be used for log
// injection (CWE-117). Newlines, carriage returns, and tabs inside feed data
// can forge fake log entries or mislead incident response, and every raw
// transaction record is attacker-controlled input.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// sanitizeString escapes control characters in a single string value.
func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}

// sanitizeFields escapes control characters in all string-typed field values.
// Non-string values are passed through unchanged.
func sanitizeFields(fields []Field) []Field {
	sanitized := make([]Field, len(fields))

	for i, field := range fields {
		sanitized[i] = field
		if s, ok := field.Value.(string); ok {
			sanitized[i].Value = sanitizeString(s)
		}
	}

	return sanitized
}
