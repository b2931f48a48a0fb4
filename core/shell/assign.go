package shell

import "strings"

// IsAssignment reports whether the line should be handled as a variable
// assignment: its first word contains an "=".
func IsAssignment(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && strings.Contains(fields[0], "=")
}

// ParseAssignment splits the first word of a NAME=VALUE line. When the first
// word ends with "=" the value is the next word, so "FOO= bar" assigns bar.
// Anything after the value is ignored. Either side may come back empty, the
// store decides whether that's acceptable.
func ParseAssignment(line string) (name, value string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}

	name, value, _ = strings.Cut(fields[0], "=")
	if value == "" && len(fields) > 1 {
		value = fields[1]
	}
	return name, value
}
