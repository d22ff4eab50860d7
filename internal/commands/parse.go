package commands

import "strings"

// Parse splits a raw REPL line into a lower-cased command and its arguments.
// An empty or all-whitespace line yields an empty command.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
