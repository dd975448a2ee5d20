package session

import "strings"

// UnknownCompileError is reported when the compiler failed without printing an error marker.
const UnknownCompileError = "An unknown error occurred. Check the .log file."

// snippetLines is the number of lines reported, starting at the error marker.
const snippetLines = 5

// ErrorSnippet finds the first line of compiler output starting with "!" and
// returns it along with the four lines after it.
func ErrorSnippet(output string) string {
	lines := splitLines(output)
	for i, line := range lines {
		if strings.HasPrefix(line, "!") {
			end := min(i+snippetLines, len(lines))
			return strings.Join(lines[i:end], "\n")
		}
	}
	return UnknownCompileError
}

// splitLines splits on \n, \r\n and \r without producing a trailing empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
