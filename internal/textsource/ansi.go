package textsource

import (
	regexp "github.com/wasilibs/go-re2"
)

// ansiPattern matches CSI sequences (colors, cursor movement) and the
// short two-byte escapes, which covers what terminal logs actually
// contain.
var ansiPattern = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|[@-Z\\-_])`)

// stripANSI removes ANSI escape sequences from text.
func stripANSI(text string) string {
	return ansiPattern.ReplaceAllString(text, "")
}
