package textsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dripfeedbot/dripfeed/internal/logger"
)

func testLogger() *logger.Logger {
	log, err := logger.New(logger.Config{
		Level:  "debug",
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadLines_Plain(t *testing.T) {
	r := New(Options{}, testLogger())
	path := writeFile(t, "greetings.txt", []byte("hi\n\n"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)

	// Trailing newline does not produce a phantom extra line, but the
	// interior empty line survives.
	assert.Equal(t, []string{"hi", ""}, lines)
}

func TestReadLines_NoTrailingNewline(t *testing.T) {
	r := New(Options{}, testLogger())
	path := writeFile(t, "input.txt", []byte("a\nb"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestReadLines_EmptyFile(t *testing.T) {
	r := New(Options{}, testLogger())
	path := writeFile(t, "empty.txt", nil)

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadLines_UTF8BOMStripped(t *testing.T) {
	r := New(Options{}, testLogger())
	path := writeFile(t, "bom.txt", []byte("\xef\xbb\xbffirst\nsecond\n"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, lines)
}

func TestReadLines_UTF16BOM(t *testing.T) {
	r := New(Options{}, testLogger())
	// "hi\n" encoded as UTF-16 little-endian with BOM.
	data := []byte{0xff, 0xfe, 'h', 0x00, 'i', 0x00, '\n', 0x00}
	path := writeFile(t, "utf16.txt", data)

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, lines)
}

func TestReadLines_MissingFile(t *testing.T) {
	r := New(Options{}, testLogger())

	_, err := r.ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to read")
}

func TestReadLines_Directory(t *testing.T) {
	r := New(Options{}, testLogger())

	_, err := r.ReadLines(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestReadLines_SizeLimit(t *testing.T) {
	r := New(Options{MaxFileBytes: 4}, testLogger())
	path := writeFile(t, "big.txt", []byte("this is more than four bytes\n"))

	_, err := r.ReadLines(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 4")
}

func TestReadLines_StripANSI(t *testing.T) {
	r := New(Options{StripANSI: true}, testLogger())
	path := writeFile(t, "log.txt", []byte("\x1b[31merror:\x1b[0m boom\nplain\n"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"error: boom", "plain"}, lines)
}

func TestReadLines_ANSIKeptWhenDisabled(t *testing.T) {
	r := New(Options{}, testLogger())
	path := writeFile(t, "log.txt", []byte("\x1b[31mred\x1b[0m\n"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"\x1b[31mred\x1b[0m"}, lines)
}

func TestReadLines_HTMLConverted(t *testing.T) {
	r := New(Options{HTMLToMarkdown: true}, testLogger())
	path := writeFile(t, "page.html", []byte("<h1>Title</h1><p>Some <strong>bold</strong> text.</p>"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	joined := ""
	for _, l := range lines {
		joined += l + "\n"
	}
	assert.Contains(t, joined, "# Title")
	assert.Contains(t, joined, "**bold**")
}

func TestReadLines_HTMLNotConvertedForTxt(t *testing.T) {
	r := New(Options{HTMLToMarkdown: true}, testLogger())
	path := writeFile(t, "page.txt", []byte("<h1>Title</h1>\n"))

	lines, err := r.ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"<h1>Title</h1>"}, lines)
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "color", in: "\x1b[32mok\x1b[0m", want: "ok"},
		{name: "cursor", in: "\x1b[2Jcleared", want: "cleared"},
		{name: "no escapes", in: "plain text", want: "plain text"},
		{name: "short escape", in: "\x1bM up", want: " up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(tt.in))
		})
	}
}
