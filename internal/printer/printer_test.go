package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf)

	p.PrintFile("/proj", "main.py", []byte("print('hi')"))
	p.PrintFile("/proj", "img.png", []byte{0x89, 'P', 'N', 'G', 0x00, 0xff})
	p.PrintError("/proj", "locked.txt", errors.New("failed to read file: permission denied"))
	require.NoError(t, p.Finalize())

	want := "--main.py--\nprint('hi')\n\n" +
		"--img.png--\n[Skipped: Binary or non-UTF-8 file]\n\n" +
		"--locked.txt--\n[Error reading file: permission denied]\n\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, int64(3), p.GetCount())
	assert.Equal(t, int64(1), p.BinaryCount())
}

func TestTextFormatRootSections(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatText)

	p.BeginRoot("a")
	p.PrintFile("a", "x.txt", []byte("x"))
	p.EndRoot("a")

	assert.Equal(t, "=== Directory: a ===\n\n--x.txt--\nx\n\n=== End of a ===\n\n", buf.String())
}

func TestMarkdownFormat(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithMarkdown(true)

	p.PrintFile("", "README.md", []byte("# Title"))
	p.PrintFile("", "doc.md", []byte("```go\nx\n```"))

	assert.Equal(t,
		"file: README.md\n\n```\n# Title\n```\n\n"+
			"file: doc.md\n\n````\n```go\nx\n```\n````\n\n",
		buf.String())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithJSON(true)

	p.BeginRoot("/proj")
	p.PrintFile("/proj", "a.txt", []byte("hello"))
	p.PrintFile("/proj", "b.bin", []byte{0, 1, 2})
	p.PrintError("/proj", "c.txt", errors.New("boom"))
	p.EndRoot("/proj")
	require.NoError(t, p.Finalize())

	var entries []JSONFileEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Equal(t, []JSONFileEntry{
		{Root: "/proj", Path: "a.txt", Content: "hello"},
		{Root: "/proj", Path: "b.bin", Binary: true},
		{Root: "/proj", Path: "c.txt", Error: "boom"},
	}, entries)
}

func TestJSONFormatEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithFormat(FormatJSON)

	require.NoError(t, p.Finalize())

	var entries []JSONFileEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Empty(t, entries)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteErrorIsReported(t *testing.T) {
	p := New().WithOutput(failingWriter{})

	p.PrintFile("", "a.txt", []byte("a"))
	p.PrintFile("", "b.txt", []byte("b"))

	err := p.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, err, p.Err())
}
