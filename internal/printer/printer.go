// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/bethropolis/llmcontext/internal/content"
)

// Format selects the output layout.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists the accepted format names.
var Formats = []string{string(FormatText), string(FormatMarkdown), string(FormatJSON)}

const (
	binaryMarker = "[Skipped: Binary or non-UTF-8 file]"
	errorMarker  = "[Error reading file: %v]"
)

// Printer handles output formatting and writing to the configured output destination
type Printer struct {
	mu          sync.Mutex
	output      io.Writer
	count       atomic.Int64
	binaryCount atomic.Int64
	useColors   bool
	format      Format
	jsonStarted bool
	err         error
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output: os.Stdout,
		format: FormatText,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored path headers in text mode
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithFormat selects the output layout. Unknown names select text.
func (p *Printer) WithFormat(format Format) *Printer {
	switch format {
	case FormatMarkdown, FormatJSON:
		p.format = format
	default:
		p.format = FormatText
	}
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	if enabled {
		p.format = FormatJSON
	}
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	if enabled {
		p.format = FormatMarkdown
	}
	return p
}

// JSONFileEntry represents a file entry in JSON output
type JSONFileEntry struct {
	Root    string `json:"root,omitempty"`
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Binary  bool   `json:"binary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BeginRoot opens the section of one scan root. It is only needed when more
// than one root goes into the same output.
func (p *Printer) BeginRoot(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.format {
	case FormatText:
		p.printf("=== Directory: %s ===\n\n", dir)
	case FormatMarkdown:
		p.printf("# Directory: %s\n\n", dir)
	}
}

// EndRoot closes the section opened by BeginRoot.
func (p *Printer) EndRoot(dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.format == FormatText {
		p.printf("=== End of %s ===\n\n", dir)
	}
}

// PrintFile outputs the content of a file with its path. Content that is
// not text is replaced by a marker.
func (p *Printer) PrintFile(root, relativePath string, raw []byte) {
	p.count.Add(1)
	text, ok := content.Decode(raw)
	entry := JSONFileEntry{Root: root, Path: relativePath, Content: text}
	if !ok {
		p.binaryCount.Add(1)
		entry = JSONFileEntry{Root: root, Path: relativePath, Binary: true}
		text = binaryMarker
	}
	p.emit(entry, text)
}

// PrintError outputs a file that could not be read.
func (p *Printer) PrintError(root, relativePath string, readErr error) {
	p.count.Add(1)
	msg := unwrapPathError(readErr)
	p.emit(JSONFileEntry{Root: root, Path: relativePath, Error: msg}, fmt.Sprintf(errorMarker, msg))
}

func (p *Printer) emit(entry JSONFileEntry, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.format {
	case FormatJSON:
		if !p.jsonStarted {
			p.printf("[\n")
			p.jsonStarted = true
		} else {
			p.printf(",\n")
		}
		jsonData, err := json.MarshalIndent(entry, "  ", "  ")
		if err != nil {
			p.setErr(fmt.Errorf("printer: marshaling %s: %w", entry.Path, err))
			return
		}
		p.printf("  %s", jsonData)
	case FormatMarkdown:
		fence := fenceFor(body)
		p.printf("file: %s\n\n%s\n%s\n%s\n\n", entry.Path, fence, body, fence)
	default:
		header := "--" + entry.Path + "--"
		if p.useColors {
			header = color.New(color.FgCyan, color.Bold).Sprint(header)
		}
		p.printf("%s\n%s\n\n", header, body)
	}
}

// Finalize completes any pending operations (like closing JSON array) and
// returns the first write error.
func (p *Printer) Finalize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.format == FormatJSON {
		if p.jsonStarted {
			p.printf("\n]\n")
		} else {
			p.printf("[]\n")
		}
	}
	return p.err
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// GetCount returns the number of files printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}

// BinaryCount returns how many printed files were replaced by the binary marker.
func (p *Printer) BinaryCount() int64 {
	return p.binaryCount.Load()
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintf(p.output, format, args...); err != nil {
		p.setErr(fmt.Errorf("printer: write failed: %w", err))
	}
}

func (p *Printer) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

// fenceFor picks a backtick fence longer than any run inside body.
func fenceFor(body string) string {
	longest, run := 0, 0
	for i := 0; i < len(body); i++ {
		if body[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// unwrapPathError drops the "failed to read file:" wrapping so the marker
// shows the underlying cause.
func unwrapPathError(err error) string {
	if err == nil {
		return "unknown error"
	}
	msg := err.Error()
	return strings.TrimPrefix(msg, "failed to read file: ")
}
