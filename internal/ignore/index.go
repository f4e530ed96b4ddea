package ignore

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/utils"
)

// DefaultRuleFiles are the recognized rule-file names, in tie-break order.
var DefaultRuleFiles = []string{".gitignore", ".llmignore"}

// Index maps directories to their RuleSet. Each directory is loaded at most
// once; concurrent callers asking for the same directory wait for the first
// load and share its result.
type Index struct {
	fs        afero.Fs
	base      string
	ruleFiles []string
	logger    utils.Logger

	mu          sync.Mutex
	cache       map[string]*indexEntry
	diagnostics []Diagnostic
}

type indexEntry struct {
	set   *RuleSet
	ready chan struct{}
}

// NewIndex creates an Index reading rule files beneath base, an absolute
// directory on fsys.
func NewIndex(fsys afero.Fs, base string, ruleFiles []string, logger utils.Logger) *Index {
	if len(ruleFiles) == 0 {
		ruleFiles = DefaultRuleFiles
	}
	if logger == nil {
		logger = utils.NoopLogger{}
	}
	return &Index{
		fs:        fsys,
		base:      base,
		ruleFiles: ruleFiles,
		logger:    logger,
		cache:     make(map[string]*indexEntry),
	}
}

// Load returns the RuleSet of dir, a slash-separated path relative to the
// base ("" for the base). A directory without rule files yields an empty
// RuleSet.
func (ix *Index) Load(dir string) *RuleSet {
	ix.mu.Lock()
	if entry, ok := ix.cache[dir]; ok {
		ix.mu.Unlock()
		<-entry.ready
		return entry.set
	}
	entry := &indexEntry{ready: make(chan struct{})}
	ix.cache[dir] = entry
	ix.mu.Unlock()

	entry.set = ix.build(dir)
	close(entry.ready)
	return entry.set
}

// Diagnostics returns the rule files that could not be read so far.
func (ix *Index) Diagnostics() []Diagnostic {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	out := make([]Diagnostic, len(ix.diagnostics))
	copy(out, ix.diagnostics)
	return out
}

func (ix *Index) build(dir string) *RuleSet {
	groups := make([][]Rule, 0, len(ix.ruleFiles))
	for _, name := range ix.ruleFiles {
		rel := path.Join(dir, name)
		full := filepath.Join(ix.base, filepath.FromSlash(rel))

		info, err := ix.fs.Stat(full)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				ix.record(rel, err)
			}
			continue
		}
		if info.IsDir() {
			continue
		}

		data, err := afero.ReadFile(ix.fs, full)
		if err != nil {
			ix.record(rel, err)
			continue
		}

		rules := Compile(data, dir, rel)
		ix.logger.Debug("Reading ignore file: %s (%d rules)", rel, len(rules))
		groups = append(groups, rules)
	}
	return NewRuleSet(dir, groups...)
}

func (ix *Index) record(rel string, err error) {
	ix.logger.Debug("Warning: Could not read ignore file %s: %v", rel, err)
	ix.mu.Lock()
	ix.diagnostics = append(ix.diagnostics, Diagnostic{Path: rel, Err: err})
	ix.mu.Unlock()
}
