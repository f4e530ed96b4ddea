package ignore

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bethropolis/llmcontext/internal/utils"
)

// New creates and initializes an IgnoreMatcher rooted at rootDir, the
// ignore base against which rule directories are expressed.
func New(rootDir string, opts ...Option) (*IgnoreMatcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &IgnoreMatcher{
		rootDir:   absRootDir,
		ignoreGit: true,
		ruleFiles: DefaultRuleFiles,
		fs:        afero.NewOsFs(),
		logger:    utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	matcher.init()
	return matcher, nil
}

func (m *IgnoreMatcher) init() {
	m.logger.Debug("ignore.New: Initializing for root: %s", m.rootDir)
	m.logger.Debug("ignore.New: ignoreHidden=%v ignoreGit=%v ruleFiles=%v", m.ignoreHidden, m.ignoreGit, m.ruleFiles)

	if m.disabled {
		m.logger.Debug("ignore.New: Matcher is disabled, no rule files will be read")
		return
	}

	m.index = NewIndex(m.fs, m.rootDir, m.ruleFiles, m.logger)
	if len(m.customPatterns) > 0 {
		rules := CompilePatterns(m.customPatterns, "", "command line")
		m.custom = NewRuleSet("", rules)
		m.logger.Debug("ignore.New: Loaded %d custom patterns", len(rules))
	}
}

// RootDir returns the absolute ignore base.
func (m *IgnoreMatcher) RootDir() string {
	return m.rootDir
}

// Index returns the per-directory rule index, nil when disabled.
func (m *IgnoreMatcher) Index() *Index {
	return m.index
}

// Diagnostics returns the rule files that could not be read so far.
func (m *IgnoreMatcher) Diagnostics() []Diagnostic {
	if m == nil || m.index == nil {
		return nil
	}
	return m.index.Diagnostics()
}

// Extend returns chain followed by the RuleSet of dir.
func (m *IgnoreMatcher) Extend(chain Chain, dir string) Chain {
	if m == nil || m.index == nil {
		return chain
	}
	return chain.Append(m.index.Load(dir))
}

// ChainTo builds the chain for the contents of dir: custom patterns first,
// then the RuleSet of every directory from the base down to dir inclusive.
// No directory on the way is checked for being ignored.
func (m *IgnoreMatcher) ChainTo(dir string) Chain {
	if m == nil || m.index == nil {
		return nil
	}
	chain := Chain{}
	if m.custom != nil {
		chain = chain.Append(m.custom)
	}
	chain = m.Extend(chain, "")
	for i := 0; i < len(dir); i++ {
		if dir[i] == '/' {
			chain = m.Extend(chain, dir[:i])
		}
	}
	if dir != "" {
		chain = m.Extend(chain, dir)
	}
	return chain
}
