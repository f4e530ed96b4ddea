package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordingLogger(t *testing.T) {
	var l RecordingLogger
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Debug("worker %d", i)
		}(i)
	}
	wg.Wait()
	l.Warn("Could not read %s", ".gitignore")

	lines := l.Lines()
	assert.Len(t, lines, 11)
	assert.Equal(t, "WARN Could not read .gitignore", lines[10])
	assert.True(t, l.Contains("DEBUG worker 3"))
	assert.False(t, l.Contains("ERROR"))
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Warn("x")
		l.Error("x")
	})
}
