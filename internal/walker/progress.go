package walker

import (
	"sync"
	"sync/atomic"
	"time"
)

const progressInterval = 300 * time.Millisecond

// progress counts entries and reports them to a ProgressCallback on a
// ticker until stop is called.
type progress struct {
	totalFiles     atomic.Int64
	processedFiles atomic.Int64
	skippedFiles   atomic.Int64
	totalDirs      atomic.Int64
	skippedDirs    atomic.Int64

	current atomic.Value // string

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func startProgress(fn ProgressCallback) *progress {
	p := &progress{done: make(chan struct{})}
	p.current.Store("")
	if fn == nil {
		return p
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-p.done:
				fn(p.snapshot())
				return
			case <-ticker.C:
				fn(p.snapshot())
			}
		}
	}()
	return p
}

func (p *progress) snapshot() ProgressStats {
	return ProgressStats{
		TotalFiles:      p.totalFiles.Load(),
		ProcessedFiles:  p.processedFiles.Load(),
		SkippedFiles:    p.skippedFiles.Load(),
		TotalDirs:       p.totalDirs.Load(),
		SkippedDirs:     p.skippedDirs.Load(),
		CurrentFilePath: p.current.Load().(string),
	}
}

func (p *progress) skipped(isDir bool) {
	if isDir {
		p.skippedDirs.Add(1)
	} else {
		p.skippedFiles.Add(1)
	}
}

// stop sends a final report and waits for the reporter to exit.
func (p *progress) stop() {
	p.stopOnce.Do(func() { close(p.done) })
	p.wg.Wait()
}
