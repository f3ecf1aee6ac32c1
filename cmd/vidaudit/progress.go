package main

import (
	"io"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"vidaudit/internal/audit"
)

const progressNameWidth = 32

// progressLine draws one progress bar on a terminal. The bar is created on
// the first callback because the file count is only known once the scan ends.
type progressLine struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// newProgressPrinter returns nil for non-terminal writers, where the sampled
// log lines already report progress.
func newProgressPrinter(w io.Writer) (*progressLine, audit.ProgressFunc) {
	if !shouldColorize(w) {
		return nil, nil
	}
	p := &progressLine{w: w}
	return p, p.update
}

func (p *progressLine) update(done, total int, path string) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	p.bar.Describe(truncateName(filepath.Base(path), progressNameWidth))
	_ = p.bar.Set(done)
}

// clear erases the bar once the batch ends.
func (p *progressLine) clear() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	_ = p.bar.Clear()
}

func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width || width < 4 {
		return name
	}
	return string(runes[:width-3]) + "..."
}
