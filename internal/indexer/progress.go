package indexer

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressReporter reports file-level indexing progress. It is
// observational only; pipeline control flow never depends on it.
type ProgressReporter interface {
	Start(total int)
	Increment()
	Finish()
}

// IndexProgress renders a progress bar on stderr
type IndexProgress struct {
	enabled bool
	bar     *progressbar.ProgressBar
}

// NewIndexProgress returns a reporter, or nil when disabled
func NewIndexProgress(enabled bool) ProgressReporter {
	if !enabled {
		return nil
	}
	return &IndexProgress{enabled: true}
}

func (p *IndexProgress) Start(total int) {
	if !p.enabled || total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *IndexProgress) Increment() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *IndexProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

// DefaultProgressEnabled enables the bar only when stderr is a terminal
func DefaultProgressEnabled() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
