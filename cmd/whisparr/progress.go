package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"whisparr/internal/processor"
)

// newProgressFunc returns a progress hook that drives a terminal progress
// bar, or nil when stdout is not interactive. Each phase gets its own bar;
// the pipeline only reports the 0 and 100 percent boundaries.
func newProgressFunc() processor.ProgressFunc {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}
	var bar *progressbar.ProgressBar
	return func(phase string, percent int) {
		switch {
		case percent <= 0:
			bar = progressbar.NewOptions(100,
				progressbar.OptionSetDescription(phase),
				progressbar.OptionClearOnFinish(),
				progressbar.OptionSetWidth(30),
			)
		case bar != nil && percent >= 100:
			_ = bar.Finish()
			bar = nil
		case bar != nil:
			_ = bar.Set(percent)
		}
	}
}
