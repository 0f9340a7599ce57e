package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/longcipher/suix/pkg/generator"
)

// Progress is a live spinner line fed from a Searcher's stats.
type Progress struct {
	bar    *progressbar.ProgressBar
	stats  func() generator.Stats
	target int

	stop chan struct{}
	wg   sync.WaitGroup
}

// StartProgress starts refreshing a spinner on w every interval until Stop.
func StartProgress(w io.Writer, target int, stats func() generator.Stats, interval time.Duration) *Progress {
	p := &Progress{
		bar: progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("addr"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionThrottle(interval),
			progressbar.OptionClearOnFinish(),
		),
		stats:  stats,
		target: target,
		stop:   make(chan struct{}),
	}
	p.refresh()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.refresh()
			}
		}
	}()
	return p
}

func (p *Progress) refresh() {
	s := p.stats()
	p.bar.Describe(Describe(s, p.target))
	_ = p.bar.Set64(int64(s.Attempts))
}

// Stop halts the refresh loop and clears the line.
func (p *Progress) Stop() {
	close(p.stop)
	p.wg.Wait()
	_ = p.bar.Finish()
}

// Describe renders the spinner description for a stats snapshot.
func Describe(s generator.Stats, target int) string {
	return fmt.Sprintf("found %d/%d │ %s │ %s", s.Found, target,
		FormatHashRate(s.HashRate),
		FormatDuration(time.Duration(s.ElapsedSecs*float64(time.Second))))
}
