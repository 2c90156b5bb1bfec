package cmd

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/dendrascience/filetree/tree"
	"golang.org/x/term"
)

// progress drives a byte progress bar from tree progress reports and
// optionally slows the caller down after every report.
type progress struct {
	bar      *pb.ProgressBar
	throttle time.Duration
}

// newProgress returns a progress reporter for a transfer of total bytes
// (0 if unknown). The bar is only drawn when enabled and out is a terminal.
func newProgress(out io.Writer, total int64, enabled bool, throttle time.Duration) *progress {
	p := &progress{throttle: throttle}
	if !enabled || !isTerminal(out) {
		return p
	}
	p.bar = pb.New64(total)
	p.bar.Output = out
	p.bar.SetUnits(pb.U_BYTES)
	p.bar.ShowSpeed = true
	p.bar.Start()
	return p
}

func (p *progress) report(n int64) {
	if p.bar != nil {
		p.bar.Set64(n)
	}
	if p.throttle > 0 {
		time.Sleep(p.throttle)
	}
}

// option hooks the reporter into an encode or decode.
func (p *progress) option() tree.Option {
	return tree.WithProgress(p.report)
}

func (p *progress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
