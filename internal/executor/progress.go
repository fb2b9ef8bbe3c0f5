package executor

import (
	"fmt"
	"io"
	"sync/atomic"
)

// progressMarkerEvery is how many completions pass between "[n/total]"
// markers on the console.
const progressMarkerEvery = 50

// Progress receives one tick per completed task. Implementations are called
// concurrently from pool workers and must be safe for that. Progress is
// console feedback only: removing it changes no computed statistic.
type Progress interface {
	Tick(success bool)
}

// ConsoleProgress prints the classic dot-per-unit feed: "." for a pass, "F"
// for a failure, and a running "[n/total]" marker at fixed intervals. The
// completion counter is atomic; each tick issues a single write.
type ConsoleProgress struct {
	out   io.Writer
	total int
	count atomic.Int64
}

// NewConsoleProgress creates console feedback for a run of total tasks.
func NewConsoleProgress(out io.Writer, total int) *ConsoleProgress {
	return &ConsoleProgress{out: out, total: total}
}

// Tick implements Progress.
func (p *ConsoleProgress) Tick(success bool) {
	n := p.count.Add(1)
	mark := "."
	if !success {
		mark = "F"
	}
	if n%progressMarkerEvery == 0 {
		fmt.Fprintf(p.out, "%s [%d/%d]\n", mark, n, p.total)
		return
	}
	fmt.Fprint(p.out, mark)
}
