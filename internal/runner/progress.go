package runner

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// ProgressTracker tracks the progress of batch processing and optionally renders it
type ProgressTracker struct {
	total     int
	completed int
	failed    int
	mutex     sync.Mutex

	pw      progress.Writer
	tracker *progress.Tracker
}

// NewProgressTracker creates a new progress tracker; out may be nil
func NewProgressTracker(total int, out io.Writer) *ProgressTracker {
	pt := &ProgressTracker{total: total}
	if out == nil {
		return pt
	}

	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetMessageLength(30)
	pw.SetNumTrackersExpected(1)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(20)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Options.PercentFormat = "%2.0f%%"

	pt.tracker = &progress.Tracker{
		Message: pt.message(),
		Total:   int64(total),
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(pt.tracker)
	pt.pw = pw

	go pw.Render()
	return pt
}

// Increment increments the completion count
func (pt *ProgressTracker) Increment(failed bool) {
	pt.mutex.Lock()
	defer pt.mutex.Unlock()

	pt.completed++
	if failed {
		pt.failed++
	}
	if pt.tracker != nil {
		if failed {
			pt.tracker.UpdateMessage(pt.message())
		}
		pt.tracker.Increment(1)
	}
}

func (pt *ProgressTracker) message() string {
	if pt.failed == 0 {
		return fmt.Sprintf("Tracing %d runs", pt.total)
	}
	return fmt.Sprintf("Tracing %d runs (%d failed)", pt.total, pt.failed)
}

// Stop finishes rendering
func (pt *ProgressTracker) Stop() {
	if pt.pw == nil {
		return
	}
	pt.mutex.Lock()
	pt.tracker.MarkAsDone()
	pt.mutex.Unlock()

	pt.pw.Stop()
	for pt.pw.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}
