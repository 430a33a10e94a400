package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinner animates a status line while a slow backend call runs. After a
// second it also shows the elapsed time.
type spinner struct {
	out     io.Writer
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner draws message on out until Stop is called or ctx ends.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{out: out, message: message, cancel: cancel, stopped: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	start := time.Now()
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	width := 0
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", width))
			return
		case <-ticker.C:
		}
		line := s.message
		if elapsed := time.Since(start); elapsed >= time.Second {
			line = fmt.Sprintf("%s %ds", s.message, int(elapsed.Seconds()))
		}
		width = max(width, len(line)+2)
		fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(line))
	}
}

// Stop clears the line and waits for the animation to finish. It is safe
// to call more than once.
func (s *spinner) Stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}
