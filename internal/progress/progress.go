// Package progress reports incremental progress over a corpus pass.
// Display is an optional collaborator: callers that want no output use
// Nop and iteration proceeds with no observable difference.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// Reporter receives progress over a pass of known length.
type Reporter interface {
	// Start begins a pass over total items.
	Start(total int)

	// Add records n completed items.
	Add(n int)

	// Done finishes the pass.
	Done()
}

// Nop discards all progress events.
type Nop struct{}

// Start implements Reporter.
func (Nop) Start(int) {}

// Add implements Reporter.
func (Nop) Add(int) {}

// Done implements Reporter.
func (Nop) Done() {}

const barRuneCount = 20

// Bar renders a single-line terminal bar, redrawn in place with a
// carriage return. Zero-total passes render nothing.
type Bar struct {
	W     io.Writer
	Label string

	total int
	done  int
}

// Start implements Reporter.
func (b *Bar) Start(total int) {
	b.total = total
	b.done = 0

	b.render()
}

// Add implements Reporter.
func (b *Bar) Add(n int) {
	b.done += n

	b.render()
}

// Done implements Reporter.
func (b *Bar) Done() {
	if b.total <= 0 {
		return
	}

	b.render()
	fmt.Fprintln(b.W)
}

func (b *Bar) render() {
	if b.total <= 0 {
		return
	}

	filled := b.done * barRuneCount / b.total
	if filled > barRuneCount {
		filled = barRuneCount
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barRuneCount-filled)

	fmt.Fprintf(b.W, "\r%s [%s] %d/%d", b.Label, bar, b.done, b.total)
}
