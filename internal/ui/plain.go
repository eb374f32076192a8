package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/rovshanmuradov/transfer-feed/internal/feed"
)

// PlainRenderer writes the feed to a line-oriented writer, for terminals
// without TUI support and for piping. It implements feed.Sink.
type PlainRenderer struct {
	mu       sync.Mutex
	w        io.Writer
	rendered bool
}

func NewPlainRenderer(w io.Writer) *PlainRenderer {
	return &PlainRenderer{w: w}
}

// Publish prints the list only when it changed, or once after the
// first successful pass.
func (r *PlainRenderer) Publish(state feed.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch state.Status {
	case feed.StatusLoading:
		fmt.Fprintln(r.w, "Updating...")
	case feed.StatusError:
		fmt.Fprintln(r.w, state.Err)
	case feed.StatusSuccess:
		if r.rendered && !state.Changed {
			return
		}
		r.rendered = true
		r.renderList(state)
	}
}

func (r *PlainRenderer) renderList(state feed.State) {
	fmt.Fprintf(r.w, "Recent Token Transfers (%s)\n", state.UpdatedAt.Local().Format(feed.TimeLayout))
	if len(state.Transfers) == 0 {
		fmt.Fprintln(r.w, "No transfers found")
		return
	}
	for _, t := range state.Transfers {
		fmt.Fprintln(r.w, feed.Describe(t))
		fmt.Fprintf(r.w, "  %s\n", t.Timestamp.Local().Format(feed.TimeLayout))
	}
}
