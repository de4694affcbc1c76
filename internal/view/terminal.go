package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/timmy/pixgallery/internal/domain"
)

// Terminal renders the gallery as numbered lines on a writer.
type Terminal struct {
	out             io.Writer
	shown           int
	loading         bool
	loadMoreVisible bool

	index  func(a ...interface{}) string
	tags   func(a ...interface{}) string
	faint  func(a ...interface{}) string
	notice func(a ...interface{}) string
}

var _ View = (*Terminal)(nil)

// NewTerminal creates a terminal view writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:    out,
		index:  color.New(color.FgCyan, color.Bold).SprintFunc(),
		tags:   color.New(color.FgWhite, color.Bold).SprintFunc(),
		faint:  color.New(color.Faint).SprintFunc(),
		notice: color.New(color.FgYellow).SprintFunc(),
	}
}

func (t *Terminal) ClearGallery() {
	t.shown = 0
}

func (t *Terminal) AppendImages(hits []domain.ImageHit) {
	for _, hit := range hits {
		t.shown++
		fmt.Fprintf(t.out, "%s %s\n", t.index(fmt.Sprintf("%4d.", t.shown)), t.tags(strings.Join(hit.TagList(), ", ")))
		fmt.Fprintf(t.out, "      %s %s\n", t.faint("preview"), hit.WebformatURL)
		fmt.Fprintf(t.out, "      %s %s\n", t.faint("full   "), hit.LargeImageURL)
	}
}

func (t *Terminal) ShowLoadingIndicator() {
	if !t.loading {
		fmt.Fprintln(t.out, t.faint("Loading images, please wait..."))
	}
	t.loading = true
}

func (t *Terminal) HideLoadingIndicator() {
	t.loading = false
}

func (t *Terminal) ToggleLoadMoreButton(visible bool) {
	t.loadMoreVisible = visible
}

func (t *Terminal) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.notice(msg))
}

// Shown returns how many images have been rendered since the last clear.
func (t *Terminal) Shown() int { return t.shown }

// Loading reports the loading indicator state.
func (t *Terminal) Loading() bool { return t.loading }

// LoadMoreVisible reports whether another page can be requested.
func (t *Terminal) LoadMoreVisible() bool { return t.loadMoreVisible }

// Display returns the display value of the load-more control and loading indicator.
func (t *Terminal) Display() (loadMore, loading string) {
	return display(t.loadMoreVisible), display(t.loading)
}
