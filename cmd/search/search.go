package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/timmy/pixgallery/internal/pixabay"
	"github.com/timmy/pixgallery/internal/service"
	"github.com/timmy/pixgallery/internal/view"
)

// errReported marks failures the terminal view has already printed.
var errReported = errors.New("search failed")

// runSearch searches for term and keeps loading pages while the load-more
// control is visible, up to pages pages. It returns the number of pages shown.
// Running out of results is not an error.
func runSearch(ctx context.Context, gallery *service.GalleryService, term *view.Terminal, query string, pages int) (int, error) {
	if pages < 1 {
		pages = 1
	}

	sess := service.NewSession(term)
	if _, err := gallery.Search(ctx, sess, query); err != nil {
		if pixabay.IsNoResults(err) {
			return 0, nil
		}
		if errors.Is(err, service.ErrEmptySearchTerm) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", errReported, err)
	}

	shown := 1
	for shown < pages && term.LoadMoreVisible() {
		if _, err := gallery.LoadMore(ctx, sess); err != nil {
			if errors.Is(err, service.ErrEndOfResults) {
				break
			}
			return shown, fmt.Errorf("%w: %w", errReported, err)
		}
		shown++
	}
	return shown, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
