// Package view renders gallery state. Every operation is an explicit set:
// the resulting visibility depends only on the last call, never on prior state.
package view

import "github.com/timmy/pixgallery/internal/domain"

// Display values an element can take.
const (
	DisplayBlock = "block"
	DisplayNone  = "none"
)

// View is the set of mutations the gallery flow performs on its output.
type View interface {
	// ClearGallery removes all rendered images. Idempotent.
	ClearGallery()
	// AppendImages renders hits after the ones already shown.
	AppendImages(hits []domain.ImageHit)
	ShowLoadingIndicator()
	HideLoadingIndicator()
	// ToggleLoadMoreButton sets the load-more control visible or hidden.
	ToggleLoadMoreButton(visible bool)
	// ShowMessage surfaces a notice to the user.
	ShowMessage(msg string)
}

func display(visible bool) string {
	if visible {
		return DisplayBlock
	}
	return DisplayNone
}
