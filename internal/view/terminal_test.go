package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/timmy/pixgallery/internal/domain"
)

func TestTerminal(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.ShowLoadingIndicator()
	term.ShowLoadingIndicator()
	if strings.Count(buf.String(), "Loading") != 1 {
		t.Errorf("expected one loading line, got %q", buf.String())
	}

	term.AppendImages([]domain.ImageHit{
		{LargeImageURL: "full-1", WebformatURL: "thumb-1", Tags: "sea, sky"},
		{LargeImageURL: "full-2", WebformatURL: "thumb-2", Tags: "tree"},
	})
	term.HideLoadingIndicator()
	term.ToggleLoadMoreButton(true)

	out := buf.String()
	for _, want := range []string{"1. sea, sky", "2. tree", "thumb-1", "full-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
	if term.Shown() != 2 {
		t.Errorf("expected 2 shown, got %d", term.Shown())
	}
	loadMore, loading := term.Display()
	if loadMore != DisplayBlock || loading != DisplayNone {
		t.Errorf("unexpected display state: %s %s", loadMore, loading)
	}

	term.ClearGallery()
	if term.Shown() != 0 {
		t.Errorf("expected counter reset after clear, got %d", term.Shown())
	}

	term.ShowMessage("No images found")
	if !strings.Contains(buf.String(), "No images found") {
		t.Error("expected message to be written")
	}
}
