package domain

import "testing"

func TestSearchResult_HasMore(t *testing.T) {
	tests := []struct {
		name    string
		result  *SearchResult
		page    int
		perPage int
		want    bool
	}{
		{name: "first of many", result: &SearchResult{TotalHits: 100}, page: 1, perPage: 40, want: true},
		{name: "middle page", result: &SearchResult{TotalHits: 100}, page: 2, perPage: 40, want: true},
		{name: "last partial page", result: &SearchResult{TotalHits: 100}, page: 3, perPage: 40, want: false},
		{name: "exact boundary", result: &SearchResult{TotalHits: 80}, page: 2, perPage: 40, want: false},
		{name: "single page", result: &SearchResult{TotalHits: 12}, page: 1, perPage: 40, want: false},
		{name: "nil result", result: nil, page: 1, perPage: 40, want: false},
		{name: "zero page size", result: &SearchResult{TotalHits: 100}, page: 1, perPage: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.HasMore(tt.page, tt.perPage); got != tt.want {
				t.Errorf("HasMore(%d, %d) = %v, want %v", tt.page, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestImageHit_TagList(t *testing.T) {
	hit := ImageHit{Tags: "cat, kitten ,, pet "}
	got := hit.TagList()
	want := []string{"cat", "kitten", "pet"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tags, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
