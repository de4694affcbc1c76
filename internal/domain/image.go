package domain

import "strings"

// Query identifies one page of results for a search term.
type Query struct {
	SearchTerm string `json:"search_term"`
	Page       int    `json:"page"`
}

// ImageHit is one image record returned by the image-search API.
type ImageHit struct {
	ID            int64  `json:"id,omitempty"`
	PageURL       string `json:"pageURL,omitempty"`
	LargeImageURL string `json:"largeImageURL"`
	WebformatURL  string `json:"webformatURL"`
	Tags          string `json:"tags"`
	Likes         int    `json:"likes,omitempty"`
	Views         int    `json:"views,omitempty"`
	Comments      int    `json:"comments,omitempty"`
	Downloads     int    `json:"downloads,omitempty"`
}

// TagList splits the comma separated caption into trimmed tags.
// Parameters: none.
// Returns:
//   - []string: individual tags, empty entries dropped.
func (h ImageHit) TagList() []string {
	parts := strings.Split(h.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SearchResult is the payload of a successful search: an ordered page of
// hits plus the number of hits reachable through pagination.
type SearchResult struct {
	Hits      []ImageHit `json:"hits"`
	TotalHits int        `json:"totalHits"`
}

// HasMore reports whether a page after page exists given perPage hits per page.
// Parameters:
//   - page: 1-based page that was just fetched.
//   - perPage: configured page size.
// Returns:
//   - bool: true when TotalHits extends beyond page*perPage.
func (r *SearchResult) HasMore(page, perPage int) bool {
	if r == nil || perPage <= 0 || page < 1 {
		return false
	}
	return page*perPage < r.TotalHits
}
