package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/timmy/pixgallery/internal/domain"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/pixabay"
	"github.com/timmy/pixgallery/internal/view"
)

type fetchCall struct {
	term string
	page int
}

// fakeSearcher serves totalHits hits for any term in pages of perPage.
type fakeSearcher struct {
	totalHits int
	perPage   int
	err       error
	calls     []fetchCall
}

func (f *fakeSearcher) FetchImages(ctx context.Context, term string, page int) (*domain.SearchResult, error) {
	f.calls = append(f.calls, fetchCall{term: term, page: page})
	if f.err != nil {
		return nil, f.err
	}
	first := (page - 1) * f.perPage
	if first >= f.totalHits {
		return nil, &pixabay.NoResultsFound{Query: domain.Query{SearchTerm: term, Page: page}}
	}
	n := f.perPage
	if first+n > f.totalHits {
		n = f.totalHits - first
	}
	hits := make([]domain.ImageHit, n)
	for i := range hits {
		idx := first + i
		hits[i] = domain.ImageHit{
			LargeImageURL: fmt.Sprintf("large-%d", idx),
			WebformatURL:  fmt.Sprintf("thumb-%d", idx),
			Tags:          term,
		}
	}
	return &domain.SearchResult{Hits: hits, TotalHits: f.totalHits}, nil
}

type fakeHistory struct {
	records []*domain.SearchRecord
	err     error
}

func (h *fakeHistory) Create(ctx context.Context, r *domain.SearchRecord) error {
	h.records = append(h.records, r)
	return h.err
}

func newTestGallery(searcher pixabay.Searcher, history HistoryRecorder, perPage int) (*GalleryService, *Session, *view.Page) {
	page := view.NewPage()
	svc := NewGalleryService(searcher, history, nil, &GalleryConfig{PerPage: perPage})
	return svc, NewSession(page), page
}

func countCards(p *view.Page) int {
	return strings.Count(p.Query(view.SelectorGallery).InnerHTML, `class="gallery-item"`)
}

func TestSession_PageCounter(t *testing.T) {
	s := NewSession(view.NewPage())
	if s.CurrentPage() != 1 {
		t.Fatalf("expected initial page 1, got %d", s.CurrentPage())
	}
	s.NextPage()
	s.NextPage()
	if s.CurrentPage() != 3 {
		t.Errorf("expected page 3, got %d", s.CurrentPage())
	}
	s.ResetPage()
	if s.CurrentPage() != 1 {
		t.Errorf("expected page 1 after reset, got %d", s.CurrentPage())
	}
	s.ResetPage()
	if s.CurrentPage() != 1 {
		t.Errorf("expected reset to be idempotent, got %d", s.CurrentPage())
	}
}

func TestGalleryService_SearchFirstPage(t *testing.T) {
	searcher := &fakeSearcher{totalHits: 100, perPage: 40}
	history := &fakeHistory{}
	svc, sess, page := newTestGallery(searcher, history, 40)

	result, err := svc.Search(context.Background(), sess, "  cats  ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Hits) != 40 {
		t.Errorf("expected 40 hits, got %d", len(result.Hits))
	}
	if len(searcher.calls) != 1 || searcher.calls[0] != (fetchCall{term: "cats", page: 1}) {
		t.Errorf("unexpected calls: %+v", searcher.calls)
	}
	if sess.CurrentPage() != 2 {
		t.Errorf("expected counter advanced to 2, got %d", sess.CurrentPage())
	}
	if countCards(page) != 40 {
		t.Errorf("expected 40 cards, got %d", countCards(page))
	}

	snap := page.Snapshot()
	if snap.LoadMore != view.DisplayBlock {
		t.Errorf("expected load-more visible, got %q", snap.LoadMore)
	}
	if snap.Loading != view.DisplayNone {
		t.Errorf("expected loading hidden after fetch, got %q", snap.Loading)
	}

	if len(history.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.records))
	}
	rec := history.records[0]
	if rec.Outcome != domain.SearchOutcomeOK || rec.HitCount != 40 || rec.TotalHits != 100 || rec.SessionID != sess.ID {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestGalleryService_LoadMoreUntilEnd(t *testing.T) {
	searcher := &fakeSearcher{totalHits: 100, perPage: 40}
	svc, sess, page := newTestGallery(searcher, nil, 40)
	ctx := context.Background()

	if _, err := svc.Search(ctx, sess, "cats"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, err := svc.LoadMore(ctx, sess); err != nil {
		t.Fatalf("LoadMore page 2: %v", err)
	}
	if page.Snapshot().LoadMore != view.DisplayBlock {
		t.Error("expected load-more visible after page 2")
	}

	if _, err := svc.LoadMore(ctx, sess); err != nil {
		t.Fatalf("LoadMore page 3: %v", err)
	}
	if countCards(page) != 100 {
		t.Errorf("expected all 100 cards, got %d", countCards(page))
	}
	snap := page.Snapshot()
	if snap.LoadMore != view.DisplayNone {
		t.Errorf("expected load-more hidden on last page, got %q", snap.LoadMore)
	}
	if len(snap.Notices) != 1 || snap.Notices[0] != EndOfResultsMessage {
		t.Errorf("expected end of results notice, got %v", snap.Notices)
	}

	_, err := svc.LoadMore(ctx, sess)
	if !errors.Is(err, ErrEndOfResults) {
		t.Errorf("expected ErrEndOfResults, got %v", err)
	}
	if len(searcher.calls) != 3 {
		t.Errorf("expected no request past the last page, got %d calls", len(searcher.calls))
	}
	for i, c := range searcher.calls {
		if c.page != i+1 {
			t.Errorf("call %d requested page %d", i, c.page)
		}
	}
}

func TestGalleryService_NewSearchResets(t *testing.T) {
	searcher := &fakeSearcher{totalHits: 100, perPage: 40}
	svc, sess, page := newTestGallery(searcher, nil, 40)
	ctx := context.Background()

	svc.Search(ctx, sess, "cats")
	svc.LoadMore(ctx, sess)
	if _, err := svc.Search(ctx, sess, "dogs"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	last := searcher.calls[len(searcher.calls)-1]
	if last != (fetchCall{term: "dogs", page: 1}) {
		t.Errorf("expected new search to request page 1, got %+v", last)
	}
	if countCards(page) != 40 {
		t.Errorf("expected gallery cleared before new results, got %d cards", countCards(page))
	}
	if sess.Term() != "dogs" || sess.CurrentPage() != 2 {
		t.Errorf("unexpected session state: term=%q page=%d", sess.Term(), sess.CurrentPage())
	}
}

func TestGalleryService_NoResults(t *testing.T) {
	searcher := &fakeSearcher{totalHits: 0, perPage: 40}
	history := &fakeHistory{}
	svc, sess, page := newTestGallery(searcher, history, 40)

	_, err := svc.Search(context.Background(), sess, "qwzx")
	if !pixabay.IsNoResults(err) {
		t.Fatalf("expected NoResultsFound, got %v", err)
	}
	snap := page.Snapshot()
	if snap.GalleryHTML != "" {
		t.Errorf("expected empty gallery, got %q", snap.GalleryHTML)
	}
	if snap.LoadMore != view.DisplayNone || snap.Loading != view.DisplayNone {
		t.Errorf("expected both controls hidden, got %+v", snap)
	}
	if len(snap.Notices) != 1 || snap.Notices[0] != pixabay.NoResultsMessage {
		t.Errorf("expected no results notice, got %v", snap.Notices)
	}
	if sess.CurrentPage() != 1 {
		t.Errorf("expected counter unchanged on failure, got %d", sess.CurrentPage())
	}
	if history.records[0].Outcome != domain.SearchOutcomeNoResults {
		t.Errorf("expected no_results outcome, got %s", history.records[0].Outcome)
	}

	if _, err := svc.LoadMore(context.Background(), sess); !errors.Is(err, ErrEndOfResults) {
		t.Errorf("expected ErrEndOfResults after no results, got %v", err)
	}
	if len(searcher.calls) != 1 {
		t.Errorf("expected no request after no results, got %d calls", len(searcher.calls))
	}

	// a new search clears the exhausted state
	searcher.totalHits = 80
	if _, err := svc.Search(context.Background(), sess, "cats"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, err := svc.LoadMore(context.Background(), sess); err != nil {
		t.Errorf("expected load more to fetch page 2, got %v", err)
	}
}

func TestGalleryService_NetworkFailure(t *testing.T) {
	netErr := &pixabay.NetworkFailure{Err: errors.New("Network Error")}
	searcher := &fakeSearcher{err: netErr}
	history := &fakeHistory{err: errors.New("disk full")}
	svc, sess, page := newTestGallery(searcher, history, 40)

	_, err := svc.Search(context.Background(), sess, "cats")
	if !errors.Is(err, netErr) {
		t.Fatalf("expected network failure to propagate, got %v", err)
	}
	snap := page.Snapshot()
	if len(snap.Notices) != 1 || snap.Notices[0] != "Network Error" {
		t.Errorf("expected transport message as notice, got %v", snap.Notices)
	}
	if snap.Loading != view.DisplayNone {
		t.Error("expected loading hidden after failure")
	}
	if history.records[0].Outcome != domain.SearchOutcomeNetworkFailure || history.records[0].Error != "Network Error" {
		t.Errorf("unexpected record: %+v", history.records[0])
	}
}

func TestGalleryService_LogsUpstreamErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("[ERROR 400] Invalid or missing API key"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := logger.New(&logger.Config{Level: "warn", Output: &buf})
	client := pixabay.NewClient(&pixabay.Config{BaseURL: srv.URL, APIKey: "bad", PerPage: 40})
	svc := NewGalleryService(client, nil, log, &GalleryConfig{PerPage: 40})
	sess := NewSession(view.NewPage())

	_, err := svc.Search(context.Background(), sess, "cats")
	if !pixabay.IsNetworkFailure(err) {
		t.Fatalf("expected NetworkFailure, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, logger.FieldResponseBody) || !strings.Contains(out, "Invalid or missing API key") {
		t.Errorf("expected upstream body in log, got %s", out)
	}
}

func TestGalleryService_EmptyTerm(t *testing.T) {
	searcher := &fakeSearcher{totalHits: 10, perPage: 40}
	svc, sess, page := newTestGallery(searcher, nil, 40)

	_, err := svc.Search(context.Background(), sess, "   ")
	if !errors.Is(err, ErrEmptySearchTerm) {
		t.Fatalf("expected ErrEmptySearchTerm, got %v", err)
	}
	if len(searcher.calls) != 0 {
		t.Errorf("expected no fetch, got %d", len(searcher.calls))
	}
	if n := page.Snapshot().Notices; len(n) != 0 {
		t.Errorf("expected no notice for a blank term, got %v", n)
	}
}

func TestGalleryService_LoadMoreWithoutSearch(t *testing.T) {
	svc, sess, _ := newTestGallery(&fakeSearcher{}, nil, 40)
	if _, err := svc.LoadMore(context.Background(), sess); !errors.Is(err, ErrNoActiveSearch) {
		t.Errorf("expected ErrNoActiveSearch, got %v", err)
	}
}

func TestGalleryService_SinglePageHidesLoadMore(t *testing.T) {
	searcher := &fakeSearcher{totalHits: 12, perPage: 40}
	svc, sess, page := newTestGallery(searcher, nil, 40)

	if _, err := svc.Search(context.Background(), sess, "rare"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	snap := page.Snapshot()
	if snap.LoadMore != view.DisplayNone {
		t.Errorf("expected load-more hidden, got %q", snap.LoadMore)
	}
	if len(snap.Notices) != 0 {
		t.Errorf("expected no end notice on a single page, got %v", snap.Notices)
	}
}

func TestNewGalleryService_DefaultPerPage(t *testing.T) {
	svc := NewGalleryService(&fakeSearcher{}, nil, nil, nil)
	if svc.perPage != defaultPerPage {
		t.Errorf("expected default per page %d, got %d", defaultPerPage, svc.perPage)
	}
}
