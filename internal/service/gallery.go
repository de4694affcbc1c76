package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/timmy/pixgallery/internal/domain"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/pixabay"
)

// User facing notices.
const (
	EmptyTermMessage    = "Please enter a search term"
	EndOfResultsMessage = "We're sorry, but you've reached the end of search results."
)

const defaultPerPage = 20

var (
	// ErrEmptySearchTerm is returned when a search is started with a blank term.
	ErrEmptySearchTerm = errors.New("search term is empty")
	// ErrNoActiveSearch is returned by LoadMore before any search was made.
	ErrNoActiveSearch = errors.New("no active search")
	// ErrEndOfResults is returned by LoadMore once every page has been shown.
	ErrEndOfResults = errors.New("end of search results")
)

// HistoryRecorder persists search attempts.
type HistoryRecorder interface {
	Create(ctx context.Context, record *domain.SearchRecord) error
}

// GalleryConfig holds configuration for the gallery flow.
type GalleryConfig struct {
	PerPage int // must match the page size the searcher requests
}

// GalleryService drives a session's view from search and load-more events.
type GalleryService struct {
	searcher pixabay.Searcher
	history  HistoryRecorder
	logger   *logger.Logger
	perPage  int
}

// NewGalleryService creates a new gallery service.
// Parameters:
//   - searcher: image search client.
//   - history: optional recorder for search attempts; nil disables history.
//   - log: logger instance.
//   - cfg: gallery configuration.
//
// Returns:
//   - *GalleryService: initialized service.
func NewGalleryService(
	searcher pixabay.Searcher,
	history HistoryRecorder,
	log *logger.Logger,
	cfg *GalleryConfig,
) *GalleryService {
	perPage := defaultPerPage
	if cfg != nil && cfg.PerPage > 0 {
		perPage = cfg.PerPage
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &GalleryService{
		searcher: searcher,
		history:  history,
		logger:   log,
		perPage:  perPage,
	}
}

// log returns the context logger enriched with the session fields
func (s *GalleryService) log(ctx context.Context, sess *Session) *logger.Logger {
	l := logger.FromContext(ctx)
	if l == logger.GetDefault() {
		l = s.logger
	}
	return l.WithFields(logger.Fields{
		logger.FieldSessionID:  sess.ID,
		logger.FieldSearchTerm: sess.term,
	})
}

// Search starts a new search on the session: the page counter is reset,
// the gallery cleared and the first page fetched.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sess: session to search in.
//   - term: search term; surrounding whitespace is ignored.
//
// Returns:
//   - *domain.SearchResult: the first page on success.
//   - error: ErrEmptySearchTerm, or the searcher's error.
func (s *GalleryService) Search(ctx context.Context, sess *Session, term string) (*domain.SearchResult, error) {
	term = strings.TrimSpace(term)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// the caller reports a blank term; the view is left untouched
	if term == "" {
		return nil, ErrEmptySearchTerm
	}

	v := sess.view
	sess.term = term
	sess.totalHits = 0
	sess.exhausted = false
	sess.ResetPage()
	v.ClearGallery()
	v.ToggleLoadMoreButton(false)

	return s.fetchPage(ctx, sess)
}

// LoadMore fetches the page after the ones already shown. A search that
// matched nothing has no further pages.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sess: session with an active search.
//
// Returns:
//   - *domain.SearchResult: the fetched page on success.
//   - error: ErrNoActiveSearch, ErrEndOfResults, or the searcher's error.
func (s *GalleryService) LoadMore(ctx context.Context, sess *Session) (*domain.SearchResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.term == "" {
		return nil, ErrNoActiveSearch
	}
	if sess.exhausted {
		sess.view.ToggleLoadMoreButton(false)
		return nil, ErrEndOfResults
	}
	if sess.CurrentPage() > 1 && (sess.CurrentPage()-1)*s.perPage >= sess.totalHits {
		sess.view.ToggleLoadMoreButton(false)
		sess.view.ShowMessage(EndOfResultsMessage)
		return nil, ErrEndOfResults
	}

	return s.fetchPage(ctx, sess)
}

// fetchPage requests the session's current page. Callers hold sess.mu.
func (s *GalleryService) fetchPage(ctx context.Context, sess *Session) (*domain.SearchResult, error) {
	v := sess.view
	page := sess.CurrentPage()
	log := s.log(ctx, sess).WithField(logger.FieldPage, page)

	v.ShowLoadingIndicator()
	defer v.HideLoadingIndicator()

	start := time.Now()
	result, err := s.searcher.FetchImages(ctx, sess.term, page)
	elapsed := time.Since(start)
	s.record(ctx, sess, page, result, err, elapsed)

	if err != nil {
		if pixabay.IsNoResults(err) {
			log.Info("Search returned no images")
			sess.exhausted = true
			v.ToggleLoadMoreButton(false)
		} else {
			if body := pixabay.ResponseBody(err); body != "" {
				log = log.WithField(logger.FieldResponseBody, body)
			}
			log.WithError(err).Warn("Image search failed")
		}
		v.ShowMessage(err.Error())
		return nil, err
	}

	v.AppendImages(result.Hits)
	sess.totalHits = result.TotalHits
	sess.NextPage()

	more := result.HasMore(page, s.perPage)
	v.ToggleLoadMoreButton(more)
	if !more && page > 1 {
		v.ShowMessage(EndOfResultsMessage)
	}

	log.WithFields(logger.Fields{
		logger.FieldCount:      len(result.Hits),
		logger.FieldTotal:      result.TotalHits,
		logger.FieldDurationMs: elapsed.Milliseconds(),
	}).Info("Gallery page rendered")

	return result, nil
}

func (s *GalleryService) record(ctx context.Context, sess *Session, page int, result *domain.SearchResult, err error, elapsed time.Duration) {
	if s.history == nil {
		return
	}

	rec := &domain.SearchRecord{
		SessionID:  sess.ID,
		SearchTerm: sess.term,
		Page:       page,
		Outcome:    domain.SearchOutcomeOK,
		DurationMs: elapsed.Milliseconds(),
	}
	switch {
	case err == nil:
		rec.HitCount = len(result.Hits)
		rec.TotalHits = result.TotalHits
	case pixabay.IsNoResults(err):
		rec.Outcome = domain.SearchOutcomeNoResults
		rec.Error = err.Error()
	default:
		rec.Outcome = domain.SearchOutcomeNetworkFailure
		rec.Error = err.Error()
	}

	if herr := s.history.Create(ctx, rec); herr != nil {
		s.log(ctx, sess).WithError(herr).Warn("Failed to record search history")
	}
}
