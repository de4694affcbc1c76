package pixabay

import (
	"errors"

	"github.com/timmy/pixgallery/internal/domain"
)

// NoResultsMessage is the fixed message of a search that matched nothing.
const NoResultsMessage = "No images found"

// ErrInvalidPage is returned before any request when page is below 1.
var ErrInvalidPage = errors.New("page must be >= 1")

// NoResultsFound is returned when a well-formed response carries zero hits.
type NoResultsFound struct {
	Query domain.Query
}

func (e *NoResultsFound) Error() string { return NoResultsMessage }

// NetworkFailure wraps a transport level failure: DNS, timeout, connection
// reset, or a non-success status. Its message is the underlying message.
type NetworkFailure struct {
	Query      domain.Query
	StatusCode int // zero when no response was received
	Err        error
}

func (e *NetworkFailure) Error() string {
	if e.Err == nil {
		return "network failure"
	}
	return e.Err.Error()
}

func (e *NetworkFailure) Unwrap() error { return e.Err }

// IsNoResults reports whether err is, or wraps, a NoResultsFound.
func IsNoResults(err error) bool {
	var target *NoResultsFound
	return errors.As(err, &target)
}

// IsNetworkFailure reports whether err is, or wraps, a NetworkFailure.
func IsNetworkFailure(err error) bool {
	var target *NetworkFailure
	return errors.As(err, &target)
}
