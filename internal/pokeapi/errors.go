package pokeapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound covers every non-2xx answer and payloads that lack an id or name.
	ErrNotFound = errors.New("pokemon not found")

	// ErrUnavailable covers transport failures, an open circuit and aborted rate-limit waits.
	ErrUnavailable = errors.New("pokeapi unavailable")
)

// StatusError records the HTTP status behind an ErrNotFound.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap makes errors.Is(err, ErrNotFound) hold for any status error.
func (e *StatusError) Unwrap() error {
	return ErrNotFound
}

// serverSide reports whether the status points at PokeAPI rather than the request.
func (e *StatusError) serverSide() bool {
	return e.StatusCode >= http.StatusInternalServerError
}
