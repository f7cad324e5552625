package pokedex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rshade/pokedex/internal/entities"
	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokeapi"
)

// Phase is the discriminator of RequestState.
type Phase int

const (
	// PhaseIdle means no lookup has been made since start or the last reset.
	PhaseIdle Phase = iota
	// PhaseLoading means a lookup is in flight.
	PhaseLoading
	// PhaseSucceeded means the latest lookup returned a Pokémon.
	PhaseSucceeded
	// PhaseFailed means the latest lookup failed; Message says why.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// RequestState is the visible result of the session. Pokemon is set only in
// PhaseSucceeded and Message only in PhaseFailed.
type RequestState struct {
	Phase   Phase
	Query   string
	Pokemon *entities.Pokemon
	Message string
}

// Token identifies one lookup. Tokens increase monotonically per session.
type Token uint64

// Lookup is an issued request waiting to be fetched.
type Lookup struct {
	Token Token
	Query string
}

// Outcome is the result of fetching a Lookup.
type Outcome struct {
	Token   Token
	Query   string
	Pokemon *entities.Pokemon
	Err     error
}

// DetailFetcher is the part of the API client the session needs.
type DetailFetcher interface {
	GetPokemon(ctx context.Context, nameOrID string) (*entities.Pokemon, error)
}

// Session tracks one user's search box and lookup state.
type Session struct {
	id      string
	fetcher DetailFetcher
	logger  zerolog.Logger

	mu     sync.Mutex
	input  string
	state  RequestState
	latest Token
}

// NewSession creates an idle session.
func NewSession(fetcher DetailFetcher, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		fetcher: fetcher,
		logger:  logging.ComponentLogger(logger, "session").With().Str(logging.FieldSessionID, id).Logger(),
	}
}

// ID returns the session's UUID.
func (s *Session) ID() string {
	return s.id
}

// SetInput records the raw search box text. It does not start a lookup.
func (s *Session) SetInput(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = raw
}

// Input returns the raw search box text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// State returns a copy of the current state.
func (s *Session) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin normalizes raw and, if anything is left, moves to Loading under a new
// token. ok is false for blank input, which leaves the state untouched.
func (s *Session) Begin(raw string) (Lookup, bool) {
	query, ok := NormalizeQuery(raw)
	if !ok {
		return Lookup{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.state = RequestState{Phase: PhaseLoading, Query: query}
	s.logger.Debug().Uint64("token", uint64(s.latest)).Str("query", query).Msg("lookup started")
	return Lookup{Token: s.latest, Query: query}, true
}

// Fetch performs the network call for l. It does not touch session state and
// is safe to run off the UI goroutine.
func (s *Session) Fetch(ctx context.Context, l Lookup) Outcome {
	p, err := s.fetcher.GetPokemon(ctx, l.Query)
	return Outcome{Token: l.Token, Query: l.Query, Pokemon: p, Err: err}
}

// Apply records o if it belongs to the latest lookup and reports whether it did.
// Outcomes of superseded or reset lookups are dropped.
func (s *Session) Apply(o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Token != s.latest || s.state.Phase != PhaseLoading {
		s.logger.Debug().Uint64("token", uint64(o.Token)).Uint64("latest", uint64(s.latest)).
			Str("query", o.Query).Msg("dropping stale lookup result")
		return false
	}

	if o.Err != nil || o.Pokemon == nil {
		err := o.Err
		if err == nil {
			err = pokeapi.ErrNotFound
		}
		s.state = RequestState{Phase: PhaseFailed, Query: o.Query, Message: FailureMessage(err, o.Query)}
		s.logger.Info().Err(err).Str("query", o.Query).Msg("lookup failed")
		return true
	}

	s.state = RequestState{Phase: PhaseSucceeded, Query: o.Query, Pokemon: o.Pokemon}
	s.logger.Info().Str("query", o.Query).Int("id", o.Pokemon.ID).Msg("lookup succeeded")
	return true
}

// Search runs Begin, Fetch and Apply in one call and returns the resulting
// state. ok is false for blank input.
func (s *Session) Search(ctx context.Context, raw string) (RequestState, bool) {
	l, ok := s.Begin(raw)
	if !ok {
		return s.State(), false
	}
	s.Apply(s.Fetch(ctx, l))
	return s.State(), true
}

// Reset returns to Idle, clears the search box and invalidates any lookup in flight.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.input = ""
	s.state = RequestState{Phase: PhaseIdle}
}

// FailureMessage turns a lookup error into a short sentence for the user.
func FailureMessage(err error, query string) string {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		return fmt.Sprintf("No Pokémon matches %q.", query)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The lookup timed out. Try again."
	default:
		return "The Pokédex is unreachable right now. Try again shortly."
	}
}
