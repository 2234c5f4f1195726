package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/insight"
)

var (
	// ErrInvalidInput is returned by Calculate for unparseable or future dates.
	ErrInvalidInput = errors.New(config.ErrInvalidInput)
	// ErrNoResult is returned by Retry before any successful calculation.
	ErrNoResult = errors.New(config.ErrNoResult)
	// ErrClosed is returned by Retry after Close.
	ErrClosed = errors.New(config.ErrSessionClosed)
)

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	Input     string
	Birth     engine.Date
	Result    engine.AgeResult
	HasResult bool

	State    LoadState
	Insights insight.Insights // valid in Success
	Err      error            // valid in Error
}

// Session owns the current calculation and its insight fetch.
// All methods are safe for concurrent use.
type Session struct {
	calc    *engine.Calculator
	fetcher insight.Fetcher
	timeout time.Duration

	mu       sync.Mutex
	snap     Snapshot
	gen      uint64 // bumped by Calculate and Reset; older fetches are dropped
	genCtx   context.Context
	cancel   context.CancelFunc
	onChange func(Snapshot)
	closed   bool // no fetch starts once set

	wg sync.WaitGroup
}

// New creates a session. timeout bounds every fetch; zero means config.DefaultInsightTimeout.
func New(calc *engine.Calculator, fetcher insight.Fetcher, timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = config.DefaultInsightTimeout
	}
	s := &Session{calc: calc, fetcher: fetcher, timeout: timeout}
	s.genCtx, s.cancel = context.WithCancel(context.Background())
	return s
}

// OnChange registers a listener called after every state change, from the
// goroutine that made it. It receives the state current at call time.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// SetFetcher swaps the insight backend, e.g. after the API key changed.
// In-flight fetches keep the fetcher they started with.
func (s *Session) SetFetcher(f insight.Fetcher) {
	s.mu.Lock()
	s.fetcher = f
	s.mu.Unlock()
}

// Calculate computes the age for input and starts a fetch. Invalid input
// leaves the previous state untouched and starts nothing. After Close the
// result is still recorded but no fetch starts.
// A new calculation supersedes fetches started for the previous one.
func (s *Session) Calculate(input string) (engine.AgeResult, error) {
	log := slog.With(config.LogKeyComponent, config.CompSession)

	birth, err := engine.ParseDate(input)
	if err != nil {
		log.Info(config.MsgInvalidInput, config.LogKeyValue, input, config.LogKeyError, err)
		return engine.AgeResult{}, ErrInvalidInput
	}
	res, ok := engine.Age(birth, s.calc.Today())
	if !ok {
		log.Info(config.MsgInvalidInput, config.LogKeyValue, input, config.LogKeyError, config.ErrFutureBirth)
		return engine.AgeResult{}, ErrInvalidInput
	}

	log.Info(config.MsgAgeComputed,
		config.LogKeyAge, res.Years,
		config.LogKeyYear, birth.Year)

	s.mu.Lock()
	s.newGenerationLocked()
	s.snap = Snapshot{
		Input:     input,
		Birth:     birth,
		Result:    res,
		HasResult: true,
	}
	s.startLocked()
	s.mu.Unlock()

	s.notify()
	return res, nil
}

// Retry re-runs the fetch for the current result. It may race an in-flight
// request; whichever resolves last is displayed.
func (s *Session) Retry() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.snap.HasResult {
		s.mu.Unlock()
		return ErrNoResult
	}
	s.startLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Reset clears the result and cancels in-flight fetches.
func (s *Session) Reset() {
	s.mu.Lock()
	s.newGenerationLocked()
	s.transitionLocked(EventReset)
	s.snap = Snapshot{State: s.snap.State}
	s.mu.Unlock()

	s.notify()
}

// Close cancels outstanding fetches and waits for their goroutines.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Session) newGenerationLocked() {
	s.cancel()
	s.gen++
	s.genCtx, s.cancel = context.WithCancel(context.Background())
}

// startLocked moves to Loading and launches the fetch goroutine.
func (s *Session) startLocked() {
	if s.closed {
		return
	}
	s.transitionLocked(EventStart)
	s.snap.Err = nil

	gen, parent, fetcher := s.gen, s.genCtx, s.fetcher
	year, age := s.snap.Birth.Year, s.snap.Result.Years

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(parent, s.timeout)
		defer cancel()

		var (
			out insight.Insights
			err error
		)
		if fetcher == nil {
			err = insight.ErrMissingCredential
		} else {
			out, err = fetcher.FetchInsights(ctx, year, age)
		}
		s.complete(gen, out, err)
	}()
}

func (s *Session) complete(gen uint64, out insight.Insights, err error) {
	log := slog.With(config.LogKeyComponent, config.CompSession, config.LogKeyGen, gen)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		log.Debug(config.MsgInsightStale)
		return
	}
	if err != nil {
		log.Warn(config.MsgInsightFailed, config.LogKeyError, err)
		s.transitionLocked(EventFail)
		if s.snap.State == Error {
			s.snap.Err = err
		}
	} else {
		s.transitionLocked(EventSucceed)
		if s.snap.State == Success {
			s.snap.Insights = out
			s.snap.Err = nil
		}
	}
	s.mu.Unlock()

	s.notify()
}

func (s *Session) transitionLocked(e Event) {
	from := s.snap.State
	s.snap.State = Next(from, e)
	if from != s.snap.State {
		slog.Debug(config.MsgStateChange,
			config.LogKeyComponent, config.CompSession,
			config.LogKeyEvent, e.String(),
			config.LogKeyFrom, from.String(),
			config.LogKeyTo, s.snap.State.String())
	}
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	snap := s.snap
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}
