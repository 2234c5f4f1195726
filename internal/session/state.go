// Package session drives one calculator screen: the age result plus the
// asynchronous insight fetch and its loading state.
package session

// LoadState is the lifecycle of the insight request.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Success
	Error
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event drives LoadState transitions.
type Event int

const (
	// EventStart begins a fetch: the first one after a calculation or a manual retry.
	EventStart Event = iota
	EventSucceed
	EventFail
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventSucceed:
		return "succeed"
	case EventFail:
		return "fail"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Next returns the state after applying e to s.
// Completions are ignored in Idle so that a fetch resolving after a reset
// cannot resurrect the card. Outside Idle the last completion wins.
func Next(s LoadState, e Event) LoadState {
	switch e {
	case EventStart:
		return Loading
	case EventReset:
		return Idle
	case EventSucceed:
		if s == Idle {
			return Idle
		}
		return Success
	case EventFail:
		if s == Idle {
			return Idle
		}
		return Error
	}
	return s
}
