// Package discovery locates the control host on the local network by probing
// a fixed list of candidate addresses in bounded concurrent batches.
package discovery

import (
	"context"
	"errors"
)

// ErrSearchRunning is returned when a search is started while another one is
// still running. The running search is not affected.
var ErrSearchRunning = errors.New("discovery: a search is already running")

// Candidate is one address hypothesis
type Candidate struct {
	Index   int    // ordinal position in the candidate sequence
	Host    string // e.g. 192.168.1.17
	Address string // base URL, e.g. http://192.168.1.17:8080
}

// Outcome is the result of probing a single candidate
type Outcome int

const (
	Unreachable Outcome = iota
	Reachable
)

func (o Outcome) String() string {
	if o == Reachable {
		return "reachable"
	}
	return "unreachable"
}

// Status is the terminal status of a search
type Status int

const (
	StatusNotFound Status = iota
	StatusFound
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusCancelled:
		return "cancelled"
	default:
		return "not found"
	}
}

// Result is produced once per search
type Result struct {
	SearchID string
	Status   Status
	Address  string // set only when Status == StatusFound
	Probed   int    // number of probes issued
}

// Found reports whether the search located the host
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// State is the controller's lifecycle state
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFound
	StateNotFound
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFound:
		return "found"
	case StateNotFound:
		return "not found"
	case StateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// ProbeFunc checks one candidate. It must not panic and must honor ctx.
type ProbeFunc func(ctx context.Context, c Candidate) Outcome

// ProgressFunc receives the percentage of candidates processed (0-100) and
// the host currently being tried.
type ProgressFunc func(percent float64, host string)

// Prober checks one candidate using the given auth token
type Prober interface {
	Probe(ctx context.Context, c Candidate, token string) Outcome
}
