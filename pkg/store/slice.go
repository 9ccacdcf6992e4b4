package store

import "github.com/bankline/bankline/pkg/provider"

// Status is the tagged state of a domain slice. Exactly one status
// reflects the most recent fetch outcome; the three-flag shape of the old
// {data, isLoading, error} triple cannot be represented inconsistently
// here.
type Status string

const (
	// StatusIdle means no fetch has been initiated yet.
	StatusIdle Status = "idle"
	// StatusLoading means a fetch is in flight. Previously loaded data
	// stays visible while loading.
	StatusLoading Status = "loading"
	// StatusLoaded means the most recent fetch succeeded.
	StatusLoaded Status = "loaded"
	// StatusFailed means the most recent fetch failed. Previously loaded
	// data is left untouched.
	StatusFailed Status = "failed"
)

// slice is the store-internal state of one remote data domain.
//
// gen is a generation counter bumped at every fetch initiation: a fetch
// result only commits while its generation is still the latest, so the
// most recently initiated fetch wins regardless of completion order.
type slice[T any] struct {
	status  Status
	data    T
	hasData bool
	source  provider.Source
	errMsg  string
	cause   error
	gen     uint64
}

// Snapshot is the read-side view of a domain slice.
type Snapshot[T any] struct {
	Status  Status          `json:"status"`
	Data    T               `json:"data"`
	HasData bool            `json:"has_data"`
	Source  provider.Source `json:"source,omitempty"`
	Err     string          `json:"error,omitempty"`
	Cause   error           `json:"-"`
}

func (s *slice[T]) snapshot() Snapshot[T] {
	return Snapshot[T]{
		Status:  s.status,
		Data:    s.data,
		HasData: s.hasData,
		Source:  s.source,
		Err:     s.errMsg,
		Cause:   s.cause,
	}
}
