package txengine

import "github.com/myfans/settlement/internal/apperror"

// Snapshot is a read-only view of a Run for presentation layers.
type Snapshot[T any] struct {
	Result     *T              `json:"result,omitempty"`
	Error      *apperror.Error `json:"error,omitempty"`
	State      State           `json:"state"`
	RetryCount int             `json:"retry_count"`
	IsPending  bool            `json:"is_pending"`
	IsSuccess  bool            `json:"is_success"`
	IsFailed   bool            `json:"is_failed"`
}

// Snapshot captures the run's current state.
func (r *Run[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot[T]{
		State:      r.state,
		Error:      r.err,
		RetryCount: r.retryCount,
		IsPending:  r.state == StatePending,
		IsSuccess:  r.state == StateSuccess,
		IsFailed:   r.state == StateFailed,
	}
	if r.state == StateSuccess {
		result := r.result
		s.Result = &result
	}
	return s
}
