// Package pending implements the in-flight request registry: one completion
// slot per request identifier, resolved at most once by the callback listener
// and awaited by exactly one dispatching caller.
package pending

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
)

const logPrefix = "pending:registry"

// ErrDuplicateRequest is returned by Register when the identifier is already
// pending. Reusing an identifier after its request completed is fine; reusing
// it while the first request is still in flight is a caller bug.
var ErrDuplicateRequest = errors.New("request identifier already pending")

// Outcome is the result of one callback: either the raw query parameters of a
// success callback, or the code and message of an error callback.
type Outcome struct {
	Params   url.Values
	Code     int
	Message  string
	Rejected bool
}

// Success builds a success outcome carrying the callback's query parameters.
func Success(params url.Values) Outcome {
	return Outcome{Params: params}
}

// Failure builds an error outcome with the code and message Bear reported.
func Failure(code int, message string) Outcome {
	return Outcome{Code: code, Message: message, Rejected: true}
}

// Handle is the awaitable side of one pending entry. It is returned by
// Register and consumed by Await; it is valid until Unregister.
type Handle struct {
	id       string
	done     chan Outcome
	resolved bool
}

// ID returns the request identifier this handle belongs to.
func (h *Handle) ID() string { return h.id }

// Registry correlates callbacks to awaiting callers by exact identifier
// equality. Entries are never iterated or ordered; callbacks may arrive in
// any order relative to dispatch.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Handle
}

// NewRegistry creates an empty pending-request registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Handle)}
}

// Register creates a completion slot for id. It fails with
// ErrDuplicateRequest if id is already pending.
func (r *Registry) Register(id string) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; ok {
		return nil, fmt.Errorf("%s - %w: %s", logPrefix, ErrDuplicateRequest, id)
	}
	h := &Handle{id: id, done: make(chan Outcome, 1)}
	r.entries[id] = h
	return h, nil
}

// Resolve completes the slot for id and returns true. It returns false, with
// no other effect, when id is unknown or already resolved; that is the normal
// case for a late or duplicate callback and is never an error.
func (r *Registry) Resolve(id string, out Outcome) bool {
	r.mu.Lock()
	h, ok := r.entries[id]
	if !ok || h.resolved {
		r.mu.Unlock()
		return false
	}
	h.resolved = true
	r.mu.Unlock()

	// done is buffered and written exactly once per handle, so this never
	// blocks even if the awaiting caller already gave up.
	h.done <- out
	return true
}

// Unregister removes the entry for id regardless of its resolution state.
// It is idempotent.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Await suspends until the handle's entry is resolved or ctx is cancelled.
// The caller still owns cleanup: Unregister must run on every exit path.
func (r *Registry) Await(ctx context.Context, h *Handle) (Outcome, error) {
	select {
	case out := <-h.done:
		return out, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Size returns the number of in-flight entries.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
