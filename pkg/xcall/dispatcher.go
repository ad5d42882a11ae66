// Package xcall dispatches actions to Bear over its x-callback-url scheme
// and awaits the correlated callback outcome.
package xcall

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	"github.com/morezero/bear-bridge/pkg/pending"
)

const logPrefix = "xcall:dispatcher"

// Dispatcher builds outbound action URLs, launches Bear through the OS
// opener and awaits the matching callback. One Invoke call owns exactly one
// pending entry for its whole lifetime.
type Dispatcher struct {
	registry     *pending.Registry
	launcher     Launcher
	callbackBase string
}

// NewDispatcherParams holds parameters for NewDispatcher.
type NewDispatcherParams struct {
	Registry *pending.Registry
	Launcher Launcher
	// CallbackScheme is the redirector scheme callbacks travel over
	// (default "xfwder").
	CallbackScheme string
	// SocketStem identifies this process's callback socket inside the
	// callback addresses.
	SocketStem string
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(params NewDispatcherParams) *Dispatcher {
	scheme := params.CallbackScheme
	if scheme == "" {
		scheme = "xfwder"
	}
	launcher := params.Launcher
	if launcher == nil {
		launcher = NewExecLauncher(nil)
	}
	return &Dispatcher{
		registry:     params.Registry,
		launcher:     launcher,
		callbackBase: fmt.Sprintf("%s://%s", scheme, params.SocketStem),
	}
}

// Invoke dispatches one action and returns the raw success parameters.
// An empty id mints a fresh identifier; callers with their own per-request
// identity (the comms envelope ID) pass it through.
//
// Failure modes: pending.ErrDuplicateRequest for identifier reuse while
// still pending, *LaunchError when the opener fails, *ActionError when Bear
// reports failure, and ctx errors on cancellation. The pending entry is
// removed on every path.
func (d *Dispatcher) Invoke(ctx context.Context, id, action string, params url.Values) (url.Values, error) {
	if id == "" {
		id = uuid.NewString()
	}

	handle, err := d.registry.Register(id)
	if err != nil {
		return nil, err
	}
	defer d.registry.Unregister(id)

	augmented := url.Values{}
	for k, vs := range params {
		augmented[k] = vs
	}
	augmented.Set("x-success", fmt.Sprintf("%s/%s/success", d.callbackBase, id))
	augmented.Set("x-error", fmt.Sprintf("%s/%s/error", d.callbackBase, id))

	actionURL := BuildURL(action, augmented)
	slog.Debug(fmt.Sprintf("%s - dispatching %s id=%s", logPrefix, action, id))

	if err := d.launcher.Open(ctx, actionURL); err != nil {
		slog.Error(fmt.Sprintf("%s - launch %s failed: %v", logPrefix, action, err))
		return nil, err
	}

	out, err := d.registry.Await(ctx, handle)
	if err != nil {
		// Cancelled or timed out upstream; the deferred Unregister makes a
		// late callback for this id a harmless 404.
		return nil, err
	}
	if out.Rejected {
		return nil, &ActionError{Code: out.Code, Message: out.Message}
	}
	return out.Params, nil
}
