package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/morezero/bear-bridge/pkg/actions"
	"github.com/morezero/bear-bridge/pkg/events"
	"github.com/morezero/bear-bridge/pkg/pending"
	"github.com/morezero/bear-bridge/pkg/xcall"
)

const logPrefix = "dispatcher:dispatch"

// Dispatcher routes COMMS requests to the action adapter and publishes a
// note-changed event after each successful mutating action.
type Dispatcher struct {
	adapter   *actions.Adapter
	publisher events.EventPublisher
}

// NewDispatcher creates a new Dispatcher. A nil publisher disables events.
func NewDispatcher(adapter *actions.Adapter, publisher events.EventPublisher) *Dispatcher {
	if publisher == nil {
		publisher = &events.NoOpPublisher{}
	}
	return &Dispatcher{adapter: adapter, publisher: publisher}
}

// Dispatch routes a request to the matching action and returns a response.
func (d *Dispatcher) Dispatch(ctx context.Context, req *ActionRequest) *ActionResponse {
	slog.Debug(fmt.Sprintf("%s - action=%s id=%s", logPrefix, req.Action, req.ID))

	spec, ok := actions.Lookup(req.Action)
	if !ok {
		return errorResponse(req.ID, "ACTION_NOT_FOUND", fmt.Sprintf("Unknown action: %s", req.Action), false)
	}

	result, err := d.route(ctx, req)
	if err != nil {
		return failedResponse(req.ID, err)
	}

	if spec.Mutating {
		d.publishNoteChanged(ctx, spec.Name, result)
	}
	return &ActionResponse{ID: req.ID, Ok: true, Result: result}
}

// route unmarshals the request parameters and calls the typed adapter
// method. Void actions return a nil result.
func (d *Dispatcher) route(ctx context.Context, req *ActionRequest) (interface{}, error) {
	switch req.Action {
	case "open-note":
		var in actions.OpenNoteInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.OpenNote(ctx, req.ID, &in)
	case "create":
		var in actions.CreateInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.Create(ctx, req.ID, &in)
	case "replace-note":
		var in actions.ReplaceNoteInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.ReplaceNote(ctx, req.ID, &in)
	case "add-file":
		var in actions.AddFileInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return nil, d.adapter.AddFile(ctx, req.ID, &in)
	case "tags":
		return d.adapter.Tags(ctx, req.ID)
	case "open-tag":
		var in actions.OpenTagInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.OpenTag(ctx, req.ID, &in)
	case "rename-tag":
		var in actions.RenameTagInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return nil, d.adapter.RenameTag(ctx, req.ID, &in)
	case "delete-tag":
		var in actions.DeleteTagInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return nil, d.adapter.DeleteTag(ctx, req.ID, &in)
	case "trash":
		var in actions.MoveInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return nil, d.adapter.Trash(ctx, req.ID, &in)
	case "archive":
		var in actions.MoveInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return nil, d.adapter.Archive(ctx, req.ID, &in)
	case "untagged":
		var in actions.SidebarInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.Untagged(ctx, req.ID, &in)
	case "todo":
		var in actions.SidebarInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.Todo(ctx, req.ID, &in)
	case "today":
		var in actions.SidebarInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.Today(ctx, req.ID, &in)
	case "locked":
		var in actions.SidebarInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.Locked(ctx, req.ID, &in)
	case "search":
		var in actions.SearchInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.Search(ctx, req.ID, &in)
	case "grab-url":
		var in actions.GrabURLInput
		if err := decodeParams(req.Params, &in); err != nil {
			return nil, err
		}
		return d.adapter.GrabURL(ctx, req.ID, &in)
	default:
		// Lookup already filtered unknown actions; a mismatch here means
		// the catalog and this switch drifted apart.
		return nil, fmt.Errorf("%s - unrouted action %q", logPrefix, req.Action)
	}
}

// publishNoteChanged emits a best-effort note-changed event; failures are
// logged and never surfaced to the caller.
func (d *Dispatcher) publishNoteChanged(ctx context.Context, action string, result interface{}) {
	event := &events.NoteChangedEvent{
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	switch r := result.(type) {
	case *actions.NoteID:
		event.Identifier = r.Identifier
		event.Title = r.Title
	case *actions.ModifiedNote:
		event.Title = r.Title
	}
	if err := d.publisher.PublishNoteChanged(ctx, event); err != nil {
		slog.Warn(fmt.Sprintf("%s - publish note-changed for %s: %v", logPrefix, action, err))
	}
}

type invalidParamsError struct{ err error }

func (e *invalidParamsError) Error() string { return e.err.Error() }

// decodeParams unmarshals request params; absent params mean zero-valued
// input.
func decodeParams(raw json.RawMessage, target interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &invalidParamsError{err: err}
	}
	return nil
}

// failedResponse converts an adapter or transport error into the response
// envelope's error taxonomy.
func failedResponse(id string, err error) *ActionResponse {
	var actionErr *xcall.ActionError
	if errors.As(err, &actionErr) {
		resp := errorResponse(id, "ACTION_REJECTED", actionErr.Message, false)
		resp.Error.Details = map[string]int{"errorCode": actionErr.Code}
		return resp
	}

	var launchErr *xcall.LaunchError
	if errors.As(err, &launchErr) {
		resp := errorResponse(id, "LAUNCH_FAILED", launchErr.Error(), true)
		resp.Error.Details = map[string]int{"exitCode": launchErr.ExitCode}
		return resp
	}

	var paramsErr *invalidParamsError
	if errors.As(err, &paramsErr) {
		return errorResponse(id, "INVALID_ARGUMENT", "Failed to parse action params", false)
	}

	switch {
	case errors.Is(err, pending.ErrDuplicateRequest):
		return errorResponse(id, "DUPLICATE_REQUEST", err.Error(), false)
	case errors.Is(err, context.DeadlineExceeded):
		return errorResponse(id, "DEADLINE_EXCEEDED", "Timed out waiting for Bear's callback", true)
	case errors.Is(err, context.Canceled):
		return errorResponse(id, "CANCELLED", "Request cancelled before Bear answered", false)
	default:
		return errorResponse(id, "INTERNAL_ERROR", err.Error(), false)
	}
}

func errorResponse(id, code, message string, retryable bool) *ActionResponse {
	return &ActionResponse{
		ID: id,
		Ok: false,
		Error: &ErrorDetail{
			Code:      code,
			Message:   message,
			Retryable: retryable,
		},
	}
}
