package actions

import (
	"context"
	"net/url"
)

// MoveInput selects a note to move by id or search term; the search term is
// ignored when an id is present.
type MoveInput struct {
	ID     string `json:"id,omitempty"`
	Search string `json:"search,omitempty"`
}

// Trash moves a note to Bear's trash. Locked and encrypted notes refuse
// this call.
func (a *Adapter) Trash(ctx context.Context, reqID string, in *MoveInput) error {
	return a.moveNote(ctx, reqID, "trash", in)
}

// Archive moves a note to Bear's archive.
func (a *Adapter) Archive(ctx context.Context, reqID string, in *MoveInput) error {
	return a.moveNote(ctx, reqID, "archive", in)
}

func (a *Adapter) moveNote(ctx context.Context, reqID, dest string, in *MoveInput) error {
	params := url.Values{
		"show_window": {"no"},
	}
	if in.ID != "" {
		params.Set("id", in.ID)
	}
	if in.Search != "" {
		params.Set("search", in.Search)
	}
	_, err := a.invoker.Invoke(ctx, reqID, dest, params)
	return err
}
