package actions

import (
	"context"
	"net/url"
)

// OpenNoteInput selects a note by id or title.
type OpenNoteInput struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
}

// OpenNote opens a note without surfacing the Bear window and returns its
// content.
func (a *Adapter) OpenNote(ctx context.Context, reqID string, in *OpenNoteInput) (*Note, error) {
	params := url.Values{
		"new_window":  {"no"},
		"float":       {"no"},
		"show_window": {"no"},
		"open_note":   {"no"},
		"selected":    {"no"},
		"edit":        {"no"},
	}
	// pin is left unset so the note's existing pin status survives.
	if in.ID != "" {
		params.Set("id", in.ID)
	}
	if in.Title != "" {
		params.Set("title", in.Title)
	}

	res, err := a.invoker.Invoke(ctx, reqID, "open-note", params)
	if err != nil {
		return nil, err
	}
	return noteFromParams(res)
}
