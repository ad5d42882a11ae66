package actions

import "context"

// SidebarInput optionally narrows a sidebar listing with a search term.
type SidebarInput struct {
	Search string `json:"search,omitempty"`
}

// Untagged lists the notes in the Untagged sidebar.
func (a *Adapter) Untagged(ctx context.Context, reqID string, in *SidebarInput) ([]NoteInfo, error) {
	return a.sidebarItems(ctx, reqID, "untagged", in)
}

// Todo lists the notes in the Todo sidebar.
func (a *Adapter) Todo(ctx context.Context, reqID string, in *SidebarInput) ([]NoteInfo, error) {
	return a.sidebarItems(ctx, reqID, "todo", in)
}

// Today lists the notes in the Today sidebar.
func (a *Adapter) Today(ctx context.Context, reqID string, in *SidebarInput) ([]NoteInfo, error) {
	return a.sidebarItems(ctx, reqID, "today", in)
}

// Locked lists the notes in the Locked sidebar.
func (a *Adapter) Locked(ctx context.Context, reqID string, in *SidebarInput) ([]NoteInfo, error) {
	return a.sidebarItems(ctx, reqID, "locked", in)
}

func (a *Adapter) sidebarItems(ctx context.Context, reqID, kind string, in *SidebarInput) ([]NoteInfo, error) {
	params, err := a.tokenParams(kind)
	if err != nil {
		return nil, err
	}
	params.Set("show_window", "no")
	if in.Search != "" {
		params.Set("search", in.Search)
	}

	res, err := a.invoker.Invoke(ctx, reqID, kind, params)
	if err != nil {
		return nil, err
	}
	return parseNotes(res.Get("notes"))
}
