package actions

import (
	"context"
	"net/url"
)

// RenameTagInput renames an existing tag. Bear refuses the call when the
// app is locked or the tag contains locked notes.
type RenameTagInput struct {
	Name    string `json:"name"`
	NewName string `json:"new_name"`
}

// RenameTag renames a tag.
func (a *Adapter) RenameTag(ctx context.Context, reqID string, in *RenameTagInput) error {
	params := url.Values{
		"name":        {in.Name},
		"new_name":    {in.NewName},
		"show_window": {"no"},
	}
	_, err := a.invoker.Invoke(ctx, reqID, "rename-tag", params)
	return err
}

// DeleteTagInput deletes an existing tag.
type DeleteTagInput struct {
	Name string `json:"name"`
}

// DeleteTag deletes a tag.
func (a *Adapter) DeleteTag(ctx context.Context, reqID string, in *DeleteTagInput) error {
	params := url.Values{
		"name":        {in.Name},
		"show_window": {"no"},
	}
	_, err := a.invoker.Invoke(ctx, reqID, "delete-tag", params)
	return err
}
