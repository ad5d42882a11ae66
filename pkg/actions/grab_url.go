package actions

import (
	"context"
	"net/url"
)

// GrabURLInput creates a note from the content of a web page. Tags are
// ignored when Bear's web content preferences define their own.
type GrabURLInput struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags,omitempty"`
}

// GrabURL creates the note and returns its identifier.
func (a *Adapter) GrabURL(ctx context.Context, reqID string, in *GrabURLInput) (*NoteID, error) {
	params := url.Values{
		"url": {in.URL},
	}
	if len(in.Tags) > 0 {
		params.Set("tags", joinTags(in.Tags))
	}

	res, err := a.invoker.Invoke(ctx, reqID, "grab-url", params)
	if err != nil {
		return nil, err
	}
	return &NoteID{Identifier: res.Get("identifier"), Title: res.Get("title")}, nil
}
