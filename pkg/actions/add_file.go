package actions

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// AddFileInput attaches a file to a note. File is either the base64
// representation of the file or an http(s) URL to fetch it from.
type AddFileInput struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	File     string `json:"file"`
	Filename string `json:"filename"`
	Header   string `json:"header,omitempty"`
	Mode     string `json:"mode,omitempty"`
}

// AddFile appends or prepends a file to a note identified by id or title.
func (a *Adapter) AddFile(ctx context.Context, reqID string, in *AddFileInput) error {
	file := in.File
	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
		encoded, err := a.fetchFile(ctx, file)
		if err != nil {
			return err
		}
		file = encoded
	}

	params := url.Values{
		"selected":    {"no"},
		"open_note":   {"no"},
		"new_window":  {"no"},
		"show_window": {"no"},
		"edit":        {"no"},
		"file":        {file},
		"filename":    {in.Filename},
	}
	if in.ID != "" {
		params.Set("id", in.ID)
	}
	if in.Title != "" {
		params.Set("title", in.Title)
	}
	if in.Header != "" {
		params.Set("header", in.Header)
	}
	if in.Mode != "" {
		params.Set("mode", in.Mode)
	}

	_, err := a.invoker.Invoke(ctx, reqID, "add-file", params)
	return err
}

// fetchFile downloads fileURL and returns its base64 encoding.
func (a *Adapter) fetchFile(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("%s - build file request: %w", logPrefix, err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s - fetch file: %w", logPrefix, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s - fetch file: unexpected status %d from %s", logPrefix, resp.StatusCode, fileURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s - read file body: %w", logPrefix, err)
	}
	return base64.StdEncoding.EncodeToString(body), nil
}
