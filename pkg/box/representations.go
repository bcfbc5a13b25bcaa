package box

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Representation states reported by Box.
const (
	RepresentationNone       = "none"
	RepresentationPending    = "pending"
	RepresentationSuccess    = "success"
	RepresentationError      = "error"
	RepresentationImpossible = "impossible"
	RepresentationUnknown    = "unknown"
)

// Representations lists the representations of a file matching the
// requested hints.
type Representations struct {
	Entries []Representation `json:"entries"`
}

// Representation is a derivative of a file such as extracted text.
type Representation struct {
	Representation string         `json:"representation"`
	Properties     map[string]any `json:"properties,omitempty"`
	Info           struct {
		URL string `json:"url,omitempty"`
	} `json:"info"`
	Status struct {
		State string `json:"state"`
	} `json:"status"`
	Content struct {
		URLTemplate string `json:"url_template,omitempty"`
	} `json:"content"`
}

// AssetURL returns the content URL with the asset path template removed,
// which addresses the single-asset representations used for text.
func (r Representation) AssetURL() string {
	return strings.ReplaceAll(r.Content.URLTemplate, "{+asset_path}", "")
}

// GetFileRepresentations returns the file name and the representations
// matching hints, e.g. "[extracted_text]".
func (c *Client) GetFileRepresentations(ctx context.Context, fileID, hints string) (*File, error) {
	var file File
	_, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/files/" + url.PathEscape(fileID),
		Query:  fieldsQuery([]string{"name", "representations"}),
		Header: http.Header{"X-Rep-Hints": {hints}},
	}, &file)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// RequestRepresentation asks Box to generate a representation by
// fetching its info URL.
func (c *Client) RequestRepresentation(ctx context.Context, rep Representation) error {
	if rep.Info.URL == "" {
		return nil
	}
	_, err := c.Do(ctx, &Request{Method: http.MethodGet, URL: rep.Info.URL}, nil)
	return err
}
