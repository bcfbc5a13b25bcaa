package box

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ErrThumbnailNotAvailable is returned when Box has no thumbnail for a
// file yet, or cannot generate one.
var ErrThumbnailNotAvailable = errors.New("box: thumbnail not available")

// GetFile returns a file. Fields limits the response to the named fields.
func (c *Client) GetFile(ctx context.Context, fileID string, fields ...string) (*File, error) {
	var file File
	if err := c.Get(ctx, "/files/"+url.PathEscape(fileID), fieldsQuery(fields), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// UpdateFile changes file attributes. A nil value in body is sent as JSON
// null, which clears the attribute.
func (c *Client) UpdateFile(
	ctx context.Context, fileID string, body map[string]any, fields ...string,
) (*File, error) {
	var file File
	if err := c.Put(ctx, "/files/"+url.PathEscape(fileID), fieldsQuery(fields), body, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// CopyFileRequest is the body of a file copy.
type CopyFileRequest struct {
	Parent  ItemMini `json:"parent"`
	Name    string   `json:"name,omitempty"`
	Version string   `json:"version,omitempty"`
}

// CopyFile copies a file into another folder.
func (c *Client) CopyFile(ctx context.Context, fileID string, req CopyFileRequest) (*File, error) {
	var file File
	path := fmt.Sprintf("/files/%s/copy", url.PathEscape(fileID))
	if err := c.Post(ctx, path, nil, req, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// DeleteFile moves a file to the trash.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.Delete(ctx, "/files/"+url.PathEscape(fileID), nil)
}

// ThumbnailOptions bounds the size of a requested thumbnail. Zero values
// are omitted.
type ThumbnailOptions struct {
	MinHeight int
	MinWidth  int
	MaxHeight int
	MaxWidth  int
}

func (o ThumbnailOptions) query() url.Values {
	q := url.Values{}
	for name, v := range map[string]int{
		"min_height": o.MinHeight,
		"min_width":  o.MinWidth,
		"max_height": o.MaxHeight,
		"max_width":  o.MaxWidth,
	} {
		if v > 0 {
			q.Set(name, strconv.Itoa(v))
		}
	}
	return q
}

func thumbnailPath(fileID, extension string) string {
	return fmt.Sprintf("/files/%s/thumbnail.%s", url.PathEscape(fileID), extension)
}

// ThumbnailURL returns the URL of a file thumbnail without downloading
// it. An empty string means no thumbnail exists.
func (c *Client) ThumbnailURL(
	ctx context.Context, fileID, extension string, opts ThumbnailOptions,
) (string, error) {
	resp, err := c.Do(ctx, &Request{
		Method:     http.MethodGet,
		Path:       thumbnailPath(fileID, extension),
		Query:      opts.query(),
		Header:     http.Header{"Accept": {"image/*"}},
		NoRedirect: true,
	}, nil)
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		endpoint, err := c.endpoint(&Request{Path: thumbnailPath(fileID, extension), Query: opts.query()})
		if err != nil {
			return "", err
		}
		return endpoint, nil
	case http.StatusFound, http.StatusAccepted:
		return resp.Header.Get("Location"), nil
	default:
		return "", nil
	}
}

// Thumbnail downloads the thumbnail image of a file.
func (c *Client) Thumbnail(
	ctx context.Context, fileID, extension string, opts ThumbnailOptions,
) ([]byte, error) {
	resp, err := c.Do(ctx, &Request{
		Method:     http.MethodGet,
		Path:       thumbnailPath(fileID, extension),
		Query:      opts.query(),
		Header:     http.Header{"Accept": {"image/*"}},
		NoRedirect: true,
	}, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || len(resp.Body) == 0 {
		return nil, ErrThumbnailNotAvailable
	}
	return resp.Body, nil
}

// FileContent downloads the current version of a file.
func (c *Client) FileContent(ctx context.Context, fileID string) ([]byte, http.Header, error) {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/files/%s/content", url.PathEscape(fileID)),
		Header: http.Header{"Accept": {"*/*"}},
	}, nil)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}
