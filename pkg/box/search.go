package box

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchOptions narrows a search. Empty fields are omitted.
type SearchOptions struct {
	Query string

	// Type is "file", "folder" or "web_link".
	Type              string
	FileExtensions    []string
	ContentTypes      []string
	AncestorFolderIDs []string
	Fields            []string
	Limit             int
	Offset            int
}

// Search runs a full text search over the content visible to the user.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*Page[Item], error) {
	q := fieldsQuery(opts.Fields)
	if q == nil {
		q = url.Values{}
	}
	q.Set("query", opts.Query)

	for name, vs := range map[string][]string{
		"file_extensions":     opts.FileExtensions,
		"content_types":       opts.ContentTypes,
		"ancestor_folder_ids": opts.AncestorFolderIDs,
	} {
		if len(vs) > 0 {
			q.Set(name, strings.Join(vs, ","))
		}
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	var page Page[Item]
	if err := c.Get(ctx, "/search", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
