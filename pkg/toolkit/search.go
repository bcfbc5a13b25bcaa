package toolkit

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// SearchOptions narrows a Search.
type SearchOptions struct {
	// FileExtensions limits results to files with these extensions,
	// without the leading dot.
	FileExtensions []string

	// Where lists the parts of an item the query is matched against:
	// name, description, file_content, comments or tags.
	Where []string

	AncestorFolderIDs []string

	// Type is file, folder or web_link.
	Type string

	Limit int
}

// Search runs a full text search over the content visible to the user.
func Search(ctx context.Context, client *box.Client, query string, opts SearchOptions) (map[string]any, error) {
	const op = "Search"
	if err := required(op, map[string]any{"query": query}); err != nil {
		return nil, err
	}
	err := validation.ValidateStruct(&opts,
		validation.Field(&opts.Where, validation.Each(
			validation.In("name", "description", "file_content", "comments", "tags"))),
		validation.Field(&opts.Type, validation.In("file", "folder", "web_link")),
		validation.Field(&opts.Limit, validation.Min(0), validation.Max(200)),
	)
	if err != nil {
		return nil, invalid(op, err)
	}

	page, err := client.Search(ctx, box.SearchOptions{
		Query:             query,
		Type:              opts.Type,
		FileExtensions:    opts.FileExtensions,
		ContentTypes:      opts.Where,
		AncestorFolderIDs: opts.AncestorFolderIDs,
		Limit:             opts.Limit,
	})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(page.Entries) == 0 {
		return message("No results found."), nil
	}
	return wrapList("results", page.Entries)
}

// WhoAmI returns the authenticated user.
func WhoAmI(ctx context.Context, client *box.Client) (map[string]any, error) {
	const op = "WhoAmI"
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	m, err := toMap(user)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	return m, nil
}
