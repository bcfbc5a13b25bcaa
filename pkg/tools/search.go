package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type searchArgs struct {
	Query             string   `json:"query"`
	FileExtensions    []string `json:"file_extensions,omitempty" jsonschema_description:"Extensions without the leading dot"`
	Where             []string `json:"where_to_look_for_query,omitempty" jsonschema:"enum=name,enum=description,enum=file_content,enum=comments,enum=tags"`
	AncestorFolderIDs []string `json:"ancestor_folder_ids,omitempty"`
	Type              string   `json:"type,omitempty" jsonschema:"enum=file,enum=folder,enum=web_link"`
	Limit             int      `json:"limit,omitempty" jsonschema:"maximum=200"`
}

type noArgs struct{}

func searchTools() []*Tool {
	return []*Tool{
		define("Search", "Search the content visible to the user.",
			func(ctx context.Context, client *box.Client, a searchArgs) (map[string]any, error) {
				return toolkit.Search(ctx, client, a.Query, toolkit.SearchOptions{
					FileExtensions:    a.FileExtensions,
					Where:             a.Where,
					AncestorFolderIDs: a.AncestorFolderIDs,
					Type:              a.Type,
					Limit:             a.Limit,
				})
			}),
		define("WhoAmI", "Get the authenticated user.",
			func(ctx context.Context, client *box.Client, _ noArgs) (map[string]any, error) {
				return toolkit.WhoAmI(ctx, client)
			}),
	}
}
