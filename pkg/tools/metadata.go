package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type templateKeyArgs struct {
	TemplateKey string `json:"template_key" jsonschema_description:"Key of an enterprise metadata template"`
}

type templateCreateArgs struct {
	DisplayName string           `json:"display_name"`
	TemplateKey string           `json:"template_key,omitempty" jsonschema_description:"Derived from the display name when empty"`
	Fields      []map[string]any `json:"fields,omitempty" jsonschema_description:"Field definitions with type, displayName, key and options"`
}

type templateListArgs struct {
	Marker string `json:"marker,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type templateUpdateArgs struct {
	TemplateKey string           `json:"template_key" jsonschema_description:"Key of an enterprise metadata template"`
	Operations  []map[string]any `json:"operations" jsonschema_description:"Template operations such as addField or editTemplate"`
}

type templateInstanceArgs struct {
	InstanceID string `json:"metadata_instance_id"`
}

type templateIDArgs struct {
	TemplateID string `json:"template_id"`
}

type templateNameArgs struct {
	DisplayName string `json:"display_name"`
}

type metadataFileArgs struct {
	FileID      string `json:"file_id" jsonschema_description:"ID of the Box file"`
	TemplateKey string `json:"template_key" jsonschema_description:"Key of an enterprise metadata template"`
}

type metadataSetArgs struct {
	FileID      string         `json:"file_id" jsonschema_description:"ID of the Box file"`
	TemplateKey string         `json:"template_key" jsonschema_description:"Key of an enterprise metadata template"`
	Metadata    map[string]any `json:"metadata" jsonschema_description:"Values by field key"`
}

type metadataUpdateArgs struct {
	FileID            string         `json:"file_id" jsonschema_description:"ID of the Box file"`
	TemplateKey       string         `json:"template_key" jsonschema_description:"Key of an enterprise metadata template"`
	Metadata          map[string]any `json:"metadata" jsonschema_description:"Values by field key"`
	RemoveNonIncluded bool           `json:"remove_non_included_data,omitempty" jsonschema_description:"Remove values not present in metadata"`
}

func metadataTools() []*Tool {
	return []*Tool{
		define("MetadataTemplateCreate", "Create an enterprise metadata template.",
			func(ctx context.Context, client *box.Client, a templateCreateArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateCreate(ctx, client, a.DisplayName, a.TemplateKey, a.Fields)
			}),
		define("MetadataTemplateList", "List the enterprise metadata templates.",
			func(ctx context.Context, client *box.Client, a templateListArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateList(ctx, client, a.Marker, a.Limit)
			}),
		define("MetadataTemplateUpdate", "Apply operations to an enterprise metadata template.",
			func(ctx context.Context, client *box.Client, a templateUpdateArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateUpdate(ctx, client, a.TemplateKey, a.Operations)
			}),
		define("MetadataTemplateDelete", "Delete an enterprise metadata template.",
			func(ctx context.Context, client *box.Client, a templateKeyArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateDelete(ctx, client, a.TemplateKey)
			}),
		define("MetadataTemplateListByInstanceID", "Find the template of a metadata instance.",
			func(ctx context.Context, client *box.Client, a templateInstanceArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateListByInstanceID(ctx, client, a.InstanceID)
			}),
		define("MetadataTemplateGetByKey", "Get an enterprise metadata template by key.",
			func(ctx context.Context, client *box.Client, a templateKeyArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateGetByKey(ctx, client, a.TemplateKey)
			}),
		define("MetadataTemplateGetByID", "Get a metadata template by id.",
			func(ctx context.Context, client *box.Client, a templateIDArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateGetByID(ctx, client, a.TemplateID)
			}),
		define("MetadataTemplateGetByName", "Find an enterprise metadata template by display name.",
			func(ctx context.Context, client *box.Client, a templateNameArgs) (map[string]any, error) {
				return toolkit.MetadataTemplateGetByName(ctx, client, a.DisplayName)
			}),
		define("MetadataSetInstanceOnFile", "Apply a metadata template to a file.",
			func(ctx context.Context, client *box.Client, a metadataSetArgs) (map[string]any, error) {
				return toolkit.MetadataSetInstanceOnFile(ctx, client, a.FileID, a.TemplateKey, a.Metadata)
			}),
		define("MetadataGetInstanceOnFile", "Get the metadata of a template on a file.",
			func(ctx context.Context, client *box.Client, a metadataFileArgs) (map[string]any, error) {
				return toolkit.MetadataGetInstanceOnFile(ctx, client, a.FileID, a.TemplateKey)
			}),
		define("MetadataUpdateInstanceOnFile", "Update the metadata of a template on a file.",
			func(ctx context.Context, client *box.Client, a metadataUpdateArgs) (map[string]any, error) {
				return toolkit.MetadataUpdateInstanceOnFile(ctx, client, a.FileID, a.TemplateKey,
					a.Metadata, a.RemoveNonIncluded)
			}),
		define("MetadataDeleteInstanceOnFile", "Remove a metadata template from a file.",
			func(ctx context.Context, client *box.Client, a metadataFileArgs) (map[string]any, error) {
				return toolkit.MetadataDeleteInstanceOnFile(ctx, client, a.FileID, a.TemplateKey)
			}),
	}
}
