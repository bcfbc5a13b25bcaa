package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type docgenPageArgs struct {
	Marker string `json:"marker,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type docgenTemplateArgs struct {
	TemplateID string `json:"template_id" jsonschema_description:"File id of the template"`
}

type docgenTagsArgs struct {
	TemplateID string `json:"template_id" jsonschema_description:"File id of the template"`
	VersionID  string `json:"template_version_id,omitempty"`
	Marker     string `json:"marker,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type docgenJobsArgs struct {
	TemplateID string `json:"template_id" jsonschema_description:"File id of the template"`
	Marker     string `json:"marker,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

type docgenBatchArgs struct {
	TemplateID          string           `json:"template_id" jsonschema_description:"File id of the template"`
	DestinationFolderID string           `json:"destination_folder_id"`
	OutputType          string           `json:"output_type,omitempty" jsonschema:"enum=pdf,enum=docx"`
	Documents           []map[string]any `json:"documents" jsonschema_description:"One entry per document with generated_file_name and user_input"`
}

type docgenJobArgs struct {
	JobID string `json:"job_id"`
}

func docgenTools() []*Tool {
	return []*Tool{
		fileOp("DocGenTemplateCreate", "Mark a file as a Doc Gen template.", toolkit.DocGenTemplateCreate),
		define("DocGenTemplateList", "List Doc Gen templates.",
			func(ctx context.Context, client *box.Client, a docgenPageArgs) (map[string]any, error) {
				return toolkit.DocGenTemplateList(ctx, client, a.Marker, a.Limit)
			}),
		define("DocGenTemplateDelete", "Unmark a Doc Gen template.",
			func(ctx context.Context, client *box.Client, a docgenTemplateArgs) (map[string]any, error) {
				return toolkit.DocGenTemplateDelete(ctx, client, a.TemplateID)
			}),
		define("DocGenTemplateGet", "Get a Doc Gen template.",
			func(ctx context.Context, client *box.Client, a docgenTemplateArgs) (map[string]any, error) {
				return toolkit.DocGenTemplateGet(ctx, client, a.TemplateID)
			}),
		define("DocGenTemplateListTags", "List the tags in a Doc Gen template.",
			func(ctx context.Context, client *box.Client, a docgenTagsArgs) (map[string]any, error) {
				return toolkit.DocGenTemplateListTags(ctx, client, a.TemplateID, a.VersionID, a.Marker, a.Limit)
			}),
		define("DocGenTemplateListJobs", "List the jobs that used a Doc Gen template.",
			func(ctx context.Context, client *box.Client, a docgenJobsArgs) (map[string]any, error) {
				return toolkit.DocGenTemplateListJobs(ctx, client, a.TemplateID, a.Marker, a.Limit)
			}),
		define("DocGenBatchCreate", "Generate documents from a Doc Gen template.",
			func(ctx context.Context, client *box.Client, a docgenBatchArgs) (map[string]any, error) {
				return toolkit.DocGenBatchCreate(ctx, client, a.TemplateID, a.DestinationFolderID,
					a.OutputType, a.Documents)
			}),
		define("DocGenJobGet", "Get a Doc Gen job.",
			func(ctx context.Context, client *box.Client, a docgenJobArgs) (map[string]any, error) {
				return toolkit.DocGenJobGet(ctx, client, a.JobID)
			}),
	}
}
