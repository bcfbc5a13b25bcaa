package toolkit

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// DocGenTemplateCreate marks a file as a Doc Gen template.
func DocGenTemplateCreate(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "DocGenTemplateCreate"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	tmpl, err := client.CreateDocGenTemplate(ctx, fileID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(tmpl)
}

// DocGenTemplateList returns one page of Doc Gen templates.
func DocGenTemplateList(ctx context.Context, client *box.Client, marker string, limit int) (map[string]any, error) {
	const op = "DocGenTemplateList"
	page, err := client.ListDocGenTemplates(ctx, marker, limit)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(page.Entries) == 0 {
		return message("No templates found."), nil
	}

	result, err := wrapList("templates", page.Entries)
	if err != nil {
		return nil, err
	}
	if page.NextMarker != "" {
		result["next_marker"] = page.NextMarker
	}
	return result, nil
}

// DocGenTemplateDelete unmarks a Doc Gen template. The file is kept.
func DocGenTemplateDelete(ctx context.Context, client *box.Client, templateID string) (map[string]any, error) {
	const op = "DocGenTemplateDelete"
	if err := required(op, map[string]any{"template_id": templateID}); err != nil {
		return nil, err
	}

	if err := client.DeleteDocGenTemplate(ctx, templateID); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Template %s deleted successfully.", templateID), nil
}

// DocGenTemplateGet returns a Doc Gen template.
func DocGenTemplateGet(ctx context.Context, client *box.Client, templateID string) (map[string]any, error) {
	const op = "DocGenTemplateGet"
	if err := required(op, map[string]any{"template_id": templateID}); err != nil {
		return nil, err
	}

	tmpl, err := client.GetDocGenTemplate(ctx, templateID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(tmpl)
}

// DocGenTemplateListTags returns one page of the tags found in a
// template. An empty versionID uses the current version.
func DocGenTemplateListTags(
	ctx context.Context, client *box.Client, templateID, versionID, marker string, limit int,
) (map[string]any, error) {
	const op = "DocGenTemplateListTags"
	if err := required(op, map[string]any{"template_id": templateID}); err != nil {
		return nil, err
	}

	page, err := client.ListDocGenTemplateTags(ctx, templateID, versionID, marker, limit)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(page)
}

// DocGenTemplateListJobs returns one page of the jobs that used a
// template.
func DocGenTemplateListJobs(
	ctx context.Context, client *box.Client, templateID, marker string, limit int,
) (map[string]any, error) {
	const op = "DocGenTemplateListJobs"
	if err := required(op, map[string]any{"template_id": templateID}); err != nil {
		return nil, err
	}

	page, err := client.ListDocGenTemplateJobs(ctx, templateID, marker, limit)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(page)
}

// DocGenBatchCreate renders one document per entry of documents into the
// destination folder. Each entry carries generated_file_name and
// user_input. outputType defaults to pdf.
func DocGenBatchCreate(
	ctx context.Context, client *box.Client,
	templateID, destinationFolderID, outputType string, documents []map[string]any,
) (map[string]any, error) {
	const op = "DocGenBatchCreate"
	if err := required(op, map[string]any{
		"template_id":           templateID,
		"destination_folder_id": destinationFolderID,
		"documents":             documents,
	}); err != nil {
		return nil, err
	}
	if outputType == "" {
		outputType = "pdf"
	}
	if err := validation.Validate(outputType, validation.In("pdf", "docx")); err != nil {
		return nil, invalid(op, fmt.Errorf("output_type: %w", err))
	}

	var docs []box.DocGenDocument
	if err := mapstructure.WeakDecode(documents, &docs); err != nil {
		return nil, invalid(op, err)
	}
	for i := range docs {
		if err := validation.Validate(docs[i].GeneratedFileName, validation.Required); err != nil {
			return nil, invalid(op, fmt.Errorf("document %d: generated_file_name: %w", i, err))
		}
	}

	batch, err := client.CreateDocGenBatch(ctx, box.DocGenBatchRequest{
		File:                   box.ItemMini{Type: "file", ID: templateID},
		InputSource:            "api",
		DestinationFolder:      box.ItemMini{Type: "folder", ID: destinationFolderID},
		OutputType:             outputType,
		DocumentGenerationData: docs,
	})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("batch", batch)
}

// DocGenJobGet returns a Doc Gen job.
func DocGenJobGet(ctx context.Context, client *box.Client, jobID string) (map[string]any, error) {
	const op = "DocGenJobGet"
	if err := required(op, map[string]any{"job_id": jobID}); err != nil {
		return nil, err
	}

	job, err := client.GetDocGenJob(ctx, jobID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(job)
}
