package box

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// DocGenTemplate is a file marked as a Doc Gen template.
type DocGenTemplate struct {
	Raw

	File     *ItemMini `json:"file,omitempty"`
	FileName string    `json:"file_name,omitempty"`
}

// DocGenTag is a tag found in a template.
type DocGenTag struct {
	Raw

	TagContent string   `json:"tag_content"`
	TagType    string   `json:"tag_type"`
	JSONPaths  []string `json:"json_paths,omitempty"`
}

// DocGenJob is a single document generation job.
type DocGenJob struct {
	Raw

	Type                string     `json:"type"`
	ID                  string     `json:"id"`
	Batch               *ItemMini  `json:"batch,omitempty"`
	TemplateFile        *ItemMini  `json:"template_file,omitempty"`
	TemplateFileVersion *ItemMini  `json:"template_file_version,omitempty"`
	OutputFile          *ItemMini  `json:"output_file,omitempty"`
	OutputFileVersion   *ItemMini  `json:"output_file_version,omitempty"`
	Status              string     `json:"status,omitempty"`
	OutputType          string     `json:"output_type,omitempty"`
	CreatedBy           *UserMini  `json:"created_by,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
}

// DocGenDocument is one document to render in a batch.
type DocGenDocument struct {
	GeneratedFileName string         `json:"generated_file_name" mapstructure:"generated_file_name"`
	UserInput         map[string]any `json:"user_input" mapstructure:"user_input"`
}

// DocGenBatchRequest renders a template once per document.
type DocGenBatchRequest struct {
	File                   ItemMini         `json:"file"`
	InputSource            string           `json:"input_source"`
	DestinationFolder      ItemMini         `json:"destination_folder"`
	OutputType             string           `json:"output_type"`
	DocumentGenerationData []DocGenDocument `json:"document_generation_data"`
}

func (c *Client) docgenRequest(ctx context.Context, method, path string, q url.Values, body, result any) error {
	_, err := c.Do(ctx, &Request{
		Method: method,
		Path:   path,
		Query:  q,
		Body:   body,
		Header: versionHeader(),
	}, result)
	return err
}

// CreateDocGenTemplate marks a file as a template.
func (c *Client) CreateDocGenTemplate(ctx context.Context, fileID string) (*DocGenTemplate, error) {
	body := map[string]any{"file": ItemMini{Type: "file", ID: fileID}}

	var tmpl DocGenTemplate
	if err := c.docgenRequest(ctx, http.MethodPost, "/docgen_templates", nil, body, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ListDocGenTemplates returns one page of templates.
func (c *Client) ListDocGenTemplates(ctx context.Context, marker string, limit int) (*Page[DocGenTemplate], error) {
	var page Page[DocGenTemplate]
	q := pageQuery(nil, marker, limit)
	if err := c.docgenRequest(ctx, http.MethodGet, "/docgen_templates", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDocGenTemplate returns a template by its file id.
func (c *Client) GetDocGenTemplate(ctx context.Context, templateID string) (*DocGenTemplate, error) {
	var tmpl DocGenTemplate
	path := "/docgen_templates/" + url.PathEscape(templateID)
	if err := c.docgenRequest(ctx, http.MethodGet, path, nil, nil, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteDocGenTemplate unmarks a template. The file itself is kept.
func (c *Client) DeleteDocGenTemplate(ctx context.Context, templateID string) error {
	path := "/docgen_templates/" + url.PathEscape(templateID)
	return c.docgenRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListDocGenTemplateTags returns the tags of a template version.
func (c *Client) ListDocGenTemplateTags(
	ctx context.Context, templateID, versionID, marker string, limit int,
) (*Page[DocGenTag], error) {
	q := pageQuery(nil, marker, limit)
	if versionID != "" {
		q.Set("template_version_id", versionID)
	}

	var page Page[DocGenTag]
	path := "/docgen_templates/" + url.PathEscape(templateID) + "/tags"
	if err := c.docgenRequest(ctx, http.MethodGet, path, q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListDocGenTemplateJobs returns the jobs that rendered a template.
func (c *Client) ListDocGenTemplateJobs(
	ctx context.Context, templateID, marker string, limit int,
) (*Page[DocGenJob], error) {
	var page Page[DocGenJob]
	path := "/docgen_template_jobs/" + url.PathEscape(templateID)
	if err := c.docgenRequest(ctx, http.MethodGet, path, pageQuery(nil, marker, limit), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateDocGenBatch starts rendering documents from a template.
func (c *Client) CreateDocGenBatch(ctx context.Context, req DocGenBatchRequest) (*ItemMini, error) {
	var batch ItemMini
	if err := c.docgenRequest(ctx, http.MethodPost, "/docgen_batches", nil, req, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// GetDocGenJob returns a generation job.
func (c *Client) GetDocGenJob(ctx context.Context, jobID string) (*DocGenJob, error) {
	var job DocGenJob
	path := "/docgen_jobs/" + url.PathEscape(jobID)
	if err := c.docgenRequest(ctx, http.MethodGet, path, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
