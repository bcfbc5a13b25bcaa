package box

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ScopeEnterprise is the metadata scope of enterprise templates.
const ScopeEnterprise = "enterprise"

const jsonPatchContentType = "application/json-patch+json"

// MetadataOption is an option of an enum or multiSelect field.
type MetadataOption struct {
	ID  string `json:"id,omitempty"`
	Key string `json:"key"`
}

// MetadataField is a field of a metadata template.
type MetadataField struct {
	ID          string           `json:"id,omitempty"`
	Type        string           `json:"type"`
	Key         string           `json:"key"`
	DisplayName string           `json:"displayName"`
	Description string           `json:"description,omitempty"`
	Hidden      bool             `json:"hidden,omitempty"`
	Options     []MetadataOption `json:"options,omitempty"`

	// taxonomy fields
	TaxonomyKey  string                `json:"taxonomyKey,omitempty"`
	Namespace    string                `json:"namespace,omitempty"`
	OptionsRules *MetadataOptionsRules `json:"optionsRules,omitempty"`
}

// MetadataOptionsRules limits which levels of a taxonomy can be selected.
type MetadataOptionsRules struct {
	MultiSelect      bool  `json:"multiSelect,omitempty"`
	SelectableLevels []int `json:"selectableLevels,omitempty"`
}

// MetadataTemplate is a metadata template definition.
type MetadataTemplate struct {
	Raw

	ID                     string          `json:"id,omitempty"`
	Type                   string          `json:"type,omitempty"`
	Scope                  string          `json:"scope"`
	TemplateKey            string          `json:"templateKey,omitempty"`
	DisplayName            string          `json:"displayName"`
	Hidden                 bool            `json:"hidden"`
	Fields                 []MetadataField `json:"fields,omitempty"`
	CopyInstanceOnItemCopy bool            `json:"copyInstanceOnItemCopy"`
}

// Metadata is a metadata instance. Template fields sit next to the
// $-prefixed system keys.
type Metadata map[string]any

// CreateMetadataTemplate creates a template. Scope must be set on tmpl.
func (c *Client) CreateMetadataTemplate(ctx context.Context, tmpl MetadataTemplate) (*MetadataTemplate, error) {
	var out MetadataTemplate
	if err := c.Post(ctx, "/metadata_templates/schema", nil, tmpl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEnterpriseMetadataTemplates returns a page of the enterprise's
// templates.
func (c *Client) ListEnterpriseMetadataTemplates(
	ctx context.Context, marker string, limit int,
) (*Page[MetadataTemplate], error) {
	var page Page[MetadataTemplate]
	if err := c.Get(ctx, "/metadata_templates/enterprise", pageQuery(nil, marker, limit), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListMetadataTemplatesByInstanceID finds the template of a metadata
// instance.
func (c *Client) ListMetadataTemplatesByInstanceID(
	ctx context.Context, instanceID string,
) (*Page[MetadataTemplate], error) {
	var page Page[MetadataTemplate]
	q := url.Values{"metadata_instance_id": {instanceID}}
	if err := c.Get(ctx, "/metadata_templates", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func templatePath(scope, key string) string {
	return fmt.Sprintf("/metadata_templates/%s/%s/schema", url.PathEscape(scope), url.PathEscape(key))
}

// GetMetadataTemplate returns a template by scope and key.
func (c *Client) GetMetadataTemplate(ctx context.Context, scope, key string) (*MetadataTemplate, error) {
	var out MetadataTemplate
	if err := c.Get(ctx, templatePath(scope, key), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMetadataTemplateByID returns a template by id.
func (c *Client) GetMetadataTemplateByID(ctx context.Context, templateID string) (*MetadataTemplate, error) {
	var out MetadataTemplate
	if err := c.Get(ctx, "/metadata_templates/"+url.PathEscape(templateID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMetadataTemplate applies template operations such as addField or
// editTemplate.
func (c *Client) UpdateMetadataTemplate(
	ctx context.Context, scope, key string, ops []map[string]any,
) (*MetadataTemplate, error) {
	var out MetadataTemplate
	_, err := c.Do(ctx, &Request{
		Method:      http.MethodPut,
		Path:        templatePath(scope, key),
		Body:        ops,
		ContentType: jsonPatchContentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMetadataTemplate deletes a template and every instance of it.
func (c *Client) DeleteMetadataTemplate(ctx context.Context, scope, key string) error {
	return c.Delete(ctx, templatePath(scope, key), nil)
}

func fileMetadataPath(fileID, scope, key string) string {
	return fmt.Sprintf("/files/%s/metadata/%s/%s",
		url.PathEscape(fileID), url.PathEscape(scope), url.PathEscape(key))
}

// CreateFileMetadata applies a template instance to a file.
func (c *Client) CreateFileMetadata(
	ctx context.Context, fileID, scope, key string, data map[string]any,
) (Metadata, error) {
	var out Metadata
	if err := c.Post(ctx, fileMetadataPath(fileID, scope, key), nil, data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFileMetadata returns a template instance on a file.
func (c *Client) GetFileMetadata(ctx context.Context, fileID, scope, key string) (Metadata, error) {
	var out Metadata
	if err := c.Get(ctx, fileMetadataPath(fileID, scope, key), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFileMetadata applies JSON Patch operations to a template
// instance.
func (c *Client) UpdateFileMetadata(
	ctx context.Context, fileID, scope, key string, ops []map[string]any,
) (Metadata, error) {
	var out Metadata
	_, err := c.Do(ctx, &Request{
		Method:      http.MethodPut,
		Path:        fileMetadataPath(fileID, scope, key),
		Body:        ops,
		ContentType: jsonPatchContentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteFileMetadata removes a template instance from a file.
func (c *Client) DeleteFileMetadata(ctx context.Context, fileID, scope, key string) error {
	return c.Delete(ctx, fileMetadataPath(fileID, scope, key), nil)
}
