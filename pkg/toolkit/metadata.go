package toolkit

import (
	"context"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

var metadataFieldTypes = []any{"string", "float", "date", "enum", "multiSelect", "taxonomy"}

// decodeMetadataFields turns free-form field definitions into template
// fields. A missing key is derived from the display name.
func decodeMetadataFields(raw []map[string]any) ([]box.MetadataField, error) {
	fields := make([]box.MetadataField, 0, len(raw))
	for i, m := range raw {
		var field box.MetadataField
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &field,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}

		if field.Key == "" {
			field.Key = strcase.ToLowerCamel(field.DisplayName)
		}

		err = validation.ValidateStruct(&field,
			validation.Field(&field.Type, validation.Required, validation.In(metadataFieldTypes...)),
			validation.Field(&field.DisplayName, validation.Required),
			validation.Field(&field.Key, validation.Required),
			validation.Field(&field.Options, validation.When(
				field.Type == "enum" || field.Type == "multiSelect", validation.Required)),
			validation.Field(&field.TaxonomyKey, validation.When(field.Type == "taxonomy", validation.Required)),
			validation.Field(&field.Namespace, validation.When(field.Type == "taxonomy", validation.Required)),
		)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// MetadataTemplateCreate creates an enterprise metadata template. An
// empty templateKey lets Box derive one from the display name.
func MetadataTemplateCreate(
	ctx context.Context, client *box.Client, displayName, templateKey string, fields []map[string]any,
) (map[string]any, error) {
	const op = "MetadataTemplateCreate"
	if err := required(op, map[string]any{"display_name": displayName}); err != nil {
		return nil, err
	}

	defs, err := decodeMetadataFields(fields)
	if err != nil {
		return nil, invalid(op, err)
	}

	tmpl, err := client.CreateMetadataTemplate(ctx, box.MetadataTemplate{
		Scope:       box.ScopeEnterprise,
		TemplateKey: templateKey,
		DisplayName: displayName,
		Fields:      defs,
	})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(tmpl)
}

// MetadataTemplateList returns one page of the enterprise's templates.
func MetadataTemplateList(
	ctx context.Context, client *box.Client, marker string, limit int,
) (map[string]any, error) {
	const op = "MetadataTemplateList"
	page, err := client.ListEnterpriseMetadataTemplates(ctx, marker, limit)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(page)
}

// MetadataTemplateUpdate applies template operations to an enterprise
// template.
func MetadataTemplateUpdate(
	ctx context.Context, client *box.Client, templateKey string, ops []map[string]any,
) (map[string]any, error) {
	const op = "MetadataTemplateUpdate"
	if err := required(op, map[string]any{"template_key": templateKey, "operations": ops}); err != nil {
		return nil, err
	}

	tmpl, err := client.UpdateMetadataTemplate(ctx, box.ScopeEnterprise, templateKey, ops)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(tmpl)
}

// MetadataTemplateDelete deletes an enterprise template.
func MetadataTemplateDelete(ctx context.Context, client *box.Client, templateKey string) (map[string]any, error) {
	const op = "MetadataTemplateDelete"
	if err := required(op, map[string]any{"template_key": templateKey}); err != nil {
		return nil, err
	}

	if err := client.DeleteMetadataTemplate(ctx, box.ScopeEnterprise, templateKey); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Metadata template %s deleted successfully.", templateKey), nil
}

// MetadataTemplateListByInstanceID returns the template of a metadata
// instance.
func MetadataTemplateListByInstanceID(
	ctx context.Context, client *box.Client, instanceID string,
) (map[string]any, error) {
	const op = "MetadataTemplateListByInstanceID"
	if err := required(op, map[string]any{"metadata_instance_id": instanceID}); err != nil {
		return nil, err
	}

	page, err := client.ListMetadataTemplatesByInstanceID(ctx, instanceID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(page)
}

// MetadataTemplateGetByKey returns an enterprise template by key.
func MetadataTemplateGetByKey(ctx context.Context, client *box.Client, templateKey string) (map[string]any, error) {
	const op = "MetadataTemplateGetByKey"
	if err := required(op, map[string]any{"template_key": templateKey}); err != nil {
		return nil, err
	}

	tmpl, err := client.GetMetadataTemplate(ctx, box.ScopeEnterprise, templateKey)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(tmpl)
}

// MetadataTemplateGetByID returns a template by id.
func MetadataTemplateGetByID(ctx context.Context, client *box.Client, templateID string) (map[string]any, error) {
	const op = "MetadataTemplateGetByID"
	if err := required(op, map[string]any{"template_id": templateID}); err != nil {
		return nil, err
	}

	tmpl, err := client.GetMetadataTemplateByID(ctx, templateID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(tmpl)
}

// MetadataTemplateGetByName scans every enterprise template for one whose
// display name matches, ignoring case.
func MetadataTemplateGetByName(ctx context.Context, client *box.Client, displayName string) (map[string]any, error) {
	const op = "MetadataTemplateGetByName"
	if err := required(op, map[string]any{"display_name": displayName}); err != nil {
		return nil, err
	}

	marker := ""
	for {
		page, err := client.ListEnterpriseMetadataTemplates(ctx, marker, 0)
		if err != nil {
			return nil, apiFailure(client, op, err)
		}
		for i := range page.Entries {
			if tmpl := &page.Entries[i]; strings.EqualFold(tmpl.DisplayName, displayName) {
				return toMap(tmpl)
			}
		}
		if page.NextMarker == "" {
			break
		}
		marker = page.NextMarker
	}
	return message("Template not found"), nil
}

// MetadataSetInstanceOnFile applies an enterprise template to a file.
func MetadataSetInstanceOnFile(
	ctx context.Context, client *box.Client, fileID, templateKey string, metadata map[string]any,
) (map[string]any, error) {
	const op = "MetadataSetInstanceOnFile"
	if err := required(op, map[string]any{
		"file_id":      fileID,
		"template_key": templateKey,
		"metadata":     metadata,
	}); err != nil {
		return nil, err
	}

	instance, err := client.CreateFileMetadata(ctx, fileID, box.ScopeEnterprise, templateKey, metadata)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return instance, nil
}

// MetadataGetInstanceOnFile returns the instance of an enterprise
// template on a file.
func MetadataGetInstanceOnFile(
	ctx context.Context, client *box.Client, fileID, templateKey string,
) (map[string]any, error) {
	const op = "MetadataGetInstanceOnFile"
	if err := required(op, map[string]any{"file_id": fileID, "template_key": templateKey}); err != nil {
		return nil, err
	}

	instance, err := client.GetFileMetadata(ctx, fileID, box.ScopeEnterprise, templateKey)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return instance, nil
}

// MetadataUpdateInstanceOnFile sets the given values on an existing
// instance. With removeNonIncluded every other user value is removed.
func MetadataUpdateInstanceOnFile(
	ctx context.Context, client *box.Client, fileID, templateKey string,
	metadata map[string]any, removeNonIncluded bool,
) (map[string]any, error) {
	const op = "MetadataUpdateInstanceOnFile"
	if err := required(op, map[string]any{
		"file_id":      fileID,
		"template_key": templateKey,
		"metadata":     metadata,
	}); err != nil {
		return nil, err
	}

	current, err := client.GetFileMetadata(ctx, fileID, box.ScopeEnterprise, templateKey)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	instance, err := client.UpdateFileMetadata(ctx, fileID, box.ScopeEnterprise, templateKey,
		metadataPatch(current, metadata, removeNonIncluded))
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return instance, nil
}

// metadataPatch builds the JSON Patch that turns current into next. Keys
// starting with "$" belong to Box and are never touched.
func metadataPatch(current, next map[string]any, removeNonIncluded bool) []map[string]any {
	keys := make([]string, 0, len(next))
	for k := range next {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ops := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, "$") {
			continue
		}
		action := "add"
		if _, ok := current[k]; ok {
			action = "replace"
		}
		ops = append(ops, map[string]any{"op": action, "path": "/" + k, "value": next[k]})
	}

	if removeNonIncluded {
		var stale []string
		for k := range current {
			if _, ok := next[k]; !ok && !strings.HasPrefix(k, "$") {
				stale = append(stale, k)
			}
		}
		sort.Strings(stale)
		for _, k := range stale {
			ops = append(ops, map[string]any{"op": "remove", "path": "/" + k})
		}
	}
	return ops
}

// MetadataDeleteInstanceOnFile removes an enterprise template instance
// from a file.
func MetadataDeleteInstanceOnFile(
	ctx context.Context, client *box.Client, fileID, templateKey string,
) (map[string]any, error) {
	const op = "MetadataDeleteInstanceOnFile"
	if err := required(op, map[string]any{"file_id": fileID, "template_key": templateKey}); err != nil {
		return nil, err
	}

	if err := client.DeleteFileMetadata(ctx, fileID, box.ScopeEnterprise, templateKey); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Metadata instance %s removed from file %s.", templateKey, fileID), nil
}
