package toolkit

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/mapstructure"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

const (
	// MaxExtractFiles is one more than the number of files a single
	// extraction accepts.
	MaxExtractFiles = 20

	// MaxAskFiles is the number of files a multiple item question accepts.
	MaxAskFiles = 25
)

var (
	errNoFiles      = errors.New("At least one file ID is required")
	errTooManyFiles = errors.New("No more than 20 files can be processed at once")
)

const noAIResponse = "No response from Box AI"

func fileItems(fileIDs []string) []box.AIItem {
	items := make([]box.AIItem, 0, len(fileIDs))
	for _, id := range fileIDs {
		items = append(items, box.AIItem{ID: id, Type: "file"})
	}
	return items
}

// checkExtractFiles enforces 1..19 files per extraction.
func checkExtractFiles(op string, fileIDs []string) error {
	switch {
	case len(fileIDs) == 0:
		return invalid(op, errNoFiles)
	case len(fileIDs) >= MaxExtractFiles:
		return invalid(op, errTooManyFiles)
	}
	if err := validation.Validate(fileIDs, validation.Each(validation.Required)); err != nil {
		return invalid(op, fmt.Errorf("file_ids: %w", err))
	}
	return nil
}

func aiResult(client *box.Client, op string, resp *box.AIResponse, err error) (map[string]any, error) {
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if resp == nil {
		return message(noAIResponse), nil
	}
	return toMap(resp)
}

// AIAskFileSingle asks Box AI a question about one file. An empty agentID
// uses the default agent.
func AIAskFileSingle(
	ctx context.Context, client *box.Client, fileID, prompt, agentID string,
) (map[string]any, error) {
	const op = "AIAskFileSingle"
	if err := required(op, map[string]any{"file_id": fileID, "prompt": prompt}); err != nil {
		return nil, err
	}

	resp, err := client.AIAsk(ctx, box.AIAskRequest{
		Mode:    box.AIModeSingleItemQA,
		Prompt:  prompt,
		Items:   fileItems([]string{fileID}),
		AIAgent: box.AgentReference(agentID),
	})
	return aiResult(client, op, resp, err)
}

// AIAskFileMulti asks Box AI a question about several files at once.
func AIAskFileMulti(
	ctx context.Context, client *box.Client, fileIDs []string, prompt, agentID string,
) (map[string]any, error) {
	const op = "AIAskFileMulti"
	if err := required(op, map[string]any{"file_ids": fileIDs, "prompt": prompt}); err != nil {
		return nil, err
	}
	if len(fileIDs) > MaxAskFiles {
		return nil, invalid(op, fmt.Errorf("no more than %d files can be asked about at once", MaxAskFiles))
	}

	resp, err := client.AIAsk(ctx, box.AIAskRequest{
		Mode:    box.AIModeMultipleItemQA,
		Prompt:  prompt,
		Items:   fileItems(fileIDs),
		AIAgent: box.AgentReference(agentID),
	})
	return aiResult(client, op, resp, err)
}

// AIAskHub asks Box AI a question about the content of a hub.
func AIAskHub(
	ctx context.Context, client *box.Client, hubID, prompt, agentID string,
) (map[string]any, error) {
	const op = "AIAskHub"
	if err := required(op, map[string]any{"hub_id": hubID, "prompt": prompt}); err != nil {
		return nil, err
	}

	resp, err := client.AIAsk(ctx, box.AIAskRequest{
		Mode:    box.AIModeSingleItemQA,
		Prompt:  prompt,
		Items:   []box.AIItem{{ID: hubID, Type: "hubs"}},
		AIAgent: box.AgentReference(agentID),
	})
	return aiResult(client, op, resp, err)
}

// AIExtractFreeform extracts data described by prompt from the files.
func AIExtractFreeform(
	ctx context.Context, client *box.Client, fileIDs []string, prompt, agentID string,
) (map[string]any, error) {
	const op = "AIExtractFreeform"
	if err := checkExtractFiles(op, fileIDs); err != nil {
		return nil, err
	}
	if err := required(op, map[string]any{"prompt": prompt}); err != nil {
		return nil, err
	}

	resp, err := client.AIExtract(ctx, box.AIExtractRequest{
		Prompt:  prompt,
		Items:   fileItems(fileIDs),
		AIAgent: box.AgentReference(agentID),
	})
	return aiResult(client, op, resp, err)
}

// AIExtractStructuredUsingFields extracts the listed fields from the
// files. Fields are free-form maps with key, type, displayName,
// description, prompt and options.
func AIExtractStructuredUsingFields(
	ctx context.Context, client *box.Client, fileIDs []string, fields []map[string]any, agentID string,
) (map[string]any, error) {
	const op = "AIExtractStructuredUsingFields"
	if err := checkExtractFiles(op, fileIDs); err != nil {
		return nil, err
	}
	if err := required(op, map[string]any{"fields": fields}); err != nil {
		return nil, err
	}

	var defs []box.AIExtractField
	if err := mapstructure.WeakDecode(fields, &defs); err != nil {
		return nil, invalid(op, err)
	}
	for i := range defs {
		if err := validation.Validate(defs[i].Key, validation.Required); err != nil {
			return nil, invalid(op, fmt.Errorf("field %d: key: %w", i, err))
		}
	}

	resp, err := client.AIExtractStructured(ctx, box.AIExtractStructuredRequest{
		Items:   fileItems(fileIDs),
		Fields:  defs,
		AIAgent: box.AgentReference(agentID),
	})
	return aiResult(client, op, resp, err)
}

// AIExtractStructuredUsingTemplate extracts the fields of an enterprise
// metadata template from the files.
func AIExtractStructuredUsingTemplate(
	ctx context.Context, client *box.Client, fileIDs []string, templateKey, agentID string,
) (map[string]any, error) {
	const op = "AIExtractStructuredUsingTemplate"
	if err := checkExtractFiles(op, fileIDs); err != nil {
		return nil, err
	}
	if err := required(op, map[string]any{"template_key": templateKey}); err != nil {
		return nil, err
	}

	resp, err := client.AIExtractStructured(ctx, box.AIExtractStructuredRequest{
		Items: fileItems(fileIDs),
		MetadataTemplate: &box.AIMetadataTemplateRef{
			TemplateKey: templateKey,
			Type:        "metadata_template",
			Scope:       box.ScopeEnterprise,
		},
		AIAgent: box.AgentReference(agentID),
	})
	return aiResult(client, op, resp, err)
}

// AIAgentsList lists the AI agents available for mode, which is one of
// ask, extract or text_gen. An empty mode lists every agent.
func AIAgentsList(ctx context.Context, client *box.Client, mode string, limit int) (map[string]any, error) {
	const op = "AIAgentsList"
	if err := validation.Validate(mode, validation.In("ask", "extract", "text_gen")); err != nil {
		return nil, invalid(op, fmt.Errorf("mode: %w", err))
	}

	page, err := client.ListAIAgents(ctx, box.ListAIAgentsOptions{Mode: mode, Limit: limit})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(page.Entries) == 0 {
		return message("No AI agents found."), nil
	}
	return map[string]any{"ai_agents": page.Entries}, nil
}
