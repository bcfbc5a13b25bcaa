package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type aiAskFileArgs struct {
	FileID  string `json:"file_id" jsonschema_description:"ID of the Box file"`
	Prompt  string `json:"prompt"`
	AgentID string `json:"ai_agent_id,omitempty" jsonschema_description:"Uses the default agent when empty"`
}

type aiAskFilesArgs struct {
	FileIDs []string `json:"file_ids" jsonschema:"minItems=1,maxItems=25"`
	Prompt  string   `json:"prompt"`
	AgentID string   `json:"ai_agent_id,omitempty" jsonschema_description:"Uses the default agent when empty"`
}

type aiAskHubArgs struct {
	HubID   string `json:"hub_id"`
	Prompt  string `json:"prompt"`
	AgentID string `json:"ai_agent_id,omitempty" jsonschema_description:"Uses the default agent when empty"`
}

type aiExtractArgs struct {
	FileIDs []string `json:"file_ids" jsonschema:"minItems=1,maxItems=19"`
	Prompt  string   `json:"prompt" jsonschema_description:"What to extract"`
	AgentID string   `json:"ai_agent_id,omitempty" jsonschema_description:"Uses the default agent when empty"`
}

type aiExtractFieldsArgs struct {
	FileIDs []string         `json:"file_ids" jsonschema:"minItems=1,maxItems=19"`
	Fields  []map[string]any `json:"fields" jsonschema_description:"Fields with key, type, displayName, description, prompt and options"`
	AgentID string           `json:"ai_agent_id,omitempty" jsonschema_description:"Uses the default agent when empty"`
}

type aiExtractTemplateArgs struct {
	FileIDs     []string `json:"file_ids" jsonschema:"minItems=1,maxItems=19"`
	TemplateKey string   `json:"template_key" jsonschema_description:"Key of an enterprise metadata template"`
	AgentID     string   `json:"ai_agent_id,omitempty" jsonschema_description:"Uses the default agent when empty"`
}

type aiAgentsArgs struct {
	Mode  string `json:"mode,omitempty" jsonschema:"enum=ask,enum=extract,enum=text_gen"`
	Limit int    `json:"limit,omitempty"`
}

func aiTools() []*Tool {
	return []*Tool{
		define("AIAskFileSingle", "Ask Box AI a question about a file.",
			func(ctx context.Context, client *box.Client, a aiAskFileArgs) (map[string]any, error) {
				return toolkit.AIAskFileSingle(ctx, client, a.FileID, a.Prompt, a.AgentID)
			}),
		define("AIAskFileMulti", "Ask Box AI a question about several files.",
			func(ctx context.Context, client *box.Client, a aiAskFilesArgs) (map[string]any, error) {
				return toolkit.AIAskFileMulti(ctx, client, a.FileIDs, a.Prompt, a.AgentID)
			}),
		define("AIAskHub", "Ask Box AI a question about the content of a hub.",
			func(ctx context.Context, client *box.Client, a aiAskHubArgs) (map[string]any, error) {
				return toolkit.AIAskHub(ctx, client, a.HubID, a.Prompt, a.AgentID)
			}),
		define("AIExtractFreeform", "Extract data described by a prompt from files.",
			func(ctx context.Context, client *box.Client, a aiExtractArgs) (map[string]any, error) {
				return toolkit.AIExtractFreeform(ctx, client, a.FileIDs, a.Prompt, a.AgentID)
			}),
		define("AIExtractStructuredUsingFields", "Extract a list of fields from files.",
			func(ctx context.Context, client *box.Client, a aiExtractFieldsArgs) (map[string]any, error) {
				return toolkit.AIExtractStructuredUsingFields(ctx, client, a.FileIDs, a.Fields, a.AgentID)
			}),
		define("AIExtractStructuredUsingTemplate", "Extract the fields of a metadata template from files.",
			func(ctx context.Context, client *box.Client, a aiExtractTemplateArgs) (map[string]any, error) {
				return toolkit.AIExtractStructuredUsingTemplate(ctx, client, a.FileIDs, a.TemplateKey, a.AgentID)
			}),
		define("AIAgentsList", "List the available AI agents.",
			func(ctx context.Context, client *box.Client, a aiAgentsArgs) (map[string]any, error) {
				return toolkit.AIAgentsList(ctx, client, a.Mode, a.Limit)
			}),
	}
}
