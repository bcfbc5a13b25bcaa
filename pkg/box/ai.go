package box

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AI ask modes.
const (
	AIModeSingleItemQA   = "single_item_qa"
	AIModeMultipleItemQA = "multiple_item_qa"
)

// AIItem is an item passed to Box AI.
type AIItem struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// AIAgentReference selects a configured AI agent by id.
type AIAgentReference struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// AgentReference returns the reference for agentID, or nil for the
// default agent.
func AgentReference(agentID string) *AIAgentReference {
	if agentID == "" {
		return nil
	}
	return &AIAgentReference{Type: "ai_agent_id", ID: agentID}
}

// AIAskRequest is the body of an ask call.
type AIAskRequest struct {
	Mode             string            `json:"mode"`
	Prompt           string            `json:"prompt"`
	Items            []AIItem          `json:"items"`
	IncludeCitations bool              `json:"include_citations,omitempty"`
	AIAgent          *AIAgentReference `json:"ai_agent,omitempty"`
}

// AIExtractRequest is the body of a freeform extract call.
type AIExtractRequest struct {
	Prompt  string            `json:"prompt"`
	Items   []AIItem          `json:"items"`
	AIAgent *AIAgentReference `json:"ai_agent,omitempty"`
}

// AIExtractField describes a field for structured extraction.
type AIExtractField struct {
	Key         string           `json:"key" mapstructure:"key"`
	Type        string           `json:"type,omitempty" mapstructure:"type"`
	DisplayName string           `json:"displayName,omitempty" mapstructure:"displayName"`
	Description string           `json:"description,omitempty" mapstructure:"description"`
	Prompt      string           `json:"prompt,omitempty" mapstructure:"prompt"`
	Options     []MetadataOption `json:"options,omitempty" mapstructure:"options"`
}

// AIMetadataTemplateRef selects a metadata template for structured
// extraction.
type AIMetadataTemplateRef struct {
	TemplateKey string `json:"template_key"`
	Type        string `json:"type"`
	Scope       string `json:"scope"`
}

// AIExtractStructuredRequest is the body of a structured extract call.
// Exactly one of MetadataTemplate and Fields is set.
type AIExtractStructuredRequest struct {
	Items            []AIItem               `json:"items"`
	MetadataTemplate *AIMetadataTemplateRef `json:"metadata_template,omitempty"`
	Fields           []AIExtractField       `json:"fields,omitempty"`
	AIAgent          *AIAgentReference      `json:"ai_agent,omitempty"`
}

// AIResponse is the answer to an ask or extract call. Answer is a string
// for ask and freeform extract, and an object for structured extract.
type AIResponse struct {
	Raw

	Answer           any              `json:"answer"`
	CreatedAt        *time.Time       `json:"created_at,omitempty"`
	CompletionReason string           `json:"completion_reason,omitempty"`
	Citations        []map[string]any `json:"citations,omitempty"`
	Confidence       map[string]any   `json:"confidence_score,omitempty"`
	AIAgentInfo      map[string]any   `json:"ai_agent_info,omitempty"`
}

// AIAsk asks a question about one or more items. A nil response with nil
// error means Box returned no answer.
func (c *Client) AIAsk(ctx context.Context, req AIAskRequest) (*AIResponse, error) {
	return c.aiCall(ctx, "/ai/ask", req)
}

// AIExtract extracts freeform data from items using a prompt.
func (c *Client) AIExtract(ctx context.Context, req AIExtractRequest) (*AIResponse, error) {
	return c.aiCall(ctx, "/ai/extract", req)
}

// AIExtractStructured extracts fields defined by a template or a field
// list.
func (c *Client) AIExtractStructured(ctx context.Context, req AIExtractStructuredRequest) (*AIResponse, error) {
	return c.aiCall(ctx, "/ai/extract_structured", req)
}

func (c *Client) aiCall(ctx context.Context, path string, body any) (*AIResponse, error) {
	var out AIResponse
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, &out)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}
	return &out, nil
}

// ListAIAgentsOptions filters the AI agent listing.
type ListAIAgentsOptions struct {
	Mode   string
	Marker string
	Limit  int
}

// ListAIAgents returns the AI agents available to the enterprise.
func (c *Client) ListAIAgents(ctx context.Context, opts ListAIAgentsOptions) (*Page[map[string]any], error) {
	q := pageQuery(url.Values{}, opts.Marker, opts.Limit)
	if opts.Mode != "" {
		q.Set("mode", opts.Mode)
	}
	q.Set("include_box_default", strconv.FormatBool(true))

	var page Page[map[string]any]
	_, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/ai_agents",
		Query:  q,
		Header: versionHeader(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
