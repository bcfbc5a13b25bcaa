package box

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Hub is a Box Hub.
type Hub struct {
	Raw

	Type                                  string     `json:"type"`
	ID                                    string     `json:"id"`
	Title                                 string     `json:"title,omitempty"`
	Description                           string     `json:"description,omitempty"`
	CreatedAt                             *time.Time `json:"created_at,omitempty"`
	UpdatedAt                             *time.Time `json:"updated_at,omitempty"`
	CreatedBy                             *UserMini  `json:"created_by,omitempty"`
	UpdatedBy                             *UserMini  `json:"updated_by,omitempty"`
	ViewCount                             int        `json:"view_count,omitempty"`
	IsAIEnabled                           *bool      `json:"is_ai_enabled,omitempty"`
	IsCollaborationRestrictedToEnterprise *bool      `json:"is_collaboration_restricted_to_enterprise,omitempty"`
	CanNonOwnersInvite                    *bool      `json:"can_non_owners_invite,omitempty"`
	CanSharedLinkBeCreated                *bool      `json:"can_shared_link_be_created,omitempty"`
}

// HubCollaboration grants a user or group access to a hub.
type HubCollaboration struct {
	Raw

	Type         string    `json:"type"`
	ID           string    `json:"id"`
	Hub          *ItemMini `json:"hub,omitempty"`
	AccessibleBy *UserMini `json:"accessible_by,omitempty"`
	Role         string    `json:"role,omitempty"`
	Status       string    `json:"status,omitempty"`
}

// HubItemOperation adds or removes one item in ManageHubItems.
type HubItemOperation struct {
	Action string   `json:"action"`
	Item   ItemMini `json:"item"`
}

// HubListOptions filters ListHubs.
type HubListOptions struct {
	Query     string
	Scope     string
	Sort      string
	Direction string
	Marker    string
	Limit     int
}

func (c *Client) hubRequest(ctx context.Context, method, path string, q url.Values, body, result any) error {
	_, err := c.Do(ctx, &Request{
		Method: method,
		Path:   path,
		Query:  q,
		Body:   body,
		Header: versionHeader(),
	}, result)
	return err
}

// CreateHub creates a hub.
func (c *Client) CreateHub(ctx context.Context, title, description string) (*Hub, error) {
	body := map[string]any{"title": title}
	if description != "" {
		body["description"] = description
	}

	var hub Hub
	if err := c.hubRequest(ctx, http.MethodPost, "/hubs", nil, body, &hub); err != nil {
		return nil, err
	}
	return &hub, nil
}

// GetHub returns a hub.
func (c *Client) GetHub(ctx context.Context, hubID string) (*Hub, error) {
	var hub Hub
	if err := c.hubRequest(ctx, http.MethodGet, "/hubs/"+url.PathEscape(hubID), nil, nil, &hub); err != nil {
		return nil, err
	}
	return &hub, nil
}

// UpdateHub changes hub attributes.
func (c *Client) UpdateHub(ctx context.Context, hubID string, body map[string]any) (*Hub, error) {
	var hub Hub
	if err := c.hubRequest(ctx, http.MethodPut, "/hubs/"+url.PathEscape(hubID), nil, body, &hub); err != nil {
		return nil, err
	}
	return &hub, nil
}

// DeleteHub deletes a hub.
func (c *Client) DeleteHub(ctx context.Context, hubID string) error {
	return c.hubRequest(ctx, http.MethodDelete, "/hubs/"+url.PathEscape(hubID), nil, nil, nil)
}

// CopyHub copies a hub, optionally with a new title and description.
func (c *Client) CopyHub(ctx context.Context, hubID, title, description string) (*Hub, error) {
	body := map[string]any{}
	if title != "" {
		body["title"] = title
	}
	if description != "" {
		body["description"] = description
	}

	var hub Hub
	path := fmt.Sprintf("/hubs/%s/copy", url.PathEscape(hubID))
	if err := c.hubRequest(ctx, http.MethodPost, path, nil, body, &hub); err != nil {
		return nil, err
	}
	return &hub, nil
}

// ListHubs returns one page of hubs.
func (c *Client) ListHubs(ctx context.Context, opts HubListOptions) (*Page[Hub], error) {
	q := pageQuery(url.Values{}, opts.Marker, opts.Limit)
	for name, v := range map[string]string{
		"query":     opts.Query,
		"scope":     opts.Scope,
		"sort":      opts.Sort,
		"direction": opts.Direction,
	} {
		if v != "" {
			q.Set(name, v)
		}
	}

	var page Page[Hub]
	if err := c.hubRequest(ctx, http.MethodGet, "/hubs", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListHubItems returns one page of the items in a hub.
func (c *Client) ListHubItems(ctx context.Context, hubID, marker string, limit int) (*Page[Item], error) {
	q := pageQuery(url.Values{"hub_id": {hubID}}, marker, limit)

	var page Page[Item]
	if err := c.hubRequest(ctx, http.MethodGet, "/hub_items", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ManageHubItems adds and removes hub items in one call. The result
// reports the status of every operation.
func (c *Client) ManageHubItems(ctx context.Context, hubID string, ops []HubItemOperation) (map[string]any, error) {
	body := map[string]any{"operations": ops}

	var out map[string]any
	path := fmt.Sprintf("/hubs/%s/manage_items", url.PathEscape(hubID))
	if err := c.hubRequest(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListHubCollaborations returns one page of a hub's collaborations.
func (c *Client) ListHubCollaborations(
	ctx context.Context, hubID, marker string, limit int,
) (*Page[HubCollaboration], error) {
	q := pageQuery(url.Values{"hub_id": {hubID}}, marker, limit)

	var page Page[HubCollaboration]
	if err := c.hubRequest(ctx, http.MethodGet, "/hub_collaborations", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateHubCollaboration grants access to a hub. accessibleBy holds the
// type ("user" or "group") and either id or login.
func (c *Client) CreateHubCollaboration(
	ctx context.Context, hubID string, accessibleBy map[string]string, role string,
) (*HubCollaboration, error) {
	body := map[string]any{
		"hub":           map[string]string{"type": "hubs", "id": hubID},
		"accessible_by": accessibleBy,
		"role":          role,
	}

	var collab HubCollaboration
	if err := c.hubRequest(ctx, http.MethodPost, "/hub_collaborations", nil, body, &collab); err != nil {
		return nil, err
	}
	return &collab, nil
}

// GetHubCollaboration returns a hub collaboration.
func (c *Client) GetHubCollaboration(ctx context.Context, collabID string) (*HubCollaboration, error) {
	var collab HubCollaboration
	path := "/hub_collaborations/" + url.PathEscape(collabID)
	if err := c.hubRequest(ctx, http.MethodGet, path, nil, nil, &collab); err != nil {
		return nil, err
	}
	return &collab, nil
}

// UpdateHubCollaboration changes the role of a collaboration.
func (c *Client) UpdateHubCollaboration(ctx context.Context, collabID, role string) (*HubCollaboration, error) {
	var collab HubCollaboration
	path := "/hub_collaborations/" + url.PathEscape(collabID)
	if err := c.hubRequest(ctx, http.MethodPut, path, nil, map[string]any{"role": role}, &collab); err != nil {
		return nil, err
	}
	return &collab, nil
}

// DeleteHubCollaboration removes a collaboration.
func (c *Client) DeleteHubCollaboration(ctx context.Context, collabID string) error {
	path := "/hub_collaborations/" + url.PathEscape(collabID)
	return c.hubRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}
