package toolkit

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

const (
	// MaxHubPageSize is the largest page Box accepts when listing hubs.
	MaxHubPageSize = 200

	defaultHubItemsLimit = 1000
)

var hubRoles = []any{"editor", "viewer", "co-owner"}

// HubCreate creates a hub.
func HubCreate(ctx context.Context, client *box.Client, title, description string) (map[string]any, error) {
	const op = "HubCreate"
	if err := required(op, map[string]any{"title": title}); err != nil {
		return nil, err
	}

	hub, err := client.CreateHub(ctx, title, description)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(hub)
}

// HubGet returns a hub.
func HubGet(ctx context.Context, client *box.Client, hubID string) (map[string]any, error) {
	const op = "HubGet"
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}

	hub, err := client.GetHub(ctx, hubID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(hub)
}

// HubUpdateOptions lists the hub attributes HubUpdate may change. Empty
// strings and nil flags are left untouched.
type HubUpdateOptions struct {
	Title                                 string
	Description                           string
	IsAIEnabled                           *bool
	IsCollaborationRestrictedToEnterprise *bool
	CanNonOwnersInvite                    *bool
	CanSharedLinkBeCreated                *bool
}

// HubUpdate changes a hub.
func HubUpdate(ctx context.Context, client *box.Client, hubID string, opts HubUpdateOptions) (map[string]any, error) {
	const op = "HubUpdate"
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if opts.Title != "" {
		body["title"] = opts.Title
	}
	if opts.Description != "" {
		body["description"] = opts.Description
	}
	setFlag := func(name string, v *bool) {
		if v != nil {
			body[name] = *v
		}
	}
	setFlag("is_ai_enabled", opts.IsAIEnabled)
	setFlag("is_collaboration_restricted_to_enterprise", opts.IsCollaborationRestrictedToEnterprise)
	setFlag("can_non_owners_invite", opts.CanNonOwnersInvite)
	setFlag("can_shared_link_be_created", opts.CanSharedLinkBeCreated)
	if len(body) == 0 {
		return nil, invalid(op, fmt.Errorf("nothing to update"))
	}

	hub, err := client.UpdateHub(ctx, hubID, body)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(hub)
}

// HubDelete deletes a hub.
func HubDelete(ctx context.Context, client *box.Client, hubID string) (map[string]any, error) {
	const op = "HubDelete"
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}

	if err := client.DeleteHub(ctx, hubID); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Hub with ID %s deleted successfully.", hubID), nil
}

// HubCopy copies a hub. Empty title and description keep the source's.
func HubCopy(ctx context.Context, client *box.Client, hubID, title, description string) (map[string]any, error) {
	const op = "HubCopy"
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}

	hub, err := client.CopyHub(ctx, hubID, title, description)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(hub)
}

// HubListOptions filters HubList.
type HubListOptions struct {
	Query string

	// Scope is editable, view_only or all.
	Scope string

	// Sort is name, updated_at, last_accessed_at, view_count or
	// relevance.
	Sort string

	// Direction is ASC or DESC, in any case.
	Direction string

	// Limit is the page size, capped at MaxHubPageSize.
	Limit int
}

// HubList lists every hub visible to the user.
func HubList(ctx context.Context, client *box.Client, opts HubListOptions) (map[string]any, error) {
	const op = "HubList"
	direction := strings.ToUpper(opts.Direction)
	if err := validation.Validate(direction, validation.In("ASC", "DESC")); err != nil {
		return nil, invalid(op, fmt.Errorf("invalid direction %q: %w", opts.Direction, err))
	}
	limit := opts.Limit
	if limit <= 0 || limit > MaxHubPageSize {
		limit = MaxHubPageSize
	}

	var (
		hubs   []box.Hub
		marker string
	)
	for {
		page, err := client.ListHubs(ctx, box.HubListOptions{
			Query:     opts.Query,
			Scope:     opts.Scope,
			Sort:      opts.Sort,
			Direction: direction,
			Marker:    marker,
			Limit:     limit,
		})
		if err != nil {
			return nil, apiFailure(client, op, err)
		}
		hubs = append(hubs, page.Entries...)
		if page.NextMarker == "" || len(page.Entries) == 0 {
			break
		}
		marker = page.NextMarker
	}

	if len(hubs) == 0 {
		return message("No hubs found."), nil
	}
	return wrapList("hubs", hubs)
}

// HubItemsList lists every item in a hub.
func HubItemsList(ctx context.Context, client *box.Client, hubID string, limit int) (map[string]any, error) {
	const op = "HubItemsList"
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHubItemsLimit
	}

	var (
		items  []box.Item
		marker string
	)
	for {
		page, err := client.ListHubItems(ctx, hubID, marker, limit)
		if err != nil {
			return nil, apiFailure(client, op, err)
		}
		items = append(items, page.Entries...)
		if page.NextMarker == "" || len(page.Entries) == 0 {
			break
		}
		marker = page.NextMarker
	}

	if len(items) == 0 {
		return message("No items found in the hub."), nil
	}
	return wrapList("hub items", items)
}

// HubItemAdd adds a file, folder or web_link to a hub.
func HubItemAdd(ctx context.Context, client *box.Client, hubID, itemID, itemType string) (map[string]any, error) {
	return manageHubItem(ctx, client, "HubItemAdd", "add", hubID, itemID, itemType)
}

// HubItemRemove removes a file, folder or web_link from a hub.
func HubItemRemove(ctx context.Context, client *box.Client, hubID, itemID, itemType string) (map[string]any, error) {
	return manageHubItem(ctx, client, "HubItemRemove", "remove", hubID, itemID, itemType)
}

func manageHubItem(
	ctx context.Context, client *box.Client, op, action, hubID, itemID, itemType string,
) (map[string]any, error) {
	if err := required(op, map[string]any{"hub_id": hubID, "item_id": itemID}); err != nil {
		return nil, err
	}
	itemType = strings.ToLower(itemType)
	if err := validation.Validate(itemType, validation.Required, validation.In("file", "folder", "web_link")); err != nil {
		return nil, invalid(op, fmt.Errorf("invalid item type %q: %w", itemType, err))
	}

	result, err := client.ManageHubItems(ctx, hubID, []box.HubItemOperation{{
		Action: action,
		Item:   box.ItemMini{Type: itemType, ID: itemID},
	}})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return result, nil
}

// HubCollaborationsList lists every collaboration on a hub.
func HubCollaborationsList(ctx context.Context, client *box.Client, hubID string, limit int) (map[string]any, error) {
	const op = "HubCollaborationsList"
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHubItemsLimit
	}

	var (
		collabs []box.HubCollaboration
		marker  string
	)
	for {
		page, err := client.ListHubCollaborations(ctx, hubID, marker, limit)
		if err != nil {
			return nil, apiFailure(client, op, err)
		}
		collabs = append(collabs, page.Entries...)
		if page.NextMarker == "" || len(page.Entries) == 0 {
			break
		}
		marker = page.NextMarker
	}

	if len(collabs) == 0 {
		return message("No collaborations found in the hub."), nil
	}
	return wrapList("hub collaborations", collabs)
}

// HubCollaborationAddUserByID gives a user access to a hub.
func HubCollaborationAddUserByID(
	ctx context.Context, client *box.Client, hubID, userID, role string,
) (map[string]any, error) {
	const op = "HubCollaborationAddUserByID"
	if err := required(op, map[string]any{"user_id": userID}); err != nil {
		return nil, err
	}
	return createHubCollaboration(ctx, client, op, hubID, role, map[string]string{"type": "user", "id": userID})
}

// HubCollaborationAddUserByEmail gives a user access to a hub by login.
func HubCollaborationAddUserByEmail(
	ctx context.Context, client *box.Client, hubID, email, role string,
) (map[string]any, error) {
	const op = "HubCollaborationAddUserByEmail"
	if err := required(op, map[string]any{"email": email}); err != nil {
		return nil, err
	}
	return createHubCollaboration(ctx, client, op, hubID, role, map[string]string{"type": "user", "login": email})
}

// HubCollaborationAddGroupByID gives a group access to a hub.
func HubCollaborationAddGroupByID(
	ctx context.Context, client *box.Client, hubID, groupID, role string,
) (map[string]any, error) {
	const op = "HubCollaborationAddGroupByID"
	if err := required(op, map[string]any{"group_id": groupID}); err != nil {
		return nil, err
	}
	return createHubCollaboration(ctx, client, op, hubID, role, map[string]string{"type": "group", "id": groupID})
}

func createHubCollaboration(
	ctx context.Context, client *box.Client, op, hubID, role string, accessibleBy map[string]string,
) (map[string]any, error) {
	if err := required(op, map[string]any{"hub_id": hubID}); err != nil {
		return nil, err
	}
	if err := validateHubRole(role); err != nil {
		return nil, invalid(op, err)
	}

	collab, err := client.CreateHubCollaboration(ctx, hubID, accessibleBy, role)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(collab)
}

func validateHubRole(role string) error {
	if err := validation.Validate(role, validation.Required, validation.In(hubRoles...)); err != nil {
		return fmt.Errorf("role: %w", err)
	}
	return nil
}

// HubCollaborationRemove removes a hub collaboration.
func HubCollaborationRemove(ctx context.Context, client *box.Client, collaborationID string) (map[string]any, error) {
	const op = "HubCollaborationRemove"
	if err := required(op, map[string]any{"hub_collaboration_id": collaborationID}); err != nil {
		return nil, err
	}

	if err := client.DeleteHubCollaboration(ctx, collaborationID); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Hub collaboration with ID %s deleted successfully.", collaborationID), nil
}

// HubCollaborationUpdate changes the role of a hub collaboration.
func HubCollaborationUpdate(
	ctx context.Context, client *box.Client, collaborationID, role string,
) (map[string]any, error) {
	const op = "HubCollaborationUpdate"
	if err := required(op, map[string]any{"hub_collaboration_id": collaborationID}); err != nil {
		return nil, err
	}
	if err := validateHubRole(role); err != nil {
		return nil, invalid(op, err)
	}

	collab, err := client.UpdateHubCollaboration(ctx, collaborationID, role)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(collab)
}

// HubCollaborationDetails returns a hub collaboration.
func HubCollaborationDetails(ctx context.Context, client *box.Client, collaborationID string) (map[string]any, error) {
	const op = "HubCollaborationDetails"
	if err := required(op, map[string]any{"hub_collaboration_id": collaborationID}); err != nil {
		return nil, err
	}

	collab, err := client.GetHubCollaboration(ctx, collaborationID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return toMap(collab)
}
