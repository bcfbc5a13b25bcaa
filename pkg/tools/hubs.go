package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type hubArgs struct {
	HubID string `json:"hub_id"`
}

type hubCreateArgs struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type hubCopyArgs struct {
	HubID       string `json:"hub_id"`
	Title       string `json:"title,omitempty" jsonschema_description:"Keeps the source title when empty"`
	Description string `json:"description,omitempty"`
}

type hubUpdateArgs struct {
	HubID                                 string `json:"hub_id"`
	Title                                 string `json:"title,omitempty"`
	Description                           string `json:"description,omitempty"`
	IsAIEnabled                           *bool  `json:"is_ai_enabled,omitempty"`
	IsCollaborationRestrictedToEnterprise *bool  `json:"is_collaboration_restricted_to_enterprise,omitempty"`
	CanNonOwnersInvite                    *bool  `json:"can_non_owners_invite,omitempty"`
	CanSharedLinkBeCreated                *bool  `json:"can_shared_link_be_created,omitempty"`
}

type hubListArgs struct {
	Query     string `json:"query,omitempty"`
	Scope     string `json:"scope,omitempty" jsonschema:"enum=editable,enum=view_only,enum=all"`
	Sort      string `json:"sort,omitempty" jsonschema:"enum=name,enum=updated_at,enum=last_accessed_at,enum=view_count,enum=relevance"`
	Direction string `json:"direction,omitempty" jsonschema:"enum=ASC,enum=DESC"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum=200"`
}

type hubListItemsArgs struct {
	HubID string `json:"hub_id"`
	Limit int    `json:"limit,omitempty"`
}

type hubItemArgs struct {
	HubID    string `json:"hub_id"`
	ItemID   string `json:"item_id"`
	ItemType string `json:"item_type" jsonschema:"enum=file,enum=folder,enum=web_link"`
}

type hubUserArgs struct {
	HubID  string `json:"hub_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role" jsonschema:"enum=editor,enum=viewer,enum=co-owner"`
}

type hubEmailArgs struct {
	HubID string `json:"hub_id"`
	Email string `json:"email" jsonschema_description:"Login of the user"`
	Role  string `json:"role" jsonschema:"enum=editor,enum=viewer,enum=co-owner"`
}

type hubGroupArgs struct {
	HubID   string `json:"hub_id"`
	GroupID string `json:"group_id"`
	Role    string `json:"role" jsonschema:"enum=editor,enum=viewer,enum=co-owner"`
}

type hubCollaborationArgs struct {
	CollaborationID string `json:"hub_collaboration_id"`
}

type hubCollaborationUpdateArgs struct {
	CollaborationID string `json:"hub_collaboration_id"`
	Role            string `json:"role" jsonschema:"enum=editor,enum=viewer,enum=co-owner"`
}

func hubOp(op, description string, fn func(context.Context, *box.Client, string) (map[string]any, error)) *Tool {
	return define(op, description, func(ctx context.Context, client *box.Client, a hubArgs) (map[string]any, error) {
		return fn(ctx, client, a.HubID)
	})
}

func hubTools() []*Tool {
	return []*Tool{
		define("HubCreate", "Create a hub.",
			func(ctx context.Context, client *box.Client, a hubCreateArgs) (map[string]any, error) {
				return toolkit.HubCreate(ctx, client, a.Title, a.Description)
			}),
		hubOp("HubGet", "Get a hub.", toolkit.HubGet),
		define("HubUpdate", "Change a hub.",
			func(ctx context.Context, client *box.Client, a hubUpdateArgs) (map[string]any, error) {
				return toolkit.HubUpdate(ctx, client, a.HubID, toolkit.HubUpdateOptions{
					Title:                                 a.Title,
					Description:                           a.Description,
					IsAIEnabled:                           a.IsAIEnabled,
					IsCollaborationRestrictedToEnterprise: a.IsCollaborationRestrictedToEnterprise,
					CanNonOwnersInvite:                    a.CanNonOwnersInvite,
					CanSharedLinkBeCreated:                a.CanSharedLinkBeCreated,
				})
			}),
		hubOp("HubDelete", "Delete a hub.", toolkit.HubDelete),
		define("HubCopy", "Copy a hub.",
			func(ctx context.Context, client *box.Client, a hubCopyArgs) (map[string]any, error) {
				return toolkit.HubCopy(ctx, client, a.HubID, a.Title, a.Description)
			}),
		define("HubList", "List the hubs visible to the user.",
			func(ctx context.Context, client *box.Client, a hubListArgs) (map[string]any, error) {
				return toolkit.HubList(ctx, client, toolkit.HubListOptions{
					Query:     a.Query,
					Scope:     a.Scope,
					Sort:      a.Sort,
					Direction: a.Direction,
					Limit:     a.Limit,
				})
			}),
		define("HubItemsList", "List the items in a hub.",
			func(ctx context.Context, client *box.Client, a hubListItemsArgs) (map[string]any, error) {
				return toolkit.HubItemsList(ctx, client, a.HubID, a.Limit)
			}),
		define("HubItemAdd", "Add a file, folder or web link to a hub.",
			func(ctx context.Context, client *box.Client, a hubItemArgs) (map[string]any, error) {
				return toolkit.HubItemAdd(ctx, client, a.HubID, a.ItemID, a.ItemType)
			}),
		define("HubItemRemove", "Remove an item from a hub.",
			func(ctx context.Context, client *box.Client, a hubItemArgs) (map[string]any, error) {
				return toolkit.HubItemRemove(ctx, client, a.HubID, a.ItemID, a.ItemType)
			}),
		define("HubCollaborationsList", "List the collaborations on a hub.",
			func(ctx context.Context, client *box.Client, a hubListItemsArgs) (map[string]any, error) {
				return toolkit.HubCollaborationsList(ctx, client, a.HubID, a.Limit)
			}),
		define("HubCollaborationAddUserByID", "Give a user access to a hub.",
			func(ctx context.Context, client *box.Client, a hubUserArgs) (map[string]any, error) {
				return toolkit.HubCollaborationAddUserByID(ctx, client, a.HubID, a.UserID, a.Role)
			}),
		define("HubCollaborationAddUserByEmail", "Give a user access to a hub by login.",
			func(ctx context.Context, client *box.Client, a hubEmailArgs) (map[string]any, error) {
				return toolkit.HubCollaborationAddUserByEmail(ctx, client, a.HubID, a.Email, a.Role)
			}),
		define("HubCollaborationAddGroupByID", "Give a group access to a hub.",
			func(ctx context.Context, client *box.Client, a hubGroupArgs) (map[string]any, error) {
				return toolkit.HubCollaborationAddGroupByID(ctx, client, a.HubID, a.GroupID, a.Role)
			}),
		define("HubCollaborationRemove", "Remove a hub collaboration.",
			func(ctx context.Context, client *box.Client, a hubCollaborationArgs) (map[string]any, error) {
				return toolkit.HubCollaborationRemove(ctx, client, a.CollaborationID)
			}),
		define("HubCollaborationUpdate", "Change the role of a hub collaboration.",
			func(ctx context.Context, client *box.Client, a hubCollaborationUpdateArgs) (map[string]any, error) {
				return toolkit.HubCollaborationUpdate(ctx, client, a.CollaborationID, a.Role)
			}),
		define("HubCollaborationDetails", "Get a hub collaboration.",
			func(ctx context.Context, client *box.Client, a hubCollaborationArgs) (map[string]any, error) {
				return toolkit.HubCollaborationDetails(ctx, client, a.CollaborationID)
			}),
	}
}
