package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type folderArgs struct {
	FolderID string `json:"folder_id" jsonschema_description:"ID of the Box folder; 0 is the root"`
}

type folderItemsArgs struct {
	FolderID  string `json:"folder_id" jsonschema_description:"ID of the Box folder; 0 is the root"`
	Recursive bool   `json:"is_recursive,omitempty" jsonschema_description:"Include the content of subfolders"`
	Limit     int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=1000"`
}

type folderCreateArgs struct {
	Name           string `json:"name"`
	ParentFolderID string `json:"parent_folder_id,omitempty" jsonschema_description:"Defaults to the root folder"`
}

type folderDeleteArgs struct {
	FolderID  string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	Recursive bool   `json:"recursive,omitempty" jsonschema_description:"Required when the folder is not empty"`
}

type folderCopyArgs struct {
	FolderID                  string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	DestinationParentFolderID string `json:"destination_parent_folder_id"`
	Name                      string `json:"name,omitempty" jsonschema_description:"Name of the copy"`
}

type folderMoveArgs struct {
	FolderID                  string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	DestinationParentFolderID string `json:"destination_parent_folder_id"`
}

type folderRenameArgs struct {
	FolderID string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	NewName  string `json:"new_name"`
}

type folderDescriptionArgs struct {
	FolderID    string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	Description string `json:"description"`
}

type folderCollaborationArgs struct {
	FolderID                      string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	CanNonOwnersInvite            bool   `json:"can_non_owners_invite"`
	CanNonOwnersViewCollaborators bool   `json:"can_non_owners_view_collaborators"`
}

type folderUploadEmailArgs struct {
	FolderID string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	Access   string `json:"access,omitempty" jsonschema:"enum=open,enum=collaborators" jsonschema_description:"Empty disables the upload email"`
}

type folderUpdateArgs struct {
	FolderID       string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	ParentFolderID string `json:"parent_folder_id,omitempty"`
}

type folderLocateArgs struct {
	Name           string `json:"folder_name"`
	ParentFolderID string `json:"parent_folder_id,omitempty" jsonschema_description:"Restrict the search to this subtree"`
}

func folderOp(
	op, description string, fn func(context.Context, *box.Client, string) (map[string]any, error),
) *Tool {
	return define(op, description, func(ctx context.Context, client *box.Client, a folderArgs) (map[string]any, error) {
		return fn(ctx, client, a.FolderID)
	})
}

func folderTools() []*Tool {
	return []*Tool{
		folderOp("FolderInfo", "Get the details of a folder.", toolkit.FolderInfo),
		define("FolderItemsList", "List the items in a folder.",
			func(ctx context.Context, client *box.Client, a folderItemsArgs) (map[string]any, error) {
				return toolkit.FolderItemsList(ctx, client, a.FolderID, a.Recursive, a.Limit)
			}),
		define("FolderCreate", "Create a folder.",
			func(ctx context.Context, client *box.Client, a folderCreateArgs) (map[string]any, error) {
				return toolkit.FolderCreate(ctx, client, a.Name, a.ParentFolderID)
			}),
		define("FolderDelete", "Move a folder to the trash.",
			func(ctx context.Context, client *box.Client, a folderDeleteArgs) (map[string]any, error) {
				return toolkit.FolderDelete(ctx, client, a.FolderID, a.Recursive)
			}),
		define("FolderCopy", "Copy a folder into another folder.",
			func(ctx context.Context, client *box.Client, a folderCopyArgs) (map[string]any, error) {
				return toolkit.FolderCopy(ctx, client, a.FolderID, a.DestinationParentFolderID, a.Name)
			}),
		define("FolderMove", "Move a folder into another folder.",
			func(ctx context.Context, client *box.Client, a folderMoveArgs) (map[string]any, error) {
				return toolkit.FolderMove(ctx, client, a.FolderID, a.DestinationParentFolderID)
			}),
		define("FolderRename", "Rename a folder.",
			func(ctx context.Context, client *box.Client, a folderRenameArgs) (map[string]any, error) {
				return toolkit.FolderRename(ctx, client, a.FolderID, a.NewName)
			}),
		define("FolderSetDescription", "Replace the description of a folder.",
			func(ctx context.Context, client *box.Client, a folderDescriptionArgs) (map[string]any, error) {
				return toolkit.FolderSetDescription(ctx, client, a.FolderID, a.Description)
			}),
		define("FolderSetCollaboration", "Control what non-owners may do with collaborators.",
			func(ctx context.Context, client *box.Client, a folderCollaborationArgs) (map[string]any, error) {
				return toolkit.FolderSetCollaboration(ctx, client, a.FolderID,
					a.CanNonOwnersInvite, a.CanNonOwnersViewCollaborators)
			}),
		folderOp("FolderFavoritesAdd", "Add a folder to Favorites.", toolkit.FolderFavoritesAdd),
		folderOp("FolderFavoritesRemove", "Remove a folder from Favorites.", toolkit.FolderFavoritesRemove),
		define("FolderSetUploadEmail", "Enable or disable the upload email of a folder.",
			func(ctx context.Context, client *box.Client, a folderUploadEmailArgs) (map[string]any, error) {
				return toolkit.FolderSetUploadEmail(ctx, client, a.FolderID, a.Access)
			}),
		define("FolderUpdate", "Change the name, description or parent of a folder.",
			func(ctx context.Context, client *box.Client, a folderUpdateArgs) (map[string]any, error) {
				return toolkit.FolderUpdate(ctx, client, a.FolderID, toolkit.FolderUpdateOptions{
					Name:           a.Name,
					Description:    a.Description,
					ParentFolderID: a.ParentFolderID,
				})
			}),
		define("FolderLocateByName", "Find folders by exact name, ignoring case.",
			func(ctx context.Context, client *box.Client, a folderLocateArgs) (map[string]any, error) {
				return toolkit.FolderLocateByName(ctx, client, a.Name, a.ParentFolderID)
			}),
	}
}
