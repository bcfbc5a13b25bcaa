package toolkit

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// DefaultFolderItemsLimit is the page size used when listing folders.
const DefaultFolderItemsLimit = 1000

const favoritesCollection = "Favorites"

// FolderInfo returns a folder's details.
func FolderInfo(ctx context.Context, client *box.Client, folderID string) (map[string]any, error) {
	const op = "FolderInfo"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}

	folder, err := client.GetFolder(ctx, folderID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("folder", folder)
}

// FolderItemsList lists the items of a folder, following every page. When
// recursive is set the content of each subfolder is nested under its
// "items" key.
func FolderItemsList(
	ctx context.Context, client *box.Client, folderID string, recursive bool, limit int,
) (map[string]any, error) {
	const op = "FolderItemsList"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}
	if err := validation.Validate(limit, validation.Min(0), validation.Max(DefaultFolderItemsLimit)); err != nil {
		return nil, invalid(op, fmt.Errorf("limit: %w", err))
	}
	if limit == 0 {
		limit = DefaultFolderItemsLimit
	}

	items, err := listFolderItems(ctx, client, folderID, recursive, limit)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(items) == 0 {
		return message("No items found in folder."), nil
	}
	return map[string]any{"folder_items": items}, nil
}

func listFolderItems(
	ctx context.Context, client *box.Client, folderID string, recursive bool, limit int,
) ([]map[string]any, error) {
	var (
		result []map[string]any
		marker string
	)
	for {
		page, err := client.ListFolderItems(ctx, folderID, box.ListItemsOptions{
			Marker: marker,
			Limit:  limit,
		})
		if err != nil {
			return nil, err
		}
		if len(page.Entries) == 0 {
			break
		}

		for i := range page.Entries {
			entry := &page.Entries[i]
			item, err := toMap(entry)
			if err != nil {
				return nil, err
			}
			if recursive && entry.Type == "folder" {
				children, err := listFolderItems(ctx, client, entry.ID, recursive, limit)
				if err != nil {
					return nil, err
				}
				if len(children) > 0 {
					item["items"] = children
				}
			}
			result = append(result, item)
		}

		if page.NextMarker == "" {
			break
		}
		marker = page.NextMarker
	}
	return result, nil
}

// FolderCreate creates a folder. An empty parentFolderID creates it in
// the root folder.
func FolderCreate(ctx context.Context, client *box.Client, name, parentFolderID string) (map[string]any, error) {
	const op = "FolderCreate"
	if err := required(op, map[string]any{"name": name}); err != nil {
		return nil, err
	}
	if parentFolderID == "" {
		parentFolderID = box.RootFolderID
	}

	folder, err := client.CreateFolder(ctx, name, parentFolderID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("folder", folder)
}

// FolderDelete moves a folder to the trash. Folders with content need
// recursive.
func FolderDelete(ctx context.Context, client *box.Client, folderID string, recursive bool) (map[string]any, error) {
	const op = "FolderDelete"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}
	if folderID == box.RootFolderID {
		return nil, invalid(op, fmt.Errorf("the root folder cannot be deleted"))
	}

	if err := client.DeleteFolder(ctx, folderID, recursive); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Folder %s deleted successfully.", folderID), nil
}

// FolderCopy copies a folder into another one. An empty name keeps the
// original name.
func FolderCopy(
	ctx context.Context, client *box.Client, folderID, destinationParentFolderID, name string,
) (map[string]any, error) {
	const op = "FolderCopy"
	if err := required(op, map[string]any{
		"folder_id":                    folderID,
		"destination_parent_folder_id": destinationParentFolderID,
	}); err != nil {
		return nil, err
	}

	folder, err := client.CopyFolder(ctx, folderID, destinationParentFolderID, name)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("folder", folder)
}

// FolderMove moves a folder into another one.
func FolderMove(
	ctx context.Context, client *box.Client, folderID, destinationParentFolderID string,
) (map[string]any, error) {
	const op = "FolderMove"
	if err := required(op, map[string]any{
		"folder_id":                    folderID,
		"destination_parent_folder_id": destinationParentFolderID,
	}); err != nil {
		return nil, err
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{
		"parent": map[string]string{"id": destinationParentFolderID},
	})
}

// FolderRename renames a folder.
func FolderRename(ctx context.Context, client *box.Client, folderID, newName string) (map[string]any, error) {
	const op = "FolderRename"
	if err := required(op, map[string]any{"folder_id": folderID, "new_name": newName}); err != nil {
		return nil, err
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{"name": newName})
}

// FolderSetDescription replaces a folder's description.
func FolderSetDescription(
	ctx context.Context, client *box.Client, folderID, description string,
) (map[string]any, error) {
	const op = "FolderSetDescription"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{"description": description})
}

// FolderSetCollaboration controls what non-owners may do with the
// folder's collaborators.
func FolderSetCollaboration(
	ctx context.Context, client *box.Client, folderID string, canNonOwnersInvite, canNonOwnersViewCollaborators bool,
) (map[string]any, error) {
	const op = "FolderSetCollaboration"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{
		"can_non_owners_invite":             canNonOwnersInvite,
		"can_non_owners_view_collaborators": canNonOwnersViewCollaborators,
	})
}

// FolderFavoritesAdd adds a folder to the user's Favorites collection.
func FolderFavoritesAdd(ctx context.Context, client *box.Client, folderID string) (map[string]any, error) {
	const op = "FolderFavoritesAdd"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}

	favorites, err := findFavorites(ctx, client, op)
	if err != nil {
		return nil, err
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{
		"collections": []map[string]string{{"id": favorites.ID, "type": favorites.Type}},
	})
}

// FolderFavoritesRemove removes a folder from the user's Favorites
// collection and keeps its other collections.
func FolderFavoritesRemove(ctx context.Context, client *box.Client, folderID string) (map[string]any, error) {
	const op = "FolderFavoritesRemove"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}

	favorites, err := findFavorites(ctx, client, op)
	if err != nil {
		return nil, err
	}

	folder, err := client.GetFolder(ctx, folderID, "id", "type", "name", "collections")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	collections := make([]map[string]string, 0, len(folder.Collections))
	for _, c := range folder.Collections {
		if c.ID != favorites.ID {
			collections = append(collections, map[string]string{"id": c.ID, "type": c.Type})
		}
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{"collections": collections})
}

func findFavorites(ctx context.Context, client *box.Client, op string) (*box.Collection, error) {
	page, err := client.ListCollections(ctx)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	for i := range page.Entries {
		if page.Entries[i].Name == favoritesCollection {
			return &page.Entries[i], nil
		}
	}
	return nil, &Error{Op: op, Err: ErrNotFound, Msg: "Favorites collection not found"}
}

// FolderSetUploadEmail enables the folder's upload email for access
// "open" or "collaborators". An empty access disables it.
func FolderSetUploadEmail(ctx context.Context, client *box.Client, folderID, access string) (map[string]any, error) {
	const op = "FolderSetUploadEmail"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}
	if err := validation.Validate(access, validation.In("open", "collaborators")); err != nil {
		return nil, invalid(op, fmt.Errorf("access: %w", err))
	}

	var uploadEmail any
	if access != "" {
		uploadEmail = map[string]string{"access": access}
	}
	return updateFolder(ctx, client, op, folderID, map[string]any{"folder_upload_email": uploadEmail})
}

// FolderUpdateOptions lists the attributes FolderUpdate may change. Empty
// values are left untouched.
type FolderUpdateOptions struct {
	Name           string
	Description    string
	ParentFolderID string
}

// FolderUpdate changes several folder attributes at once.
func FolderUpdate(
	ctx context.Context, client *box.Client, folderID string, opts FolderUpdateOptions,
) (map[string]any, error) {
	const op = "FolderUpdate"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}

	body := map[string]any{}
	if opts.Name != "" {
		body["name"] = opts.Name
	}
	if opts.Description != "" {
		body["description"] = opts.Description
	}
	if opts.ParentFolderID != "" {
		body["parent"] = map[string]string{"id": opts.ParentFolderID}
	}
	if len(body) == 0 {
		return nil, invalid(op, fmt.Errorf("nothing to update"))
	}
	return updateFolder(ctx, client, op, folderID, body)
}

func updateFolder(
	ctx context.Context, client *box.Client, op, folderID string, body map[string]any,
) (map[string]any, error) {
	folder, err := client.UpdateFolder(ctx, folderID, body)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("folder", folder)
}

// FolderLocateByName finds folders whose name matches name, ignoring
// case. A non-empty parentFolderID restricts the search to that subtree.
func FolderLocateByName(
	ctx context.Context, client *box.Client, name, parentFolderID string,
) (map[string]any, error) {
	const op = "FolderLocateByName"
	if err := required(op, map[string]any{"name": name}); err != nil {
		return nil, err
	}

	opts := box.SearchOptions{
		Query:        name,
		Type:         "folder",
		ContentTypes: []string{"name"},
		Limit:        200,
	}
	if parentFolderID != "" {
		opts.AncestorFolderIDs = []string{parentFolderID}
	}

	page, err := client.Search(ctx, opts)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	var folders []box.Item
	for _, item := range page.Entries {
		if item.Type == "folder" && strings.EqualFold(item.Name, name) {
			folders = append(folders, item)
		}
	}
	if len(folders) == 0 {
		return message("No folder named %q found.", name), nil
	}
	return wrapList("folders", folders)
}
