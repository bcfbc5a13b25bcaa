package toolkit

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// SharedLinkOptions configures a new shared link. The zero value creates
// a company link that can be previewed and downloaded.
type SharedLinkOptions struct {
	// Access is open, company or collaborators. Empty means company.
	Access string

	// DisallowDownload and DisallowPreview turn off the default
	// permissions; AllowEdit is only valid for files.
	DisallowDownload bool
	DisallowPreview  bool
	AllowEdit        bool

	Password   string
	VanityName string

	// UnsharedAt expires the link. Values without a zone are in the
	// current user's timezone.
	UnsharedAt string
}

func (o SharedLinkOptions) settings(ctx context.Context, client *box.Client) (*box.SharedLinkSettings, error) {
	access := strings.ToLower(o.Access)
	if access == "" {
		access = "company"
	}
	if err := validation.Validate(access, validation.In("open", "company", "collaborators")); err != nil {
		return nil, fmt.Errorf("invalid access %q: %w", o.Access, err)
	}

	s := &box.SharedLinkSettings{
		Access:     access,
		Password:   o.Password,
		VanityName: o.VanityName,
		Permissions: &box.SharedLinkPermissions{
			CanDownload: boolPtr(!o.DisallowDownload),
			CanPreview:  boolPtr(!o.DisallowPreview),
			CanEdit:     boolPtr(o.AllowEdit),
		},
	}
	if o.UnsharedAt != "" {
		at, err := parseDateTime(ctx, client, o.UnsharedAt)
		if err != nil {
			return nil, fmt.Errorf("unshared_at: %w", err)
		}
		s.UnsharedAt = &at
	}
	return s, nil
}

// SharedLinkFileCreate creates or replaces the shared link of a file.
func SharedLinkFileCreate(
	ctx context.Context, client *box.Client, fileID string, opts SharedLinkOptions,
) (map[string]any, error) {
	const op = "SharedLinkFileCreate"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}
	settings, err := opts.settings(ctx, client)
	if err != nil {
		return nil, invalid(op, err)
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"shared_link": settings}, "shared_link")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if file.SharedLink == nil {
		return nil, &Error{Op: op, Err: ErrNotFound, Msg: "Unable to create shared link."}
	}
	return sharedLinkResult(file)
}

// SharedLinkFileGet returns the shared link of a file.
func SharedLinkFileGet(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "SharedLinkFileGet"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.GetFile(ctx, fileID, "shared_link")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if file.SharedLink == nil {
		return message("No shared link found for this file."), nil
	}
	return sharedLinkResult(file)
}

// SharedLinkFileRemove removes the shared link of a file.
func SharedLinkFileRemove(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "SharedLinkFileRemove"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	if _, err := client.UpdateFile(ctx, fileID, map[string]any{"shared_link": nil}, "shared_link"); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Shared link removed successfully."), nil
}

// SharedLinkFolderCreate creates or replaces the shared link of a folder.
func SharedLinkFolderCreate(
	ctx context.Context, client *box.Client, folderID string, opts SharedLinkOptions,
) (map[string]any, error) {
	const op = "SharedLinkFolderCreate"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}
	if opts.AllowEdit {
		return nil, invalid(op, fmt.Errorf("folder shared links cannot allow editing"))
	}
	settings, err := opts.settings(ctx, client)
	if err != nil {
		return nil, invalid(op, err)
	}
	settings.Permissions.CanEdit = nil

	folder, err := client.UpdateFolder(ctx, folderID, map[string]any{"shared_link": settings}, "shared_link")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if folder.SharedLink == nil {
		return nil, &Error{Op: op, Err: ErrNotFound, Msg: "Unable to create shared link."}
	}
	return sharedLinkResult(folder)
}

// SharedLinkFolderGet returns the shared link of a folder.
func SharedLinkFolderGet(ctx context.Context, client *box.Client, folderID string) (map[string]any, error) {
	const op = "SharedLinkFolderGet"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}

	folder, err := client.GetFolder(ctx, folderID, "shared_link")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if folder.SharedLink == nil {
		return message("No shared link found for this folder."), nil
	}
	return sharedLinkResult(folder)
}

// SharedLinkFolderRemove removes the shared link of a folder.
func SharedLinkFolderRemove(ctx context.Context, client *box.Client, folderID string) (map[string]any, error) {
	const op = "SharedLinkFolderRemove"
	if err := required(op, map[string]any{"folder_id": folderID}); err != nil {
		return nil, err
	}

	if _, err := client.UpdateFolder(ctx, folderID, map[string]any{"shared_link": nil}, "shared_link"); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("Shared link removed successfully."), nil
}

// sharedLinkResult returns the shared_link object of an item response as
// Box sent it.
func sharedLinkResult(item any) (map[string]any, error) {
	m, err := toMap(item)
	if err != nil {
		return nil, err
	}
	return map[string]any{"shared_link": m["shared_link"]}, nil
}
