package toolkit

import (
	"context"
	"errors"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// FileInfo returns a file's details.
func FileInfo(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "FileInfo"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.GetFile(ctx, fileID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("file_info", file)
}

// ThumbnailOptions selects the thumbnail format and size. Sizes are in
// pixels and zero means unbounded.
type ThumbnailOptions struct {
	Extension string `json:"extension,omitempty" jsonschema:"enum=png,enum=jpg,default=png"`
	MinHeight int    `json:"min_height,omitempty" jsonschema:"minimum=32,maximum=320"`
	MinWidth  int    `json:"min_width,omitempty" jsonschema:"minimum=32,maximum=320"`
	MaxHeight int    `json:"max_height,omitempty" jsonschema:"minimum=32,maximum=320"`
	MaxWidth  int    `json:"max_width,omitempty" jsonschema:"minimum=32,maximum=320"`
}

// Validate checks the extension and that every bound is within 32..320.
func (o ThumbnailOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Extension, validation.In("png", "jpg")),
		validation.Field(&o.MinHeight, validation.Min(32), validation.Max(320)),
		validation.Field(&o.MinWidth, validation.Min(32), validation.Max(320)),
		validation.Field(&o.MaxHeight, validation.Min(32), validation.Max(320)),
		validation.Field(&o.MaxWidth, validation.Min(32), validation.Max(320)),
	)
}

func (o ThumbnailOptions) resolve() (string, box.ThumbnailOptions) {
	ext := o.Extension
	if ext == "" {
		ext = "png"
	}
	return ext, box.ThumbnailOptions{
		MinHeight: o.MinHeight,
		MinWidth:  o.MinWidth,
		MaxHeight: o.MaxHeight,
		MaxWidth:  o.MaxWidth,
	}
}

func checkThumbnail(op, fileID string, opts ThumbnailOptions) error {
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return invalid(op, err)
	}
	return nil
}

// FileThumbnailURL returns the URL of a file's thumbnail.
func FileThumbnailURL(
	ctx context.Context, client *box.Client, fileID string, opts ThumbnailOptions,
) (map[string]any, error) {
	const op = "FileThumbnailURL"
	if err := checkThumbnail(op, fileID, opts); err != nil {
		return nil, err
	}

	ext, bounds := opts.resolve()
	thumbURL, err := client.ThumbnailURL(ctx, fileID, ext, bounds)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if thumbURL == "" {
		return message("Thumbnail not available for this file."), nil
	}
	return map[string]any{"thumbnail_url": thumbURL}, nil
}

// FileThumbnailDownload returns a file's thumbnail image.
func FileThumbnailDownload(
	ctx context.Context, client *box.Client, fileID string, opts ThumbnailOptions,
) (map[string]any, error) {
	const op = "FileThumbnailDownload"
	if err := checkThumbnail(op, fileID, opts); err != nil {
		return nil, err
	}

	ext, bounds := opts.resolve()
	content, err := client.Thumbnail(ctx, fileID, ext, bounds)
	if errors.Is(err, box.ErrThumbnailNotAvailable) {
		return message("Thumbnail not available for this file."), nil
	}
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	mimeType := "image/png"
	if ext == "jpg" {
		mimeType = "image/jpeg"
	}
	return map[string]any{
		"thumbnail_content": content,
		"mime_type":         mimeType,
	}, nil
}

// FileCopy copies a file into another folder. An empty newName keeps the
// original name; version selects a specific file version to copy.
func FileCopy(
	ctx context.Context, client *box.Client, fileID, destinationFolderID, newName, version string,
) (map[string]any, error) {
	const op = "FileCopy"
	if err := required(op, map[string]any{
		"file_id":               fileID,
		"destination_folder_id": destinationFolderID,
	}); err != nil {
		return nil, err
	}

	file, err := client.CopyFile(ctx, fileID, box.CopyFileRequest{
		Parent:  box.ItemMini{Type: "folder", ID: destinationFolderID},
		Name:    newName,
		Version: version,
	})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("copied_file", file)
}

// FileMove moves a file into another folder.
func FileMove(
	ctx context.Context, client *box.Client, fileID, destinationFolderID string,
) (map[string]any, error) {
	const op = "FileMove"
	if err := required(op, map[string]any{
		"file_id":               fileID,
		"destination_folder_id": destinationFolderID,
	}); err != nil {
		return nil, err
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{
		"parent": map[string]string{"id": destinationFolderID},
	})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("moved_file", file)
}

// FileDelete moves a file to the trash.
func FileDelete(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "FileDelete"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	if err := client.DeleteFile(ctx, fileID); err != nil {
		return nil, apiFailure(client, op, err)
	}
	return message("File %s deleted successfully.", fileID), nil
}

// FileRename renames a file.
func FileRename(ctx context.Context, client *box.Client, fileID, newName string) (map[string]any, error) {
	const op = "FileRename"
	if err := required(op, map[string]any{"file_id": fileID, "new_name": newName}); err != nil {
		return nil, err
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"name": newName})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("renamed_file", file)
}

// FileSetDescription replaces a file's description.
func FileSetDescription(
	ctx context.Context, client *box.Client, fileID, description string,
) (map[string]any, error) {
	const op = "FileSetDescription"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"description": description})
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("updated_file", file)
}

// FileRetentionDateSet sets the disposition date of a file under a
// retention policy. Dates without a zone are in the user's timezone.
func FileRetentionDateSet(
	ctx context.Context, client *box.Client, fileID, retentionDate string,
) (map[string]any, error) {
	const op = "FileRetentionDateSet"
	if err := required(op, map[string]any{"file_id": fileID, "retention_date": retentionDate}); err != nil {
		return nil, err
	}

	at, err := parseDateTime(ctx, client, retentionDate)
	if err != nil {
		return nil, invalid(op, err)
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"disposition_at": at},
		"id", "type", "name", "disposition_at")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("updated_file", file)
}

// FileRetentionDateClear removes a file's disposition date.
func FileRetentionDateClear(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "FileRetentionDateClear"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"disposition_at": nil},
		"id", "type", "name", "disposition_at")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("updated_file", file)
}

// FileLock locks a file. An empty expiresAt locks it indefinitely.
func FileLock(
	ctx context.Context, client *box.Client, fileID, expiresAt string, preventDownload bool,
) (map[string]any, error) {
	const op = "FileLock"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	lock := map[string]any{
		"access":                "lock",
		"is_download_prevented": preventDownload,
	}
	if expiresAt != "" {
		at, err := parseDateTime(ctx, client, expiresAt)
		if err != nil {
			return nil, invalid(op, err)
		}
		lock["expires_at"] = at
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"lock": lock}, "id", "type", "name", "lock")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("locked_file", file)
}

// FileUnlock releases a file lock.
func FileUnlock(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "FileUnlock"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"lock": nil}, "id", "type", "name", "lock")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("unlocked_file", file)
}

func setDownloadPermission(
	ctx context.Context, client *box.Client, op, fileID string, permissions any,
) (map[string]any, error) {
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.UpdateFile(ctx, fileID, map[string]any{"permissions": permissions},
		"id", "type", "name", "permissions")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("updated_file", file)
}

// FileSetDownloadOpen lets anyone with access download the file.
func FileSetDownloadOpen(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	return setDownloadPermission(ctx, client, "FileSetDownloadOpen", fileID,
		map[string]string{"can_download": "open"})
}

// FileSetDownloadCompany limits downloads to the file owner's company.
func FileSetDownloadCompany(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	return setDownloadPermission(ctx, client, "FileSetDownloadCompany", fileID,
		map[string]string{"can_download": "company"})
}

// FileSetDownloadReset restores the enterprise default download setting.
func FileSetDownloadReset(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	return setDownloadPermission(ctx, client, "FileSetDownloadReset", fileID, nil)
}

// FileTagList returns a file's tags.
func FileTagList(ctx context.Context, client *box.Client, fileID string) (map[string]any, error) {
	const op = "FileTagList"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.GetFile(ctx, fileID, "tags")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(file.Tags) == 0 {
		return message("No tags found for this file."), nil
	}
	return map[string]any{"tags": file.Tags}, nil
}

// FileTagAdd adds a tag to a file. Adding an existing tag is a no-op.
func FileTagAdd(ctx context.Context, client *box.Client, fileID, tag string) (map[string]any, error) {
	return editTags(ctx, client, "FileTagAdd", fileID, tag, func(tags []string) []string {
		if slices.Contains(tags, tag) {
			return tags
		}
		return append(tags, tag)
	})
}

// FileTagRemove removes a tag from a file. Removing a missing tag is a
// no-op.
func FileTagRemove(ctx context.Context, client *box.Client, fileID, tag string) (map[string]any, error) {
	return editTags(ctx, client, "FileTagRemove", fileID, tag, func(tags []string) []string {
		return slices.DeleteFunc(tags, func(t string) bool { return t == tag })
	})
}

func editTags(
	ctx context.Context, client *box.Client, op, fileID, tag string, edit func([]string) []string,
) (map[string]any, error) {
	if err := required(op, map[string]any{"file_id": fileID, "tag": tag}); err != nil {
		return nil, err
	}

	file, err := client.GetFile(ctx, fileID, "tags")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	tags := edit(slices.Clone(file.Tags))
	if tags == nil {
		tags = []string{}
	}

	updated, err := client.UpdateFile(ctx, fileID, map[string]any{"tags": tags}, "id", "type", "name", "tags")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	return wrap("updated_file", updated)
}
