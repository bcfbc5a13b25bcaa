package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type fileArgs struct {
	FileID string `json:"file_id" jsonschema_description:"ID of the Box file"`
}

type fileThumbnailArgs struct {
	FileID    string `json:"file_id" jsonschema_description:"ID of the Box file"`
	Extension string `json:"extension,omitempty" jsonschema:"enum=png,enum=jpg"`
	MinHeight int    `json:"min_height,omitempty" jsonschema:"minimum=32,maximum=320"`
	MinWidth  int    `json:"min_width,omitempty" jsonschema:"minimum=32,maximum=320"`
	MaxHeight int    `json:"max_height,omitempty" jsonschema:"minimum=32,maximum=320"`
	MaxWidth  int    `json:"max_width,omitempty" jsonschema:"minimum=32,maximum=320"`
}

func (a fileThumbnailArgs) options() toolkit.ThumbnailOptions {
	return toolkit.ThumbnailOptions{
		Extension: a.Extension,
		MinHeight: a.MinHeight,
		MinWidth:  a.MinWidth,
		MaxHeight: a.MaxHeight,
		MaxWidth:  a.MaxWidth,
	}
}

type fileCopyArgs struct {
	FileID              string `json:"file_id" jsonschema_description:"ID of the Box file"`
	DestinationFolderID string `json:"destination_folder_id" jsonschema_description:"Folder receiving the copy"`
	NewName             string `json:"new_name,omitempty"`
	Version             string `json:"version,omitempty" jsonschema_description:"File version to copy"`
}

type fileMoveArgs struct {
	FileID              string `json:"file_id" jsonschema_description:"ID of the Box file"`
	DestinationFolderID string `json:"destination_folder_id"`
}

type fileRenameArgs struct {
	FileID  string `json:"file_id" jsonschema_description:"ID of the Box file"`
	NewName string `json:"new_name"`
}

type fileDescriptionArgs struct {
	FileID      string `json:"file_id" jsonschema_description:"ID of the Box file"`
	Description string `json:"description"`
}

type fileRetentionArgs struct {
	FileID        string `json:"file_id" jsonschema_description:"ID of the Box file"`
	RetentionDate string `json:"retention_date" jsonschema_description:"Date or date-time; naive values use the user's timezone"`
}

type fileLockArgs struct {
	FileID          string `json:"file_id" jsonschema_description:"ID of the Box file"`
	ExpiresAt       string `json:"expires_at,omitempty" jsonschema_description:"When the lock expires"`
	PreventDownload bool   `json:"prevent_download,omitempty"`
}

type fileTagArgs struct {
	FileID string `json:"file_id" jsonschema_description:"ID of the Box file"`
	Tag    string `json:"tag"`
}

type fileDownloadArgs struct {
	FileID   string `json:"file_id" jsonschema_description:"ID of the Box file"`
	SaveFile bool   `json:"save_file,omitempty" jsonschema_description:"Also write the file to the local disk"`
	SavePath string `json:"save_path,omitempty" jsonschema_description:"File or directory to save to"`
}

type fileUploadArgs struct {
	Content        string `json:"content" jsonschema_description:"Text content of the new file"`
	FileName       string `json:"file_name"`
	ParentFolderID string `json:"parent_folder_id,omitempty" jsonschema_description:"Defaults to the root folder"`
}

type fileUploadPathArgs struct {
	LocalPath      string `json:"local_path"`
	FileName       string `json:"file_name,omitempty" jsonschema_description:"Defaults to the local base name"`
	ParentFolderID string `json:"parent_folder_id,omitempty" jsonschema_description:"Defaults to the root folder"`
}

// fileOp adapts toolkit operations that only take a file id.
func fileOp(
	op, description string, fn func(context.Context, *box.Client, string) (map[string]any, error),
) *Tool {
	return define(op, description, func(ctx context.Context, client *box.Client, a fileArgs) (map[string]any, error) {
		return fn(ctx, client, a.FileID)
	})
}

func fileTools() []*Tool {
	return []*Tool{
		fileOp("FileInfo", "Get the details of a file.", toolkit.FileInfo),
		define("FileThumbnailURL", "Get the URL of a file thumbnail.",
			func(ctx context.Context, client *box.Client, a fileThumbnailArgs) (map[string]any, error) {
				return toolkit.FileThumbnailURL(ctx, client, a.FileID, a.options())
			}),
		define("FileThumbnailDownload", "Download a file thumbnail image.",
			func(ctx context.Context, client *box.Client, a fileThumbnailArgs) (map[string]any, error) {
				return toolkit.FileThumbnailDownload(ctx, client, a.FileID, a.options())
			}),
		define("FileCopy", "Copy a file into a folder.",
			func(ctx context.Context, client *box.Client, a fileCopyArgs) (map[string]any, error) {
				return toolkit.FileCopy(ctx, client, a.FileID, a.DestinationFolderID, a.NewName, a.Version)
			}),
		define("FileMove", "Move a file into another folder.",
			func(ctx context.Context, client *box.Client, a fileMoveArgs) (map[string]any, error) {
				return toolkit.FileMove(ctx, client, a.FileID, a.DestinationFolderID)
			}),
		fileOp("FileDelete", "Move a file to the trash.", toolkit.FileDelete),
		define("FileRename", "Rename a file.",
			func(ctx context.Context, client *box.Client, a fileRenameArgs) (map[string]any, error) {
				return toolkit.FileRename(ctx, client, a.FileID, a.NewName)
			}),
		define("FileSetDescription", "Replace the description of a file.",
			func(ctx context.Context, client *box.Client, a fileDescriptionArgs) (map[string]any, error) {
				return toolkit.FileSetDescription(ctx, client, a.FileID, a.Description)
			}),
		define("FileRetentionDateSet", "Set the disposition date of a file under retention.",
			func(ctx context.Context, client *box.Client, a fileRetentionArgs) (map[string]any, error) {
				return toolkit.FileRetentionDateSet(ctx, client, a.FileID, a.RetentionDate)
			}),
		fileOp("FileRetentionDateClear", "Clear the disposition date of a file.", toolkit.FileRetentionDateClear),
		define("FileLock", "Lock a file against edits.",
			func(ctx context.Context, client *box.Client, a fileLockArgs) (map[string]any, error) {
				return toolkit.FileLock(ctx, client, a.FileID, a.ExpiresAt, a.PreventDownload)
			}),
		fileOp("FileUnlock", "Remove the lock on a file.", toolkit.FileUnlock),
		fileOp("FileSetDownloadOpen", "Allow anyone with access to download a file.", toolkit.FileSetDownloadOpen),
		fileOp("FileSetDownloadCompany", "Allow only company users to download a file.", toolkit.FileSetDownloadCompany),
		fileOp("FileSetDownloadReset", "Restore the default download permission of a file.", toolkit.FileSetDownloadReset),
		fileOp("FileTagList", "List the tags of a file.", toolkit.FileTagList),
		define("FileTagAdd", "Add a tag to a file.",
			func(ctx context.Context, client *box.Client, a fileTagArgs) (map[string]any, error) {
				return toolkit.FileTagAdd(ctx, client, a.FileID, a.Tag)
			}),
		define("FileTagRemove", "Remove a tag from a file.",
			func(ctx context.Context, client *box.Client, a fileTagArgs) (map[string]any, error) {
				return toolkit.FileTagRemove(ctx, client, a.FileID, a.Tag)
			}),
		fileOp("FileTextExtract", "Extract the text of a file as markdown or plain text.", toolkit.FileTextExtract),
		define("FileDownload", "Download the content of a file.",
			func(ctx context.Context, client *box.Client, a fileDownloadArgs) (map[string]any, error) {
				return toolkit.FileDownload(ctx, client, a.FileID, toolkit.DownloadOptions{
					SaveFile: a.SaveFile,
					SavePath: a.SavePath,
				})
			}),
		define("FileUpload", "Upload text content as a new file.",
			func(ctx context.Context, client *box.Client, a fileUploadArgs) (map[string]any, error) {
				return toolkit.FileUpload(ctx, client, a.Content, a.FileName, a.ParentFolderID)
			}),
		define("FileUploadFromPath", "Upload a local file.",
			func(ctx context.Context, client *box.Client, a fileUploadPathArgs) (map[string]any, error) {
				return toolkit.FileUploadFromPath(ctx, client, a.LocalPath, a.FileName, a.ParentFolderID)
			}),
	}
}
