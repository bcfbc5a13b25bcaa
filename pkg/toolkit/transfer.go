package toolkit

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// LocalFs is the filesystem downloads are saved to and local uploads are
// read from.
var LocalFs afero.Fs = afero.NewOsFs()

// DownloadOptions controls where FileDownload saves the file.
type DownloadOptions struct {
	// SaveFile writes the content to the local filesystem.
	SaveFile bool

	// SavePath is a file path or an existing directory. Empty means the
	// system temp directory.
	SavePath string
}

// FileDownload downloads a file. Text content is returned as a string and
// anything else base64 encoded.
func FileDownload(
	ctx context.Context, client *box.Client, fileID string, opts DownloadOptions,
) (map[string]any, error) {
	const op = "FileDownload"
	if err := required(op, map[string]any{"file_id": fileID}); err != nil {
		return nil, err
	}

	file, err := client.GetFile(ctx, fileID, "id", "type", "name", "size")
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	content, _, err := client.FileContent(ctx, fileID)
	if err != nil {
		return nil, apiFailure(client, op, err)
	}

	mimeType, isText := detectMIME(file.Name, content)
	result := map[string]any{
		"file_id":   file.ID,
		"file_name": file.Name,
		"mime_type": mimeType,
		"size":      len(content),
	}
	if isText {
		result["content"] = string(content)
	} else {
		result["content"] = base64.StdEncoding.EncodeToString(content)
		result["encoding"] = "base64"
	}

	if opts.SaveFile {
		path, err := savePath(opts.SavePath, file.Name)
		if err != nil {
			return nil, &Error{Op: op, Err: err}
		}
		if err := afero.WriteFile(LocalFs, path, content, 0o644); err != nil {
			return nil, &Error{Op: op, Err: err, Msg: "error saving file"}
		}
		client.Logger().Debug("saved download", "file_id", fileID, "path", path)
		result["path_saved"] = path
	}
	return result, nil
}

// detectMIME sniffs content, falling back to the file extension when the
// content is not recognised.
func detectMIME(name string, content []byte) (string, bool) {
	detected := mimetype.Detect(content)
	mimeType := detected.String()
	if detected.Is("application/octet-stream") {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
			mimeType = byExt
		}
	}

	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return mimeType, true
		}
	}
	return mimeType, strings.HasPrefix(mimeType, "text/")
}

func savePath(path, name string) (string, error) {
	if path == "" {
		return filepath.Join(os.TempDir(), name), nil
	}
	isDir, err := afero.IsDir(LocalFs, path)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	if isDir {
		return filepath.Join(path, name), nil
	}
	return path, nil
}

// FileUpload uploads content as a new file. An empty parentFolderID
// uploads to the root folder.
func FileUpload(
	ctx context.Context, client *box.Client, content, fileName, parentFolderID string,
) (map[string]any, error) {
	const op = "FileUpload"
	if err := required(op, map[string]any{"file_name": fileName}); err != nil {
		return nil, err
	}
	return upload(ctx, client, op, []byte(content), fileName, parentFolderID)
}

// FileUploadFromPath uploads a local file. An empty fileName keeps the
// local base name.
func FileUploadFromPath(
	ctx context.Context, client *box.Client, localPath, fileName, parentFolderID string,
) (map[string]any, error) {
	const op = "FileUploadFromPath"
	if err := required(op, map[string]any{"local_path": localPath}); err != nil {
		return nil, err
	}

	content, err := afero.ReadFile(LocalFs, localPath)
	if err != nil {
		return nil, &Error{Op: op, Err: err, Msg: "error reading local file"}
	}
	if fileName == "" {
		fileName = filepath.Base(localPath)
	}
	return upload(ctx, client, op, content, fileName, parentFolderID)
}

func upload(
	ctx context.Context, client *box.Client, op string, content []byte, fileName, parentFolderID string,
) (map[string]any, error) {
	if parentFolderID == "" {
		parentFolderID = box.RootFolderID
	}

	page, err := client.UploadFile(ctx, fileName, parentFolderID, bytes.NewReader(content))
	if err != nil {
		return nil, apiFailure(client, op, err)
	}
	if len(page.Entries) == 0 {
		return nil, &Error{Op: op, Err: fmt.Errorf("upload response has no entries")}
	}

	uploaded := page.Entries[0]
	return map[string]any{
		"id":   uploaded.ID,
		"name": uploaded.Name,
		"type": uploaded.Type,
	}, nil
}
