package box

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadFile uploads content as a new file named name in parentID.
// Box answers with a one-entry collection of the created file.
func (c *Client) UploadFile(ctx context.Context, name, parentID string, content io.Reader) (*Page[File], error) {
	attributes, err := json.Marshal(map[string]any{
		"name":   name,
		"parent": map[string]string{"id": parentID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upload attributes: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	// Box requires attributes before the file part.
	if err := w.WriteField("attributes", string(attributes)); err != nil {
		return nil, fmt.Errorf("failed to write upload attributes: %w", err)
	}
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload body: %w", err)
	}

	var page Page[File]
	_, err = c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        "/files/content",
		Upload:      true,
		RawBody:     buf.Bytes(),
		ContentType: w.FormDataContentType(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
