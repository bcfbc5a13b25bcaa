package box

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RootFolderID is the id of every user's root folder.
const RootFolderID = "0"

// GetFolder returns a folder.
func (c *Client) GetFolder(ctx context.Context, folderID string, fields ...string) (*Folder, error) {
	var folder Folder
	if err := c.Get(ctx, "/folders/"+url.PathEscape(folderID), fieldsQuery(fields), &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListItemsOptions pages through a folder listing.
type ListItemsOptions struct {
	Marker string
	Limit  int
	Fields []string
}

// ListFolderItems returns one page of a folder's items using marker
// based paging.
func (c *Client) ListFolderItems(
	ctx context.Context, folderID string, opts ListItemsOptions,
) (*Page[Item], error) {
	q := pageQuery(fieldsQuery(opts.Fields), opts.Marker, opts.Limit)
	q.Set("usemarker", strconv.FormatBool(true))

	var page Page[Item]
	path := fmt.Sprintf("/folders/%s/items", url.PathEscape(folderID))
	if err := c.Get(ctx, path, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateFolder creates a folder under parentID.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	body := map[string]any{
		"name":   name,
		"parent": map[string]string{"id": parentID},
	}

	var folder Folder
	if err := c.Post(ctx, "/folders", nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// UpdateFolder changes folder attributes. A nil value in body is sent as
// JSON null.
func (c *Client) UpdateFolder(
	ctx context.Context, folderID string, body map[string]any, fields ...string,
) (*Folder, error) {
	var folder Folder
	if err := c.Put(ctx, "/folders/"+url.PathEscape(folderID), fieldsQuery(fields), body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// CopyFolder copies a folder into parentID, optionally renaming it.
func (c *Client) CopyFolder(ctx context.Context, folderID, parentID, name string) (*Folder, error) {
	body := map[string]any{
		"parent": map[string]string{"id": parentID},
	}
	if name != "" {
		body["name"] = name
	}

	var folder Folder
	path := fmt.Sprintf("/folders/%s/copy", url.PathEscape(folderID))
	if err := c.Post(ctx, path, nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder moves a folder to the trash. Non-empty folders require
// recursive.
func (c *Client) DeleteFolder(ctx context.Context, folderID string, recursive bool) error {
	q := url.Values{"recursive": {strconv.FormatBool(recursive)}}
	return c.Delete(ctx, "/folders/"+url.PathEscape(folderID), q)
}

// ListCollections returns the collections of the current user.
func (c *Client) ListCollections(ctx context.Context) (*Page[Collection], error) {
	var page Page[Collection]
	if err := c.Get(ctx, "/collections", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context, fields ...string) (*User, error) {
	var user User
	if err := c.Get(ctx, "/users/me", fieldsQuery(fields), &user); err != nil {
		return nil, err
	}
	return &user, nil
}
