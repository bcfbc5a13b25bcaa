package tools

import (
	"context"

	"github.com/hashicorp-forge/boxkit/pkg/box"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type sharedLinkArgs struct {
	Access      string `json:"access,omitempty" jsonschema:"enum=open,enum=company,enum=collaborators"`
	CanDownload *bool  `json:"can_download,omitempty" jsonschema_description:"Defaults to true"`
	CanPreview  *bool  `json:"can_preview,omitempty" jsonschema_description:"Defaults to true"`
	Password    string `json:"password,omitempty"`
	VanityName  string `json:"vanity_name,omitempty"`
	UnsharedAt  string `json:"unshared_at,omitempty" jsonschema_description:"When the link expires"`
}

func (a sharedLinkArgs) options() toolkit.SharedLinkOptions {
	return toolkit.SharedLinkOptions{
		Access:           a.Access,
		DisallowDownload: a.CanDownload != nil && !*a.CanDownload,
		DisallowPreview:  a.CanPreview != nil && !*a.CanPreview,
		Password:         a.Password,
		VanityName:       a.VanityName,
		UnsharedAt:       a.UnsharedAt,
	}
}

type fileSharedLinkArgs struct {
	FileID      string `json:"file_id" jsonschema_description:"ID of the Box file"`
	Access      string `json:"access,omitempty" jsonschema:"enum=open,enum=company,enum=collaborators"`
	CanDownload *bool  `json:"can_download,omitempty" jsonschema_description:"Defaults to true"`
	CanPreview  *bool  `json:"can_preview,omitempty" jsonschema_description:"Defaults to true"`
	CanEdit     bool   `json:"can_edit,omitempty"`
	Password    string `json:"password,omitempty"`
	VanityName  string `json:"vanity_name,omitempty"`
	UnsharedAt  string `json:"unshared_at,omitempty" jsonschema_description:"When the link expires"`
}

type folderSharedLinkArgs struct {
	FolderID    string `json:"folder_id" jsonschema_description:"ID of the Box folder"`
	Access      string `json:"access,omitempty" jsonschema:"enum=open,enum=company,enum=collaborators"`
	CanDownload *bool  `json:"can_download,omitempty" jsonschema_description:"Defaults to true"`
	CanPreview  *bool  `json:"can_preview,omitempty" jsonschema_description:"Defaults to true"`
	Password    string `json:"password,omitempty"`
	VanityName  string `json:"vanity_name,omitempty"`
	UnsharedAt  string `json:"unshared_at,omitempty" jsonschema_description:"When the link expires"`
}

func sharedLinkTools() []*Tool {
	return []*Tool{
		define("SharedLinkFileCreate", "Create or replace the shared link of a file.",
			func(ctx context.Context, client *box.Client, a fileSharedLinkArgs) (map[string]any, error) {
				opts := sharedLinkArgs{
					Access:      a.Access,
					CanDownload: a.CanDownload,
					CanPreview:  a.CanPreview,
					Password:    a.Password,
					VanityName:  a.VanityName,
					UnsharedAt:  a.UnsharedAt,
				}.options()
				opts.AllowEdit = a.CanEdit
				return toolkit.SharedLinkFileCreate(ctx, client, a.FileID, opts)
			}),
		fileOp("SharedLinkFileGet", "Get the shared link of a file.", toolkit.SharedLinkFileGet),
		fileOp("SharedLinkFileRemove", "Remove the shared link of a file.", toolkit.SharedLinkFileRemove),
		define("SharedLinkFolderCreate", "Create or replace the shared link of a folder.",
			func(ctx context.Context, client *box.Client, a folderSharedLinkArgs) (map[string]any, error) {
				opts := sharedLinkArgs{
					Access:      a.Access,
					CanDownload: a.CanDownload,
					CanPreview:  a.CanPreview,
					Password:    a.Password,
					VanityName:  a.VanityName,
					UnsharedAt:  a.UnsharedAt,
				}.options()
				return toolkit.SharedLinkFolderCreate(ctx, client, a.FolderID, opts)
			}),
		folderOp("SharedLinkFolderGet", "Get the shared link of a folder.", toolkit.SharedLinkFolderGet),
		folderOp("SharedLinkFolderRemove", "Remove the shared link of a folder.", toolkit.SharedLinkFolderRemove),
	}
}
