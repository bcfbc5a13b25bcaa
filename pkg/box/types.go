package box

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Raw keeps the JSON document a response value was decoded from. Box
// returns many more fields than the structs in this package model, and
// callers that pass responses through use RawJSON to see all of them.
type Raw struct {
	raw json.RawMessage
}

// RawJSON returns the document the value was decoded from, or nil when
// the value was built locally.
func (r *Raw) RawJSON() json.RawMessage {
	return r.raw
}

func (r *Raw) setRaw(data []byte) {
	r.raw = append(json.RawMessage(nil), data...)
}

// rawSetter is implemented by every type that embeds Raw.
type rawSetter interface {
	setRaw(data []byte)
}

// Page is a page of a Box collection. Offset based endpoints fill
// TotalCount and Offset, marker based endpoints fill NextMarker.
type Page[T any] struct {
	TotalCount int    `json:"total_count,omitempty"`
	Entries    []T    `json:"entries"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
	NextMarker string `json:"next_marker,omitempty"`
	PrevMarker string `json:"prev_marker,omitempty"`

	raw json.RawMessage
}

type pageDocument struct {
	TotalCount int               `json:"total_count"`
	Entries    []json.RawMessage `json:"entries"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
	NextMarker *string           `json:"next_marker"`
	PrevMarker *string           `json:"prev_marker"`
}

// UnmarshalJSON decodes the page and keeps the document of the page and
// of each entry.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var doc pageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	entries := make([]T, len(doc.Entries))
	for i, e := range doc.Entries {
		if err := json.Unmarshal(e, &entries[i]); err != nil {
			return err
		}
		if r, ok := any(&entries[i]).(rawSetter); ok {
			r.setRaw(e)
		}
	}

	*p = Page[T]{
		TotalCount: doc.TotalCount,
		Entries:    entries,
		Limit:      doc.Limit,
		Offset:     doc.Offset,
		raw:        append(json.RawMessage(nil), data...),
	}
	if doc.NextMarker != nil {
		p.NextMarker = *doc.NextMarker
	}
	if doc.PrevMarker != nil {
		p.PrevMarker = *doc.PrevMarker
	}
	return nil
}

// RawJSON returns the document the page was decoded from.
func (p *Page[T]) RawJSON() json.RawMessage {
	return p.raw
}

// ItemMini is the compact reference Box embeds for parents and paths.
type ItemMini struct {
	Raw

	Type       string `json:"type"`
	ID         string `json:"id"`
	SequenceID string `json:"sequence_id,omitempty"`
	ETag       string `json:"etag,omitempty"`
	Name       string `json:"name,omitempty"`
}

// UserMini is the compact user reference.
type UserMini struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Login string `json:"login,omitempty"`
}

// User is a Box user.
type User struct {
	Raw

	Type          string     `json:"type"`
	ID            string     `json:"id"`
	Name          string     `json:"name,omitempty"`
	Login         string     `json:"login,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	ModifiedAt    *time.Time `json:"modified_at,omitempty"`
	Language      string     `json:"language,omitempty"`
	Timezone      string     `json:"timezone,omitempty"`
	SpaceAmount   int64      `json:"space_amount,omitempty"`
	SpaceUsed     int64      `json:"space_used,omitempty"`
	MaxUploadSize int64      `json:"max_upload_size,omitempty"`
	Status        string     `json:"status,omitempty"`
	JobTitle      string     `json:"job_title,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	Enterprise    *ItemMini  `json:"enterprise,omitempty"`
}

// PathCollection lists the ancestors of an item, root first.
type PathCollection struct {
	TotalCount int        `json:"total_count"`
	Entries    []ItemMini `json:"entries"`
}

// ItemBase holds the fields shared by files, folders and web links.
type ItemBase struct {
	Raw

	Type              string          `json:"type"`
	ID                string          `json:"id"`
	SequenceID        string          `json:"sequence_id,omitempty"`
	ETag              string          `json:"etag,omitempty"`
	Name              string          `json:"name,omitempty"`
	Description       string          `json:"description,omitempty"`
	Size              int64           `json:"size,omitempty"`
	PathCollection    *PathCollection `json:"path_collection,omitempty"`
	CreatedAt         *time.Time      `json:"created_at,omitempty"`
	ModifiedAt        *time.Time      `json:"modified_at,omitempty"`
	TrashedAt         *time.Time      `json:"trashed_at,omitempty"`
	PurgedAt          *time.Time      `json:"purged_at,omitempty"`
	ContentCreatedAt  *time.Time      `json:"content_created_at,omitempty"`
	ContentModifiedAt *time.Time      `json:"content_modified_at,omitempty"`
	CreatedBy         *UserMini       `json:"created_by,omitempty"`
	ModifiedBy        *UserMini       `json:"modified_by,omitempty"`
	OwnedBy           *UserMini       `json:"owned_by,omitempty"`
	Parent            *ItemMini       `json:"parent,omitempty"`
	ItemStatus        string          `json:"item_status,omitempty"`
	SharedLink        *SharedLink     `json:"shared_link,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
	Collections       []ItemMini      `json:"collections,omitempty"`
	Permissions       map[string]bool `json:"permissions,omitempty"`
}

// FileVersion identifies a version of a file.
type FileVersion struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	SHA1 string `json:"sha1,omitempty"`
}

// Lock is a lock held on a file.
type Lock struct {
	Type                string     `json:"type,omitempty"`
	ID                  string     `json:"id,omitempty"`
	CreatedBy           *UserMini  `json:"created_by,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	ExpiredAt           *time.Time `json:"expired_at,omitempty"`
	IsDownloadPrevented bool       `json:"is_download_prevented"`
	AppType             string     `json:"app_type,omitempty"`
}

// File is a Box file.
type File struct {
	ItemBase
	SHA1            string           `json:"sha1,omitempty"`
	Extension       string           `json:"extension,omitempty"`
	FileVersion     *FileVersion     `json:"file_version,omitempty"`
	Lock            *Lock            `json:"lock,omitempty"`
	DispositionAt   *time.Time       `json:"disposition_at,omitempty"`
	CommentCount    int              `json:"comment_count,omitempty"`
	Representations *Representations `json:"representations,omitempty"`
}

// UploadEmail is the email address that uploads into a folder.
type UploadEmail struct {
	Access string `json:"access,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Folder is a Box folder.
type Folder struct {
	ItemBase
	ItemCollection                        *Page[Item]  `json:"item_collection,omitempty"`
	FolderUploadEmail                     *UploadEmail `json:"folder_upload_email,omitempty"`
	HasCollaborations                     *bool        `json:"has_collaborations,omitempty"`
	CanNonOwnersInvite                    *bool        `json:"can_non_owners_invite,omitempty"`
	CanNonOwnersViewCollaborators         *bool        `json:"can_non_owners_view_collaborators,omitempty"`
	IsCollaborationRestrictedToEnterprise *bool        `json:"is_collaboration_restricted_to_enterprise,omitempty"`
}

// Item is an entry of a mixed listing: a file, folder or web link.
type Item struct {
	ItemBase
	SHA1        string       `json:"sha1,omitempty"`
	Extension   string       `json:"extension,omitempty"`
	FileVersion *FileVersion `json:"file_version,omitempty"`

	// URL is set for web links.
	URL string `json:"url,omitempty"`
}

// SharedLinkPermissions controls what a shared link allows.
type SharedLinkPermissions struct {
	CanDownload *bool `json:"can_download,omitempty"`
	CanPreview  *bool `json:"can_preview,omitempty"`
	CanEdit     *bool `json:"can_edit,omitempty"`
}

// SharedLink is the shared link of an item.
type SharedLink struct {
	URL                 string                 `json:"url,omitempty"`
	DownloadURL         string                 `json:"download_url,omitempty"`
	VanityURL           string                 `json:"vanity_url,omitempty"`
	VanityName          string                 `json:"vanity_name,omitempty"`
	Access              string                 `json:"access,omitempty"`
	EffectiveAccess     string                 `json:"effective_access,omitempty"`
	EffectivePermission string                 `json:"effective_permission,omitempty"`
	UnsharedAt          *time.Time             `json:"unshared_at,omitempty"`
	IsPasswordEnabled   bool                   `json:"is_password_enabled,omitempty"`
	Permissions         *SharedLinkPermissions `json:"permissions,omitempty"`
	DownloadCount       int                    `json:"download_count,omitempty"`
	PreviewCount        int                    `json:"preview_count,omitempty"`
}

// SharedLinkSettings is the request body used to create or change a
// shared link.
type SharedLinkSettings struct {
	Access      string                 `json:"access,omitempty"`
	Password    string                 `json:"password,omitempty"`
	VanityName  string                 `json:"vanity_name,omitempty"`
	UnsharedAt  *time.Time             `json:"unshared_at,omitempty"`
	Permissions *SharedLinkPermissions `json:"permissions,omitempty"`
}

// Collection is a user collection such as Favorites.
type Collection struct {
	Raw

	Type           string `json:"type"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	CollectionType string `json:"collection_type,omitempty"`
}

// fieldsQuery builds the fields query parameter, or nil when no fields
// are requested.
func fieldsQuery(fields []string) url.Values {
	if len(fields) == 0 {
		return nil
	}
	return url.Values{"fields": {strings.Join(fields, ",")}}
}

// pageQuery adds marker paging parameters to q.
func pageQuery(q url.Values, marker string, limit int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if marker != "" {
		q.Set("marker", marker)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func versionHeader() http.Header {
	return http.Header{"Box-Version": {APIVersion2025}}
}
