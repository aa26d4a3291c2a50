package models

// Asset is a binary blob referenced by id from note content.
type Asset struct {
	ID        string `json:"id"`
	MimeType  string `json:"mimeType"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"createdAt"`
	Data      []byte `json:"-"`
}

// AssetMeta describes an asset without its payload.
type AssetMeta struct {
	ID        string `json:"id"`
	MimeType  string `json:"mimeType"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"createdAt"`
}

// Meta strips the payload.
func (a Asset) Meta() AssetMeta {
	return AssetMeta{ID: a.ID, MimeType: a.MimeType, Size: a.Size, CreatedAt: a.CreatedAt}
}
