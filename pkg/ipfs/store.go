package ipfs

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("content not found")
	ErrUnauthorized = errors.New("ipfs server rejected api key")
	ErrEmptyContent = errors.New("content is empty")
	ErrInvalidCID   = errors.New("invalid cid")
)

// Store is a content addressed blob store. CIDs are opaque strings; the same
// CID always yields the same content.
type Store interface {
	// UploadBytes stores raw content, typically an image, and returns its CID.
	UploadBytes(ctx context.Context, data []byte) (string, error)

	// UploadJSON stores the JSON encoding of v and returns its CID.
	UploadJSON(ctx context.Context, v interface{}) (string, error)

	// FetchJSON returns the JSON document stored under cid.
	FetchJSON(ctx context.Context, cid string) (json.RawMessage, error)

	// FetchBytes returns the raw content stored under cid.
	FetchBytes(ctx context.Context, cid string) ([]byte, error)
}

// DecodeJSON fetches cid and decodes it into out.
func DecodeJSON(ctx context.Context, store Store, cid string, out interface{}) error {
	raw, err := store.FetchJSON(ctx, cid)
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(raw, out), "invalid json under %s", cid)
}

// ValidateCID rejects values that cannot be placed in a URL path segment.
// Content addressing is left to the server.
func ValidateCID(cid string) error {
	if len(cid) == 0 {
		return ErrInvalidCID
	}
	for _, r := range cid {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.Wrapf(ErrInvalidCID, "unexpected character %q", r)
		}
	}
	return nil
}
