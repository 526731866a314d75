package memory

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/captain-sol/voyage-client/pkg/ipfs"
)

// Store is an in memory ipfs.Store. CIDs are derived from a SHA-256 of the
// content, so identical uploads share a CID.
type Store struct {
	mu      sync.RWMutex
	content map[string][]byte

	// FetchErrs makes fetches of specific CIDs fail.
	FetchErrs map[string]error

	fetches int
}

func New() *Store {
	return &Store{
		content:   make(map[string][]byte),
		FetchErrs: make(map[string]error),
	}
}

// CID returns the identifier data would be stored under.
func CID(data []byte) string {
	hash := sha256.Sum256(data)
	return "bafk" + base58.Encode(hash[:])
}

func (s *Store) UploadBytes(_ context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ipfs.ErrEmptyContent
	}
	return s.put(data), nil
}

func (s *Store) UploadJSON(_ context.Context, v interface{}) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode json")
	}
	if string(encoded) == "null" || string(encoded) == "{}" {
		return "", ipfs.ErrEmptyContent
	}
	return s.put(encoded), nil
}

func (s *Store) FetchJSON(ctx context.Context, cid string) (json.RawMessage, error) {
	data, err := s.FetchBytes(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, errors.Errorf("content under %s is not json", cid)
	}
	return data, nil
}

func (s *Store) FetchBytes(_ context.Context, cid string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetches++

	if err, ok := s.FetchErrs[cid]; ok {
		return nil, err
	}

	data, ok := s.content[cid]
	if !ok {
		return nil, errors.Wrap(ipfs.ErrNotFound, cid)
	}
	return append([]byte(nil), data...), nil
}

// Fetches is the number of fetch calls served, including failures.
func (s *Store) Fetches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetches
}

func (s *Store) put(data []byte) string {
	cid := CID(data)

	s.mu.Lock()
	s.content[cid] = append([]byte(nil), data...)
	s.mu.Unlock()

	return cid
}
