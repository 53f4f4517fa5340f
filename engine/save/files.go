package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nathoo/turncore/types"
)

// FileStore keeps each storage container in its own JSON file under a
// directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(file int) string {
	return filepath.Join(s.dir, fmt.Sprintf("container_%d.json", file))
}

// Load returns the saved contents of container file.
func (s *FileStore) Load(ctx context.Context, file int) ([]types.Item, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(file))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read container %d: %w", file, err)
	}
	items, err := DecodeItems(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode container %d: %w", file, err)
	}
	return items, true, nil
}

// Save replaces the contents of container file.
func (s *FileStore) Save(ctx context.Context, file int, items []types.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeItems(items)
	if err != nil {
		return fmt.Errorf("encode container %d: %w", file, err)
	}
	if err := writeAtomic(s.path(file), data); err != nil {
		return fmt.Errorf("write container %d: %w", file, err)
	}
	return nil
}

// EncodeItems serializes container contents. Empty slots are dropped.
func EncodeItems(items []types.Item) ([]byte, error) {
	kept := make([]types.Item, 0, len(items))
	for _, it := range items {
		if it.Number > 0 {
			kept = append(kept, it)
		}
	}
	return json.Marshal(kept)
}

// DecodeItems is the inverse of EncodeItems.
func DecodeItems(data []byte) ([]types.Item, error) {
	var items []types.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
