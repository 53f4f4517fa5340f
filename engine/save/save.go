// Package save implements JSON session snapshots and the file-backed store
// for numbered storage containers.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathoo/turncore/types"
)

// Version is the session format version written by Marshal.
const Version = 1

// Session is the JSON-serializable save format.
type Session struct {
	Version     int          `json:"version"`
	Game        string       `json:"game"`
	Turn        int          `json:"turn"`
	RNGSeed     int64        `json:"rng_seed"`
	RNGPosition int64        `json:"rng_position"`
	World       *types.World `json:"world"`
}

// Marshal serializes a session to JSON bytes.
func Marshal(s Session) ([]byte, error) {
	s.Version = Version
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes a session and checks that it can be resumed.
func Unmarshal(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Version != Version {
		return nil, fmt.Errorf("unsupported save version %d", s.Version)
	}
	if s.World == nil {
		return nil, errors.New("save has no world")
	}
	if len(s.World.Map.Cells) != s.World.Map.Width*s.World.Map.Height {
		return nil, fmt.Errorf("save map has %d cells, want %d", len(s.World.Map.Cells), s.World.Map.Width*s.World.Map.Height)
	}
	return &s, nil
}

// WriteFile saves a session to path, replacing any previous save.
func WriteFile(path string, s Session) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// ReadFile loads a session from path.
func ReadFile(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// writeAtomic writes data next to path and renames it into place so a
// crash never leaves a truncated file behind.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
