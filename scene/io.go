package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// EnsureIDs gives every connector without an id, or with an id already used
// by an earlier connector, a fresh uuid. It returns the number of ids set.
func (s *Scene) EnsureIDs() int {
	seen := make(map[string]bool, len(s.Connectors))
	assigned := 0
	for i := range s.Connectors {
		c := &s.Connectors[i]
		if c.ID == "" || seen[c.ID] {
			c.ID = uuid.NewString()
			assigned++
		}
		seen[c.ID] = true
	}
	return assigned
}

// Load decodes a scene from JSON.
func Load(r io.Reader) (*Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

// LoadFile reads a scene from a JSON file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save encodes the scene as indented JSON.
func (s *Scene) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// SaveFile writes the scene to a JSON file.
func (s *Scene) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene file: %w", err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
