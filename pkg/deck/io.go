package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal encodes a deck to compact JSON. Used for cache storage and hashing;
// the encoding is deterministic for a given deck value.
func Marshal(d *Deck) ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal deck: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a deck from JSON produced by [Marshal].
func Unmarshal(data []byte) (*Deck, error) {
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal deck: %w", err)
	}
	return &d, nil
}

// WriteJSON writes an indented JSON rendition of the deck to w.
// This is the human-facing export format.
func WriteJSON(d *Deck, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return nil
}

// ReadJSON decodes a deck from r.
func ReadJSON(r io.Reader) (*Deck, error) {
	var d Deck
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	return &d, nil
}

// ExportJSON writes the deck to a JSON file at path.
func ExportJSON(d *Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ImportJSON reads a deck from a JSON file at path.
func ImportJSON(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
