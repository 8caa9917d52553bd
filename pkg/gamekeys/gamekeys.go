// Package gamekeys manages the user-editable gamekeys.json catalogue:
// display names mapped to Shift-JIS key literals used as the raw XOR key
// for script-bearing archives.
package gamekeys

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sumireworks/ybarc/pkg/byteio"
)

// Catalogue maps a display name to a Shift-JIS key literal.
type Catalogue map[string]string

// Seed returns the small built-in placeholder catalogue the tool ships
// with. Operators are expected to replace or extend these entries with
// their own game's actual key once they have it; the toolkit itself
// ships no real keys, per the format's conditional-encryption design.
func Seed() Catalogue {
	return Catalogue{
		"(none — no encryption)": "",
		"example":                "SAMPLEKEY",
	}
}

// Load reads path and JSON-decodes it into a Catalogue. If path does not
// exist, Load seeds a default catalogue, persists it via Save, and
// returns it, so a first run always leaves a real, editable file behind.
func Load(path string) (Catalogue, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c := Seed()
		if err := Save(path, c); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gamekeys: read %s: %w", path, err)
	}
	var c Catalogue
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("gamekeys: parse %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as indented, human-editable JSON.
func Save(path string, c Catalogue) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("gamekeys: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("gamekeys: write %s: %w", path, err)
	}
	return nil
}

// KeyBytes returns the raw XOR key for a catalogue entry: the Shift-JIS
// encoding of its literal, since the original game key material is
// itself Shift-JIS text.
func (c Catalogue) KeyBytes(name string) ([]byte, error) {
	literal, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("gamekeys: no entry named %q", name)
	}
	if literal == "" {
		return []byte{}, nil
	}
	key, err := byteio.EncodeShiftJIS(literal)
	if err != nil {
		return nil, fmt.Errorf("gamekeys: encode key for %q: %w", name, err)
	}
	return key, nil
}
