// Package manifest models the index.json sidecar that accompanies an
// extracted archive: the detected version, the XOR key (if any), and the
// ordered list of member names the writer needs to reproduce a
// byte-compatible archive.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Version identifies which on-disk archive layout a manifest describes.
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"
	V3 Version = "v3"
)

// Manifest is the JSON-serializable contents of index.json.
type Manifest struct {
	Version Version  `json:"Version"`
	Key     string   `json:"Key"`
	Files   []string `json:"Files"`
}

// New builds a manifest from a detected version, raw key bytes, and the
// archive-order member names. Key is hex-encoded uppercase; an empty key
// serializes as "" rather than being omitted, matching the reader's own
// index.json output.
func New(version Version, key []byte, files []string) Manifest {
	return Manifest{
		Version: version,
		Key:     KeyString(key),
		Files:   append([]string{}, files...),
	}
}

// KeyBytes hex-decodes Key back into raw bytes. An empty Key decodes to
// an empty (non-nil) slice, which pkg/xorcipher.XOR treats as "no key".
func (m Manifest) KeyBytes() ([]byte, error) {
	if m.Key == "" {
		return []byte{}, nil
	}
	key, err := hex.DecodeString(m.Key)
	if err != nil {
		return nil, fmt.Errorf("manifest: invalid Key hex: %w", err)
	}
	return key, nil
}

// Load reads and JSON-decodes a manifest from path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	return m, nil
}

// Save writes m to path as indented, human-editable JSON.
func Save(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// KeyString formats raw key bytes the way Manifest.Key expects: uppercase hex,
// empty string for an empty key.
func KeyString(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	return fmt.Sprintf("%X", key)
}
