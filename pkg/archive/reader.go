package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sumireworks/ybarc/pkg/manifest"
	"github.com/sumireworks/ybarc/pkg/xorcipher"
)

// ExtractOptions configures Extract.
type ExtractOptions struct {
	OutputDir string
	Key       []byte
	Logger    *slog.Logger
}

// Extract reads an archive file, detects its index layout, writes every
// member under opts.OutputDir, and saves an index.json manifest
// alongside them. A member whose payload can't be read or written is
// logged and skipped rather than aborting the whole archive.
func Extract(archivePath string, opts ExtractOptions) (manifest.Manifest, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(archivePath)
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("archive: read %s: %w", archivePath, err)
	}
	if len(data) < 4 {
		return manifest.Manifest{}, fmt.Errorf("archive: %s too small to hold a header", archivePath)
	}

	idx, err := detectIndex(data)
	if err != nil {
		return manifest.Manifest{}, fmt.Errorf("archive: %s: %w", archivePath, err)
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return manifest.Manifest{}, fmt.Errorf("archive: create %s: %w", outDir, err)
	}

	archiveStem := trimArchiveStem(archivePath)

	files := make([]string, 0, len(idx.Entries))
	for _, entry := range idx.Entries {
		if err := extractMember(data, entry, archiveStem, outDir, opts.Key); err != nil {
			logger.Warn("skipping archive member", "archive", archivePath, "member", entry.Name, "error", err)
			continue
		}
		files = append(files, entry.Name)
	}

	m := manifest.New(idx.Version, opts.Key, files)
	if err := manifest.Save(filepath.Join(outDir, "index.json"), m); err != nil {
		return manifest.Manifest{}, err
	}
	return m, nil
}

func extractMember(data []byte, entry Entry, archiveStem, outDir string, key []byte) error {
	if uint64(entry.Offset)+uint64(entry.Size) > uint64(len(data)) {
		return fmt.Errorf("member range exceeds archive size")
	}
	payload := data[entry.Offset : entry.Offset+entry.Size]
	if isScript(archiveStem, entry.Name) {
		payload = xorcipher.XOR(payload, key)
	}

	outPath := filepath.Join(outDir, entry.Name)
	if dir := filepath.Dir(outPath); dir != outDir {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outPath, payload, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
