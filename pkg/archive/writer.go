package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sumireworks/ybarc/pkg/byteio"
	"github.com/sumireworks/ybarc/pkg/manifest"
	"github.com/sumireworks/ybarc/pkg/xorcipher"
)

// PackOptions configures Pack.
type PackOptions struct {
	SourceDir    string
	ManifestPath string
}

type packMember struct {
	rawName string
	encoded []byte // modifiedName, Shift-JIS encoded, unpadded
	payload []byte
}

// Pack reads a manifest and the files it names from opts.SourceDir and
// writes a single archive to outputPath using the manifest's declared
// version layout. Members are written contiguously in manifest order
// starting immediately after the index.
func Pack(outputPath string, opts PackOptions) error {
	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return err
	}
	key, err := m.KeyBytes()
	if err != nil {
		return err
	}

	archiveStem := trimArchiveStem(outputPath)

	members := make([]packMember, 0, len(m.Files))
	for _, name := range m.Files {
		payload, err := os.ReadFile(filepath.Join(opts.SourceDir, name))
		if err != nil {
			return fmt.Errorf("archive: read member %s: %w", name, err)
		}
		if isScript(archiveStem, name) {
			payload = xorcipher.XOR(payload, key)
		}
		encoded, err := byteio.EncodeShiftJIS(modifiedName(name))
		if err != nil {
			return fmt.Errorf("archive: encode name %q: %w", name, err)
		}
		members = append(members, packMember{rawName: name, encoded: encoded, payload: payload})
	}

	headerSize, filenameLength, padding, err := layoutFor(m.Version, members)
	if err != nil {
		return err
	}

	recordSize := filenameLength + 8
	preamble := headerSize + len(members)*recordSize + padding

	offsets := make([]uint32, len(members))
	offset := uint32(preamble)
	for i, mem := range members {
		offsets[i] = offset
		if int(offset)+len(mem.payload) < int(offset) {
			return fmt.Errorf("archive: archive size overflow at member %q", mem.rawName)
		}
		offset += uint32(len(mem.payload))
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", outputPath, err)
	}
	defer out.Close()

	header := make([]byte, headerSize)
	byteio.PutUint32LE(header, 0, uint32(len(members)))
	if headerSize == 8 {
		byteio.PutUint32LE(header, 4, uint32(filenameLength))
	}
	if _, err := out.Write(header); err != nil {
		return fmt.Errorf("archive: write header: %w", err)
	}

	for i, mem := range members {
		record := make([]byte, recordSize)
		copy(record, mem.encoded)
		byteio.PutUint32LE(record, filenameLength, offsets[i])
		byteio.PutUint32LE(record, filenameLength+4, uint32(len(mem.payload)))
		if _, err := out.Write(record); err != nil {
			return fmt.Errorf("archive: write index record for %q: %w", mem.rawName, err)
		}
	}

	if padding > 0 {
		if _, err := out.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("archive: write padding: %w", err)
		}
	}

	for i, mem := range members {
		pos, err := out.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("archive: seek: %w", err)
		}
		if uint32(pos) != offsets[i] {
			return fmt.Errorf("archive: offset mismatch writing %q: at %d, expected %d", mem.rawName, pos, offsets[i])
		}
		if _, err := out.Write(mem.payload); err != nil {
			return fmt.Errorf("archive: write payload for %q: %w", mem.rawName, err)
		}
	}

	return nil
}

// layoutFor derives the header size, filename field width, and padding
// for a manifest's declared version, validating that every modified name
// fits the field v1/v2 requires at least one trailing null for.
func layoutFor(version manifest.Version, members []packMember) (headerSize, filenameLength, padding int, err error) {
	switch version {
	case manifest.V1:
		headerSize, filenameLength, padding = 4, entrySizeV1, 4
	case manifest.V2:
		headerSize, filenameLength, padding = 4, entrySizeV2, 4
	case manifest.V3:
		headerSize, padding = 8, 0
		for _, mem := range members {
			if n := len(mem.encoded); n > filenameLength {
				filenameLength = n
			}
		}
		if filenameLength == 0 {
			filenameLength = 1
		}
		return headerSize, filenameLength, padding, nil
	default:
		return 0, 0, 0, fmt.Errorf("archive: unknown manifest version %q", version)
	}

	for _, mem := range members {
		if len(mem.encoded) >= filenameLength {
			return 0, 0, 0, fmt.Errorf("archive: name %q (%d bytes) does not fit filename_length %d", mem.rawName, len(mem.encoded), filenameLength)
		}
	}
	return headerSize, filenameLength, padding, nil
}

func trimArchiveStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
