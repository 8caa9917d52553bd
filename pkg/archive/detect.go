package archive

import (
	"github.com/sumireworks/ybarc/pkg/byteio"
	"github.com/sumireworks/ybarc/pkg/manifest"
)

// detectIndex tries each known layout in turn and returns the first one
// whose every entry validates. A layout is accepted only once ALL of its
// entries check out, never on the strength of the first plausible one,
// since a short filename_length guess can parse far enough to look
// right before producing garbage a few entries in.
func detectIndex(data []byte) (Index, error) {
	fileCount := byteio.Uint32LE(data, 0)
	if !isSaneFileCount(fileCount) {
		return Index{}, errNoFileCount
	}

	if len(data) >= 8 {
		filenameLength := byteio.Uint32LE(data, 4)
		if filenameLength >= 1 && filenameLength <= 0xFF {
			if idx, ok := tryParse(data, manifest.V3, int(filenameLength), 8, fileCount, 0); ok {
				return idx, nil
			}
		}
	}

	if idx, ok := tryParse(data, manifest.V1, entrySizeV1, 4, fileCount, 4); ok {
		return idx, nil
	}
	if idx, ok := tryParse(data, manifest.V2, entrySizeV2, 4, fileCount, 4); ok {
		return idx, nil
	}

	return Index{}, errUnrecognizedFormat
}

// tryParse attempts to read fileCount records of filenameLength+8 bytes
// starting at entriesOffset, followed by padding bytes of zero filler
// that count toward the index size (and hence the minimum valid member
// offset) but carry no data of their own. It returns ok=false on any
// record that fails to validate, without keeping partial results.
func tryParse(data []byte, version manifest.Version, filenameLength, entriesOffset int, fileCount uint32, padding int) (Index, bool) {
	recordSize := filenameLength + 8
	indexSize := entriesOffset + int(fileCount)*recordSize + padding
	if indexSize < 0 || indexSize > len(data) {
		return Index{}, false
	}

	entries := make([]Entry, 0, fileCount)
	pos := entriesOffset
	for i := uint32(0); i < fileCount; i++ {
		if pos+recordSize > len(data) {
			return Index{}, false
		}
		raw := data[pos : pos+filenameLength]
		offset := byteio.Uint32LE(data, pos+filenameLength)
		size := byteio.Uint32LE(data, pos+filenameLength+4)
		pos += recordSize

		name := decodeName(raw)
		if name == "" {
			return Index{}, false
		}
		if int(offset) < indexSize {
			return Index{}, false
		}
		if offset > offset+size || int(offset+size) > len(data) {
			return Index{}, false
		}

		entries = append(entries, Entry{Name: name, Offset: offset, Size: size})
	}

	return Index{Version: version, FilenameLength: filenameLength, Entries: entries}, true
}
