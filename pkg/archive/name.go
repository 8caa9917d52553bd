package archive

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/sumireworks/ybarc/pkg/byteio"
)

// decodeName splits a raw filename_length-byte name field into a
// lowercased extraction path: base name, then (if the bytes after the
// first null hold anything) a dot-joined extension.
func decodeName(raw []byte) string {
	null := bytes.IndexByte(raw, 0)
	if null == -1 {
		return strings.ToLower(byteio.ReadFixedShiftJIS(raw))
	}
	base := byteio.ReadFixedShiftJIS(raw[:null])
	rest := bytes.TrimRight(raw[null+1:], "\x00")
	if len(rest) == 0 {
		return strings.ToLower(base)
	}
	ext := byteio.ReadFixedShiftJIS(rest)
	return strings.ToLower(base + "." + ext)
}

// modifiedName applies the archive's on-disk name transform to a source
// filename: a ".s" extension becomes a null-then-"S" suffix (so it reads
// back as the same ".s" extension case-insensitively), any other
// extension is null-separated, and an extensionless name is left bare.
// The whole thing is then uppercased, matching the writer's stored form.
func modifiedName(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	base := strings.TrimSuffix(name, filepath.Ext(name))

	var modified string
	switch {
	case strings.EqualFold(ext, "s"):
		modified = base + "\x00S"
	case ext != "":
		modified = base + "\x00" + ext
	default:
		modified = base
	}
	return strings.ToUpper(modified)
}
