// Package archive implements the visual-novel asset container: a
// multi-version (v1, v2, v3) index format with ambiguous on-disk layout
// that is auto-detected on read and chosen by manifest on write, plus a
// conditional XOR stream cipher applied to script members.
package archive

import (
	"strings"

	"github.com/sumireworks/ybarc/pkg/manifest"
)

const (
	minFileCount = 1
	maxFileCount = 0xFFFFFF

	entrySizeV1 = 0x10
	entrySizeV2 = 0x38
)

// Entry is one parsed index record: the lowercased extraction name and
// the member's byte range within the archive.
type Entry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Index is a fully-validated parsed archive index: which version matched,
// the filename field width that produced it, and its entries in archive
// order.
type Index struct {
	Version        manifest.Version
	FilenameLength int
	Entries        []Entry
}

// isSaneFileCount is the predicate format detection uses to reject a
// word that plainly isn't a plausible entry count before even trying to
// parse an index with it.
func isSaneFileCount(n uint32) bool {
	return n >= minFileCount && n <= maxFileCount
}

// isScript reports whether a member is XOR-encrypted in this archive,
// per §3: the archive's own stem ends "_data", or the member name ends
// ".s" — either is sufficient.
func isScript(archiveStem, memberName string) bool {
	return strings.HasSuffix(strings.ToLower(archiveStem), "_data") ||
		strings.HasSuffix(strings.ToLower(memberName), ".s")
}
