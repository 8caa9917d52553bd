package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sumireworks/ybarc/pkg/byteio"
	"github.com/sumireworks/ybarc/pkg/manifest"
)

// buildV1 assembles a minimal v1 archive by hand: header, one record per
// name (0x10-byte name field, offset, size), 4 bytes of padding, then the
// payloads.
func buildV1(t *testing.T, names []string, payloads [][]byte) []byte {
	t.Helper()
	const filenameLength = entrySizeV1
	recordSize := filenameLength + 8
	preamble := 4 + len(names)*recordSize + 4

	offsets := make([]uint32, len(names))
	offset := uint32(preamble)
	for i, p := range payloads {
		offsets[i] = offset
		offset += uint32(len(p))
	}

	buf := make([]byte, offset)
	byteio.PutUint32LE(buf, 0, uint32(len(names)))
	pos := 4
	for i, name := range names {
		encoded, err := byteio.EncodeShiftJIS(modifiedName(name))
		if err != nil {
			t.Fatalf("encode %q: %v", name, err)
		}
		copy(buf[pos:pos+filenameLength], encoded)
		byteio.PutUint32LE(buf, pos+filenameLength, offsets[i])
		byteio.PutUint32LE(buf, pos+filenameLength+4, uint32(len(payloads[i])))
		pos += recordSize
	}
	pos += 4 // padding
	for i, p := range payloads {
		copy(buf[offsets[i]:], p)
	}
	return buf
}

func TestDetectIndex_V1(t *testing.T) {
	names := []string{"a.txt", "b.bin"}
	payloads := [][]byte{
		repeatByte('A', 10),
		repeatByte('B', 20),
	}
	data := buildV1(t, names, payloads)

	idx, err := detectIndex(data)
	if err != nil {
		t.Fatalf("detectIndex: %v", err)
	}
	if idx.Version != manifest.V1 {
		t.Fatalf("Version = %q, want v1", idx.Version)
	}
	if len(idx.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(idx.Entries))
	}
	if idx.Entries[0].Name != "a.txt" || idx.Entries[1].Name != "b.bin" {
		t.Errorf("Entries names = %q, %q", idx.Entries[0].Name, idx.Entries[1].Name)
	}
}

func TestExtract_V1Archive(t *testing.T) {
	names := []string{"a.txt", "b.bin"}
	payloads := [][]byte{
		repeatByte('A', 10),
		repeatByte('B', 20),
	}
	data := buildV1(t, names, payloads)

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "sample.arc")
	if err := os.WriteFile(archivePath, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	m, err := Extract(archivePath, ExtractOptions{OutputDir: outDir})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if m.Version != manifest.V1 {
		t.Fatalf("Version = %q, want v1", m.Version)
	}
	if len(m.Files) != 2 {
		t.Fatalf("Files = %v, want 2 entries", m.Files)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "a.txt"))
	if err != nil {
		t.Fatalf("ReadFile a.txt: %v", err)
	}
	if string(got) != string(payloads[0]) {
		t.Errorf("a.txt content mismatch")
	}

	if _, err := os.Stat(filepath.Join(outDir, "index.json")); err != nil {
		t.Errorf("index.json not written: %v", err)
	}
}

func TestExtract_ScriptMemberIsDecrypted(t *testing.T) {
	plain := []byte("the quick brown fox")
	key := []byte{0x5A}

	names := []string{"script.s"}
	payloads := [][]byte{xorOnce(plain, key)}
	data := buildV1(t, names, payloads)

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "scene_data.arc")
	if err := os.WriteFile(archivePath, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	if _, err := Extract(archivePath, ExtractOptions{OutputDir: outDir, Key: key}); err != nil {
		t.Fatalf("Extract: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "script.s"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(plain) {
		t.Errorf("decrypted script = %q, want %q", got, plain)
	}
}

func TestPackExtract_V3RoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	files := map[string][]byte{
		"hello.txt": []byte("hello, world"),
		"image.bmp": repeatByte('Z', 40),
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(srcDir, name), contents, 0644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}

	m := manifest.New(manifest.V3, nil, []string{"hello.txt", "image.bmp"})
	manifestPath := filepath.Join(dir, "index.json")
	if err := manifest.Save(manifestPath, m); err != nil {
		t.Fatalf("Save manifest: %v", err)
	}

	archivePath := filepath.Join(dir, "out.arc")
	if err := Pack(archivePath, PackOptions{SourceDir: srcDir, ManifestPath: manifestPath}); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	extractDir := filepath.Join(dir, "extracted")
	got, err := Extract(archivePath, ExtractOptions{OutputDir: extractDir})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Version != manifest.V3 {
		t.Fatalf("round-tripped Version = %q, want v3", got.Version)
	}
	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(extractDir, name))
		if err != nil {
			t.Fatalf("ReadFile %s: %v", name, err)
		}
		if string(data) != string(want) {
			t.Errorf("%s round-trip mismatch: got %q, want %q", name, data, want)
		}
	}
}

func repeatByte(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func xorOnce(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}
