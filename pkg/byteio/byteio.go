// Package byteio provides the little-endian integer and fixed-length
// Shift-JIS string primitives shared by the archive and image codec
// packages.
package byteio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadUint16LE reads a little-endian uint16 from r.
func ReadUint16LE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint16: %w", err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadUint32LE reads a little-endian uint32 from r.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint32: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteUint16LE writes v to w as a little-endian uint16.
func WriteUint16LE(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteUint32LE writes v to w as a little-endian uint32.
func WriteUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// Uint32LE reads a little-endian uint32 out of buf at the given offset.
// Panics if buf is too short, matching the teacher's direct-slice style
// for already-length-checked buffers.
func Uint32LE(buf []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(buf[offset : offset+4])
}

// PutUint32LE writes v into buf at the given offset as little-endian.
func PutUint32LE(buf []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], v)
}

// Uint16LE reads a little-endian uint16 out of buf at the given offset.
func Uint16LE(buf []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(buf[offset : offset+2])
}

// PutUint16LE writes v into buf at the given offset as little-endian.
func PutUint16LE(buf []byte, offset int, v uint16) {
	binary.LittleEndian.PutUint16(buf[offset:offset+2], v)
}
