// Package pngenc writes minimal solid-color PNG files by assembling the
// chunk stream by hand: signature, IHDR, a single zlib-compressed IDAT,
// and the fixed IEND trailer. It supports exactly one shape (8-bit
// truecolor, non-interlaced, square, filter "None" on every scanline),
// which is all a placeholder icon needs.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrBadSize reports a non-positive image dimension.
var ErrBadSize = errors.New("pngenc: size must be positive")

// signature is the fixed 8-byte PNG file header.
var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// iendCRC is the CRC-32 of the empty IEND chunk (type bytes only).
// Constant for every PNG ever written, so it is not recomputed.
const iendCRC = 0xAE426082

// Color is an RGB triple. No alpha.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a 6-digit hex color, with or without a leading '#'.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("pngenc: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("pngenc: invalid hex color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// EncodeSolid returns the complete byte stream of a size×size solid-color
// PNG. Output is deterministic: the same inputs always produce identical
// bytes.
func EncodeSolid(size int, c Color) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSolid(&buf, size, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSolid writes a size×size solid-color PNG to w.
func WriteSolid(w io.Writer, size int, c Color) error {
	if size <= 0 {
		return ErrBadSize
	}

	if _, err := w.Write(signature); err != nil {
		return err
	}

	// IHDR: width, height, bit depth 8, color type 2 (truecolor),
	// compression 0, filter 0, interlace 0.
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(size))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(size))
	ihdr[8] = 8
	ihdr[9] = 2
	if err := writeChunk(w, "IHDR", ihdr); err != nil {
		return err
	}

	// Raw image data: per row, one filter byte (0 = None) then size
	// repetitions of the color.
	row := make([]byte, 1+size*3)
	for x := 0; x < size; x++ {
		row[1+x*3] = c.R
		row[1+x*3+1] = c.G
		row[1+x*3+2] = c.B
	}

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, zlib.BestCompression)
	if err != nil {
		return err
	}
	for y := 0; y < size; y++ {
		if _, err := zw.Write(row); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}

	if err := writeChunk(w, "IDAT", compressed.Bytes()); err != nil {
		return err
	}

	// IEND: zero length, no data, fixed CRC.
	var iend [12]byte
	copy(iend[4:8], "IEND")
	binary.BigEndian.PutUint32(iend[8:12], iendCRC)
	_, err = w.Write(iend[:])
	return err
}

// WriteSolidFile writes a size×size solid-color PNG to path, creating or
// truncating the file. I/O errors propagate to the caller untouched.
func WriteSolidFile(path string, size int, c Color) error {
	if size <= 0 {
		return ErrBadSize
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSolid(f, size, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeChunk writes one PNG chunk: 4-byte big-endian data length, 4-byte
// type tag, data, then CRC-32 over type+data.
func writeChunk(w io.Writer, typ string, data []byte) error {
	var head [8]byte
	binary.BigEndian.PutUint32(head[0:4], uint32(len(data)))
	copy(head[4:8], typ)
	if _, err := w.Write(head[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())
	_, err := w.Write(tail[:])
	return err
}
