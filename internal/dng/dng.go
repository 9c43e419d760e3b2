// Package dng reads the TIFF header of a DNG file to recover dimensions
// and identity tags without decoding pixel data. DNG is TIFF 6.0 with
// extension tags, so a plain IFD0 walk is enough for what the inspector
// needs.
package dng

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/taku2365/llm-camera/internal/model"
)

const (
	leHeader = "II\x2A\x00"
	beHeader = "MM\x00\x2A"

	ifdEntryLen = 12

	tagImageWidth        = 256
	tagImageLength       = 257
	tagPhotometric       = 262
	tagMake              = 271
	tagModel             = 272
	photometricLinearRaw = 34892
)

// TIFF field types we decode.
const (
	dtByte  = 1
	dtASCII = 2
	dtShort = 3
	dtLong  = 4
)

// ErrNotTIFF reports a file that does not start with a TIFF header.
var ErrNotTIFF = errors.New("dng: not a TIFF header")

// ProbeFile opens path and probes its header. See Probe.
func ProbeFile(path string) (*model.DNGInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dng: open: %w", err)
	}
	defer f.Close()
	return Probe(f)
}

// Probe reads IFD0 from r and returns whatever subset of DNGInfo the
// header carries. The walk reads entries only, never strip data.
//
// ProRAW files store the full-resolution image in a SubIFD while IFD0
// holds a reduced preview; IFD0 dimensions are still what the original
// tooling reported, so that is what Probe returns.
func Probe(r io.ReaderAt) (*model.DNGInfo, error) {
	var hdr [8]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("dng: read header: %w", err)
	}

	var order binary.ByteOrder
	switch string(hdr[0:4]) {
	case leHeader:
		order = binary.LittleEndian
	case beHeader:
		order = binary.BigEndian
	default:
		return nil, ErrNotTIFF
	}

	ifdOffset := int64(order.Uint32(hdr[4:8]))

	var countBuf [2]byte
	if _, err := r.ReadAt(countBuf[:], ifdOffset); err != nil {
		return nil, fmt.Errorf("dng: read IFD0 count: %w", err)
	}
	n := int(order.Uint16(countBuf[:]))

	entries := make([]byte, n*ifdEntryLen)
	if _, err := r.ReadAt(entries, ifdOffset+2); err != nil {
		return nil, fmt.Errorf("dng: read IFD0 entries: %w", err)
	}

	info := &model.DNGInfo{}
	for i := 0; i < n; i++ {
		p := entries[i*ifdEntryLen : (i+1)*ifdEntryLen]
		tag := order.Uint16(p[0:2])
		switch tag {
		case tagImageWidth:
			if v, ok := entryUint(order, p); ok {
				info.Width = int(v)
			}
		case tagImageLength:
			if v, ok := entryUint(order, p); ok {
				info.Height = int(v)
			}
		case tagPhotometric:
			if v, ok := entryUint(order, p); ok {
				info.Linear = v == photometricLinearRaw
			}
		case tagMake:
			if s, err := entryASCII(r, order, p); err == nil {
				info.Make = s
			}
		case tagModel:
			if s, err := entryASCII(r, order, p); err == nil {
				info.Model = s
			}
		}
	}

	if info.Width == 0 || info.Height == 0 {
		return nil, errors.New("dng: IFD0 has no image dimensions")
	}
	return info, nil
}

// entryUint decodes a single-count SHORT or LONG entry value stored
// inline in the entry itself.
func entryUint(order binary.ByteOrder, p []byte) (uint32, bool) {
	count := order.Uint32(p[4:8])
	if count != 1 {
		return 0, false
	}
	switch order.Uint16(p[2:4]) {
	case dtShort:
		return uint32(order.Uint16(p[8:10])), true
	case dtLong:
		return order.Uint32(p[8:12]), true
	}
	return 0, false
}

// entryASCII decodes an ASCII entry, following the value offset when
// the string does not fit in the four inline bytes.
func entryASCII(r io.ReaderAt, order binary.ByteOrder, p []byte) (string, error) {
	if order.Uint16(p[2:4]) != dtASCII {
		return "", errors.New("dng: not an ASCII entry")
	}
	count := order.Uint32(p[4:8])
	if count == 0 || count > 4096 {
		return "", errors.New("dng: implausible ASCII length")
	}
	var raw []byte
	if count <= 4 {
		raw = p[8 : 8+count]
	} else {
		raw = make([]byte, count)
		if _, err := r.ReadAt(raw, int64(order.Uint32(p[8:12]))); err != nil {
			return "", fmt.Errorf("dng: read ASCII value: %w", err)
		}
	}
	return strings.TrimRight(string(raw), "\x00"), nil
}
