package datfile

import (
	"encoding/binary"
	"io"
)

const (
	headerStart  = 0x10
	headerFields = 85

	hdrIndexOffset = 33
	hdrIndexLen    = 39
	hdrTimestamp   = 40
)

// Header is the decoded fixed file header of a dat file, together with
// the scan offset table it points at.
type Header struct {
	// Timestamp is the acquisition time as raw instrument epoch seconds.
	Timestamp uint32
	// Fields is the full raw header, retained for forward compatibility.
	Fields [headerFields]uint32
	// Offsets are the absolute byte offsets of the scan headers, in
	// scan order.
	Offsets []uint32
}

// DecodeHeader reads the fixed file header block and the scan offset
// table it locates. The reader must be positioned at the start of the
// file; DecodeHeader seeks where it needs to.
func DecodeHeader(r io.ReadSeeker) (*Header, error) {
	if _, err := r.Seek(headerStart, io.SeekStart); err != nil {
		return nil, ErrTruncated.AddDetails("seeking file header: %s", err)
	}

	h := &Header{}
	if err := binary.Read(r, binary.LittleEndian, h.Fields[:]); err != nil {
		return nil, truncated("file header", err)
	}

	h.Timestamp = h.Fields[hdrTimestamp]

	if _, err := r.Seek(int64(h.Fields[hdrIndexOffset])+4, io.SeekStart); err != nil {
		return nil, ErrTruncated.AddDetails("seeking scan index: %s", err)
	}

	h.Offsets = make([]uint32, h.Fields[hdrIndexLen])
	if err := binary.Read(r, binary.LittleEndian, h.Offsets); err != nil {
		return nil, truncated("scan index", err)
	}

	return h, nil
}

// truncated wraps io errors from short reads, so that io.EOF cannot
// leak out of a decode and be mistaken for the end-of-scan sentinel.
func truncated(what string, err error) error {
	return ErrTruncated.AddDetails("reading %s: %s", what, err)
}
