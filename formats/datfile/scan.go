package datfile

import (
	"encoding/binary"
	"io"
)

const (
	scanFields = 47

	// ScanHeaderSize is the byte length of the fixed scan header block;
	// the scan's mass stream starts immediately after it.
	ScanHeaderSize = scanFields * wordSize

	scanDelta  = 7
	scanNumber = 9
	scanACF    = 12
	scanTime   = 19
	scanEDAC   = 31
	scanFCF    = 35
)

// ScanHeader holds the scalar fields of one scan of a dat file.
type ScanHeader struct {
	// Number is the scan number recorded by the instrument.
	Number uint32
	Delta  uint32
	// ACF is the gain/calibration scalar of the scan.
	ACF uint32
	// Time is the elapsed time of the scan in milliseconds since the
	// file timestamp.
	Time uint32
	FCF  uint32
	// EDAC is the accelerating-voltage reference value, used to derive
	// the per-mass accelerating voltage.
	EDAC uint32
	// Fields is the full raw header, retained for forward compatibility.
	Fields [scanFields]uint32
	// DataOffset is the absolute byte offset of the scan's mass stream.
	DataOffset int64
}

// DecodeScanHeader reads the fixed scan header block at the given
// absolute offset.
func DecodeScanHeader(r io.ReadSeeker, offset int64) (*ScanHeader, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, ErrTruncated.AddDetails("seeking scan header: %s", err)
	}

	h := &ScanHeader{}
	if err := binary.Read(r, binary.LittleEndian, h.Fields[:]); err != nil {
		return nil, truncated("scan header", err)
	}

	h.Number = h.Fields[scanNumber]
	h.Delta = h.Fields[scanDelta]
	h.ACF = h.Fields[scanACF]
	h.Time = h.Fields[scanTime]
	h.FCF = h.Fields[scanFCF]
	h.EDAC = h.Fields[scanEDAC]
	h.DataOffset = offset + ScanHeaderSize

	return h, nil
}
