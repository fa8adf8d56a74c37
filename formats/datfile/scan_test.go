package datfile

import (
	"bytes"
	"encoding/binary"

	. "gopkg.in/check.v1"
)

type ScanSuite struct{}

var _ = Suite(&ScanSuite{})

func (s *ScanSuite) TestDecodeScanHeader(c *C) {
	fields := [scanFields]uint32{}
	fields[scanNumber] = 3
	fields[scanDelta] = 11
	fields[scanACF] = 22
	fields[scanTime] = 1500
	fields[scanFCF] = 33
	fields[scanEDAC] = 4096

	buf := bytes.NewBuffer(make([]byte, 8))
	err := binary.Write(buf, binary.LittleEndian, fields[:])
	c.Assert(err, IsNil)

	h, err := DecodeScanHeader(bytes.NewReader(buf.Bytes()), 8)
	c.Assert(err, IsNil)
	c.Assert(h.Number, Equals, uint32(3))
	c.Assert(h.Delta, Equals, uint32(11))
	c.Assert(h.ACF, Equals, uint32(22))
	c.Assert(h.Time, Equals, uint32(1500))
	c.Assert(h.FCF, Equals, uint32(33))
	c.Assert(h.EDAC, Equals, uint32(4096))
	c.Assert(h.DataOffset, Equals, int64(8+ScanHeaderSize))
	c.Assert(h.Fields, Equals, fields)
}

func (s *ScanSuite) TestDecodeScanHeaderTruncated(c *C) {
	_, err := DecodeScanHeader(bytes.NewReader(make([]byte, 100)), 0)
	c.Assert(err, ErrorMatches, "truncated dat file: reading scan header: .*")
}
