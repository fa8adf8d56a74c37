package datfile

import (
	"bytes"
	"encoding/binary"

	. "gopkg.in/check.v1"
)

type HeaderSuite struct{}

var _ = Suite(&HeaderSuite{})

func (s *HeaderSuite) TestDecodeHeader(c *C) {
	file := make([]byte, 512+4+8)
	put := func(offset int, v uint32) {
		binary.LittleEndian.PutUint32(file[offset:], v)
	}

	put(headerStart+hdrTimestamp*4, 1400000000)
	put(headerStart+hdrIndexLen*4, 2)
	put(headerStart+hdrIndexOffset*4, 512)
	put(512+4, 600)
	put(512+8, 700)

	h, err := DecodeHeader(bytes.NewReader(file))
	c.Assert(err, IsNil)
	c.Assert(h.Timestamp, Equals, uint32(1400000000))
	c.Assert(h.Offsets, DeepEquals, []uint32{600, 700})
	c.Assert(h.Fields[hdrTimestamp], Equals, uint32(1400000000))
}

func (s *HeaderSuite) TestDecodeHeaderTruncated(c *C) {
	_, err := DecodeHeader(bytes.NewReader(make([]byte, 64)))
	c.Assert(err, ErrorMatches, "truncated dat file: reading file header: .*")
}

func (s *HeaderSuite) TestDecodeHeaderTruncatedIndex(c *C) {
	file := make([]byte, headerStart+headerFields*4)
	binary.LittleEndian.PutUint32(file[headerStart+hdrIndexLen*4:], 4)
	binary.LittleEndian.PutUint32(file[headerStart+hdrIndexOffset*4:], 1024)

	_, err := DecodeHeader(bytes.NewReader(file))
	c.Assert(err, ErrorMatches, "truncated dat file: reading scan index: .*")
}
