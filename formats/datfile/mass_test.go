package datfile

import (
	"bytes"
	"encoding/binary"
	"io"

	. "gopkg.in/check.v1"
)

type MassSuite struct{}

var _ = Suite(&MassSuite{})

func word(key uint8, payload uint32) uint32 {
	return uint32(key)<<28 | payload&0x0FFFFFFF
}

func stream(words ...uint32) io.Reader {
	buf := bytes.NewBuffer(nil)
	for _, w := range words {
		binary.Write(buf, binary.LittleEndian, w)
	}

	return buf
}

func (s *MassSuite) TestDecodeMass(c *C) {
	r := stream(
		word(KeyBScan, 0),
		word(KeyMass, 0x40000),
		word(KeyVolt, 0x20000),
		word(KeyTime, 7),
		word(KeyB, 0),
		word(KeyData, 10),
		word(KeyData, 1<<24|3),
		word(KeyData, 1<<20|20),
		word(KeyData, 8<<20|30),
		word(KeyEOM, 100),
	)

	mass, err := DecodeMass(r, 4096)
	c.Assert(err, IsNil)
	c.Assert(mass.MagnetMass, Equals, 1.0)
	c.Assert(mass.AcceleratingVoltage, Equals, 4096*1000.0/float64(0x20000)/262144)
	c.Assert(mass.ChannelTime, Equals, uint32(7))
	c.Assert(mass.Duration, Equals, uint32(100))
	c.Assert(mass.Size, Equals, int64(40))
	c.Assert(mass.Measurements[Analog], DeepEquals, []int64{10, -3})
	c.Assert(mass.Measurements[Pulse], DeepEquals, []int64{20})
	c.Assert(mass.Measurements[Faraday], DeepEquals, []int64{30})
}

func (s *MassSuite) TestDecodeMassEndOfScan(c *C) {
	mass, err := DecodeMass(stream(word(KeyEOS, 0)), 0)
	c.Assert(err, Equals, io.EOF)
	c.Assert(mass, IsNil)
}

func (s *MassSuite) TestDecodeMassLastVoltageWins(c *C) {
	mass, err := DecodeMass(stream(
		word(KeyVolt, 0x10000),
		word(KeyVolt, 0x20000),
		word(KeyEOM, 1),
	), 4096)
	c.Assert(err, IsNil)
	c.Assert(mass.AcceleratingVoltage, Equals, 4096*1000.0/float64(0x20000)/262144)
}

func (s *MassSuite) TestDecodeMassDoubleChannelTime(c *C) {
	_, err := DecodeMass(stream(
		word(KeyTime, 1),
		word(KeyTime, 2),
		word(KeyEOM, 1),
	), 0)
	c.Assert(err, ErrorMatches, "malformed mass record: channel time already set")
}

func (s *MassSuite) TestDecodeMassZeroVoltageDivisor(c *C) {
	_, err := DecodeMass(stream(word(KeyVolt, 0), word(KeyEOM, 1)), 0)
	c.Assert(err, ErrorMatches, "malformed mass record: zero accelerating voltage divisor")
}

func (s *MassSuite) TestDecodeMassUnknownKey(c *C) {
	_, err := DecodeMass(stream(word(0x5, 0)), 0)
	c.Assert(err, ErrorMatches, "unknown key in mass record: key 0x5")
}

func (s *MassSuite) TestDecodeMassUnknownDataType(c *C) {
	_, err := DecodeMass(stream(word(KeyData, 2<<20|1)), 0)
	c.Assert(err, ErrorMatches, "unknown data type in mass record: data type 0x2")
}

func (s *MassSuite) TestDecodeMassTruncated(c *C) {
	_, err := DecodeMass(stream(word(KeyMass, 0x40000)), 0)
	c.Assert(err, ErrorMatches, "truncated dat file: reading mass record: .*")
}
