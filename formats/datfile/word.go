package datfile

// Key values discriminating the interpretation of each record word.
const (
	KeyData  = 0x1 // measurement value
	KeyMass  = 0x2 // magnet mass
	KeyTime  = 0x3 // channel time
	KeyVolt  = 0x4 // accelerating voltage
	KeyEOM   = 0x8 // end of mass
	KeyB     = 0xB // unknown, carried by the instrument, ignored
	KeyBScan = 0xC // B-scan, ignored
	KeyEOS   = 0xF // end of scan
)

const wordSize = 4

// Word is one little-endian 32-bit record word of a mass stream: a
// 4-bit key in the high nibble selecting the interpretation of the
// 28-bit payload below it.
type Word uint32

// Key returns the 4-bit discriminator of the word.
func (w Word) Key() uint8 { return uint8(w >> 28) }

// Payload returns the low 28 bits of the word.
func (w Word) Payload() uint32 { return uint32(w) & 0x0FFFFFFF }

// ChannelType identifies the detector category a measurement value
// belongs to.
type ChannelType int8

// Possible values of the ChannelType type.
const (
	Analog ChannelType = iota
	Pulse
	Faraday
)

func (t ChannelType) String() string {
	switch t {
	case Analog:
		return "analog"
	case Pulse:
		return "pulse"
	case Faraday:
		return "faraday"
	}

	return "unknown"
}

// detector category codes carried in the dataChannel sub-field
const (
	dataAnalog  = 0x0
	dataPulse   = 0x1
	dataFaraday = 0x8
)

// Sub-fields of a KeyData payload. The value is stored as a 16-bit
// magnitude shifted left by a 4-bit exponent; a non-zero flag nibble
// negates it.
func dataFlag(payload uint32) uint32 { return payload >> 24 & 0xF }

func dataChannel(payload uint32) uint32 { return payload >> 20 & 0xF }

func dataExponent(payload uint32) uint32 { return payload >> 16 & 0xF }

func dataMagnitude(payload uint32) uint32 { return payload & 0xFFFF }

// decodeDataWord decodes the payload of a KeyData word into its channel
// category and signed measurement value.
func decodeDataWord(payload uint32) (ChannelType, int64, error) {
	value := int64(dataMagnitude(payload)) << dataExponent(payload)
	if dataFlag(payload) != 0 {
		value = -value
	}

	switch dataChannel(payload) {
	case dataAnalog:
		return Analog, value, nil
	case dataPulse:
		return Pulse, value, nil
	case dataFaraday:
		return Faraday, value, nil
	}

	return 0, 0, ErrUnknownDataType.AddDetails("data type %#x", dataChannel(payload))
}
