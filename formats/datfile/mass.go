package datfile

import (
	"encoding/binary"
	"io"
)

// fixedPoint is the scale of the 18-bit fixed-point fraction used by
// the magnet mass and accelerating voltage encodings.
const fixedPoint = 1 << 18

// Mass is one decoded mass record of a scan.
type Mass struct {
	// MagnetMass is the mass-to-charge setting of the record.
	MagnetMass float64
	// AcceleratingVoltage is derived from the record's encoded value and
	// the owning scan's EDAC reference.
	AcceleratingVoltage float64
	// ChannelTime is the channel dwell/settle time in raw ticks.
	ChannelTime uint32
	// Duration is the record duration in raw ticks.
	Duration uint32
	// Measurements holds the signed measurement values per channel
	// category, in arrival order, which is physical channel order.
	Measurements map[ChannelType][]int64
	// Size is the byte length of the record, end-of-mass word included.
	Size int64

	hasChannelTime bool
	hasDuration    bool
}

// DecodeMass decodes one mass record from the word stream at the
// current position of r. edac is the owning scan's EDAC reference
// value.
//
// It returns io.EOF when the stream holds the end-of-scan key instead
// of a record; no Mass is produced in that case and no word beyond the
// key is consumed. Short reads are reported as ErrTruncated, never as
// io.EOF.
func DecodeMass(r io.Reader, edac uint32) (*Mass, error) {
	m := &Mass{Measurements: make(map[ChannelType][]int64)}

	for {
		var word Word
		if err := binary.Read(r, binary.LittleEndian, &word); err != nil {
			return nil, truncated("mass record", err)
		}

		m.Size += wordSize
		payload := word.Payload()

		switch word.Key() {
		case KeyEOS:
			return nil, io.EOF
		case KeyEOM:
			if m.hasDuration {
				return nil, ErrMalformedMass.AddDetails("duration already set")
			}
			m.hasDuration = true
			m.Duration = payload

			return m, nil
		case KeyBScan, KeyB:
			// reserved, semantics unknown
		case KeyVolt:
			if payload == 0 {
				return nil, ErrMalformedMass.AddDetails("zero accelerating voltage divisor")
			}
			m.AcceleratingVoltage = float64(edac) * 1000.0 / float64(payload) / fixedPoint
		case KeyTime:
			if m.hasChannelTime {
				return nil, ErrMalformedMass.AddDetails("channel time already set")
			}
			m.hasChannelTime = true
			m.ChannelTime = payload
		case KeyMass:
			m.MagnetMass = float64(payload) / fixedPoint
		case KeyData:
			channel, value, err := decodeDataWord(payload)
			if err != nil {
				return nil, err
			}
			m.Measurements[channel] = append(m.Measurements[channel], value)
		default:
			return nil, ErrUnknownKey.AddDetails("key %#x", word.Key())
		}
	}
}
