package dat

import (
	"io"

	"github.com/icpms/go-dat/formats/datfile"
)

// Scan is one scan of a dat file.
type Scan struct {
	*datfile.ScanHeader
	dat *DatFile
}

// Masses returns a fresh iterator over the mass records of the scan,
// starting at the beginning of its mass stream.
func (s *Scan) Masses() *MassIter {
	return &MassIter{scan: s, offset: s.DataOffset}
}

// ScanIter iterates the scans of a dat file in file order. Next
// returns io.EOF after the last scan.
type ScanIter struct {
	dat *DatFile
	pos int
}

func (iter *ScanIter) Next() (*Scan, error) {
	if iter.pos >= iter.dat.NumScans() {
		return nil, io.EOF
	}

	scan, err := iter.dat.GetScan(iter.pos)
	if err != nil {
		return nil, err
	}

	iter.pos++

	return scan, nil
}

// ForEach calls cb on each remaining scan. Returning ErrStop from cb
// stops the iteration without error.
func (iter *ScanIter) ForEach(cb func(*Scan) error) error {
	for {
		scan, err := iter.Next()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if err := cb(scan); err != nil {
			if err == ErrStop {
				return nil
			}

			return err
		}
	}
}

// MassIter iterates the mass records of one scan. It advances by each
// record's decoded byte length; Next returns io.EOF once the scan's
// end-of-scan key is reached. Decode failures abandon the remainder of
// the scan.
type MassIter struct {
	scan   *Scan
	offset int64
}

func (iter *MassIter) Next() (*datfile.Mass, error) {
	d := iter.scan.dat
	if d.file == nil {
		return nil, ErrNotOpen
	}

	if _, err := d.file.Seek(iter.offset, io.SeekStart); err != nil {
		return nil, err
	}

	mass, err := datfile.DecodeMass(d.file, iter.scan.EDAC)
	if err != nil {
		return nil, err
	}

	iter.offset += mass.Size

	return mass, nil
}

// ForEach calls cb on each remaining mass of the scan. Returning
// ErrStop from cb stops the iteration without error.
func (iter *MassIter) ForEach(cb func(*datfile.Mass) error) error {
	for {
		mass, err := iter.Next()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if err := cb(mass); err != nil {
			if err == ErrStop {
				return nil
			}

			return err
		}
	}
}
