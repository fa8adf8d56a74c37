// Package dat provides read access to the scans and per-mass
// measurement channels of ICP mass spectrometer dat files, decoded by
// the formats/datfile package.
package dat

import (
	"errors"
	"path/filepath"

	"github.com/icpms/go-dat/formats/datfile"

	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/osfs"
)

var (
	// ErrNotOpen is returned on scan or mass access before Open or
	// after Close.
	ErrNotOpen = errors.New("dat file is not open")
	// ErrScanOutOfRange is returned by GetScan for indexes outside
	// [0, NumScans).
	ErrScanOutOfRange = errors.New("scan index out of range")
	// ErrStop is used to stop a ForEach function in an Iter.
	ErrStop = errors.New("stop iter")
)

// DatFile gives access to the scans of one instrument dat file.
//
// The file header and the scan index are read eagerly when the DatFile
// is created, on a handle of their own. Scan and mass data is read
// lazily through the long-lived handle acquired with Open and released
// with Close.
//
// A DatFile holds one read cursor; it is not safe for concurrent use.
type DatFile struct {
	fs   billy.Filesystem
	path string

	header *datfile.Header
	file   billy.File
}

// NewDatFile reads the header and scan index of the dat file at the
// given path on the local filesystem.
func NewDatFile(path string) (*DatFile, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	return NewDatFileFromFS(osfs.New(dir), name)
}

// NewDatFileFromFS reads the header and scan index of the dat file at
// the given path of the given filesystem.
func NewDatFileFromFS(fs billy.Filesystem, path string) (d *DatFile, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		errClose := f.Close()
		if err == nil {
			err = errClose
		}
	}()

	header, err := datfile.DecodeHeader(f)
	if err != nil {
		return nil, err
	}

	return &DatFile{fs: fs, path: path, header: header}, nil
}

// Path returns the path the DatFile was created from, relative to its
// filesystem.
func (d *DatFile) Path() string {
	return d.path
}

// Timestamp returns the acquisition time as raw instrument epoch
// seconds.
func (d *DatFile) Timestamp() uint32 {
	return d.header.Timestamp
}

// RawHeader returns the full raw file header fields.
func (d *DatFile) RawHeader() []uint32 {
	return d.header.Fields[:]
}

// Open acquires the read handle used for scan and mass access. It is a
// no-op if the handle is already open.
func (d *DatFile) Open() error {
	if d.file != nil {
		return nil
	}

	f, err := d.fs.Open(d.path)
	if err != nil {
		return err
	}

	d.file = f

	return nil
}

// Close releases the read handle. Scan and mass access after Close
// fails with ErrNotOpen until the handle is reacquired with Open.
func (d *DatFile) Close() error {
	if d.file == nil {
		return nil
	}

	err := d.file.Close()
	d.file = nil

	return err
}

// NumScans returns the number of scans in the dat file.
func (d *DatFile) NumScans() int {
	return len(d.header.Offsets)
}

// GetScan decodes the scan header at the given index of the scan
// index table.
func (d *DatFile) GetScan(index int) (*Scan, error) {
	if d.file == nil {
		return nil, ErrNotOpen
	}

	if index < 0 || index >= d.NumScans() {
		return nil, ErrScanOutOfRange
	}

	header, err := datfile.DecodeScanHeader(d.file, int64(d.header.Offsets[index]))
	if err != nil {
		return nil, err
	}

	return &Scan{ScanHeader: header, dat: d}, nil
}

// Scans returns an iterator over the scans of the dat file, in file
// order.
func (d *DatFile) Scans() *ScanIter {
	return &ScanIter{dat: d}
}
