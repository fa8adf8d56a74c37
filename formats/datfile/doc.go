// Package datfile implements decoding of the binary dat files produced
// by Thermo Element ICP mass spectrometers.
//
// A dat file carries a fixed header at offset 0x10 locating an index
// table of absolute scan-header offsets. Each scan starts with a fixed
// 188-byte header followed by a stream of 32-bit tagged words encoding
// the scan's mass records; the stream has no length prefix and is
// traversed by decoding records until the end-of-scan key.
//
// The format is undocumented; field positions and key semantics follow
// the behavior of the instrument software.
package datfile
