// Package endian provides byte order utilities for decoding the two wire
// encodings of the ESM container format.
//
// The same logical content ships in two encodings: the little-endian PC
// reference encoding and the big-endian streaming encoding used on console
// builds. Every multi-byte field is byte-reversed between the two, and chunk
// signatures appear with their four ASCII characters reversed in the
// big-endian form. This package carries the Encoding tag through an engine so
// that every reader decodes fields relative to the file it came from.
//
// # Basic Usage
//
//	engine := encoding.Engine()
//	size := engine.Uint32(data[4:8])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library, making it fully compatible with existing Go
// code while providing access to both read and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Encoding identifies which of the two wire encodings a buffer uses.
type Encoding uint8

const (
	// Little is the PC reference encoding. Signatures read forward.
	Little Encoding = iota
	// Big is the streaming encoding. Multi-byte fields are byte-reversed and
	// signatures appear with their characters reversed.
	Big
)

// Engine returns the EndianEngine matching the encoding.
func (e Encoding) Engine() EndianEngine {
	if e == Big {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// String returns a human-readable encoding name.
func (e Encoding) String() string {
	switch e {
	case Little:
		return "little-endian"
	case Big:
		return "big-endian"
	default:
		return "unknown"
	}
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
