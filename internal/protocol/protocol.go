// Package protocol implements the Giiker smart cube state protocol decoding.
//
// The cube pushes a 20-byte state record per notification. The first 16
// bytes are the cube body (corner codes, corner orientations and edge flip
// bits packed together); the body is treated as opaque here because solved
// detection is a byte compare, not a cube model. The remaining bytes carry
// the last move, an encryption marker and, when the marker is set, two
// key-table offsets used to reverse the rotating-key obfuscation.
package protocol

import "errors"

// Giiker BLE Service and Characteristic UUIDs
const (
	ServiceUUID   = "0000aadb-0000-1000-8000-00805f9b34fb"
	StateCharUUID = "0000aadc-0000-1000-8000-00805f9b34fb" // Notify
)

// State record layout constants. Offsets are fixed by the firmware.
const (
	BodyLen = 16 // opaque cube body, bytes 0-15

	faceNibble      = 32 // last-move face code, 1-6
	directionNibble = 33 // last-move direction, 0=CCW 1=CW
	markerOffset    = 18 // byte equal to encryptionMarker when obfuscated
	keyNibble1      = 38 // first key-table offset
	keyNibble2      = 39 // second key-table offset

	encryptionMarker = 0xA7
	decryptSpan      = 20 // bytes rewritten by Decrypt

	// MinStateLen is the shortest payload the decoder accepts. The highest
	// offset touched is key nibble 39, which lives in byte 19.
	MinStateLen = 20
)

// ErrMalformedPayload is returned for notifications that are too short or
// decode to out-of-range field values. The affected notification is dropped;
// connection state is unaffected.
var ErrMalformedPayload = errors.New("protocol: malformed payload")

// keyTable is the fixed rotating-key table. Decrypt indexes it at
// offset+i for i in [0, decryptSpan); offsets are 4-bit, so the highest
// index is 15+19 = 34.
var keyTable = [36]byte{
	176, 81, 104, 224, 86, 137, 237, 119, 38, 26, 193, 161,
	210, 126, 150, 81, 93, 13, 236, 249, 89, 235, 88, 24,
	113, 81, 214, 131, 130, 199, 2, 169, 39, 165, 171, 41,
}

// solvedPattern is the body of a cube in its solved configuration.
var solvedPattern = [BodyLen]byte{
	0x12, 0x34, 0x56, 0x78, 0x33, 0x33, 0x33, 0x33,
	0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0x00, 0x00,
}

// IsSolved reports whether body is byte-exact equal to the solved pattern.
func IsSolved(body [BodyLen]byte) bool {
	return body == solvedPattern
}
