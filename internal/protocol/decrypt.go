package protocol

import "fmt"

// IsEncrypted reports whether the payload carries the rotating-key marker.
// Payloads shorter than the marker offset are never treated as encrypted;
// length validation happens in DecodeState.
func IsEncrypted(payload []byte) bool {
	return len(payload) > markerOffset && payload[markerOffset] == encryptionMarker
}

// Decrypt reverses the rotating-key obfuscation in place. The two key-table
// offsets come from the payload's trailing nibbles; each of the first 20
// bytes is shifted by the sum of two key bytes with 8-bit wraparound.
//
// Offsets are 4-bit values, so offset+19 is at most 34 and always inside the
// 36-entry table. The bound is still checked explicitly rather than assumed.
func Decrypt(payload []byte) error {
	if len(payload) < MinStateLen {
		return fmt.Errorf("%w: %d bytes, need %d", ErrMalformedPayload, len(payload), MinStateLen)
	}

	off1 := int(GetNibble(payload, keyNibble1))
	off2 := int(GetNibble(payload, keyNibble2))
	if off1+decryptSpan > len(keyTable) || off2+decryptSpan > len(keyTable) {
		return fmt.Errorf("%w: key offsets %d/%d exceed table", ErrMalformedPayload, off1, off2)
	}

	for i := 0; i < decryptSpan; i++ {
		payload[i] += keyTable[off1+i] + keyTable[off2+i]
	}

	return nil
}
