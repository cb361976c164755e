package protocol

import (
	"bytes"
	"errors"
	"testing"
)

// encryptForTest builds an obfuscated payload that Decrypt should restore.
// Bytes 0-17 come from plain; byte 18 carries the marker and byte 19 the two
// key offsets, so their decrypted values are fixed by the scheme.
func encryptForTest(plain []byte, off1, off2 int) []byte {
	enc := make([]byte, MinStateLen)
	for i := 0; i < markerOffset; i++ {
		enc[i] = plain[i] - keyTable[off1+i] - keyTable[off2+i]
	}
	enc[markerOffset] = encryptionMarker
	enc[19] = byte(off1<<4 | off2)
	return enc
}

func TestIsEncrypted(t *testing.T) {
	payload := make([]byte, MinStateLen)
	if IsEncrypted(payload) {
		t.Error("zero payload should not be encrypted")
	}

	payload[markerOffset] = encryptionMarker
	if !IsEncrypted(payload) {
		t.Error("payload with 0xA7 marker should be encrypted")
	}

	if IsEncrypted(payload[:markerOffset]) {
		t.Error("payload shorter than the marker offset should not be encrypted")
	}
}

func TestDecrypt_RestoresPlaintext(t *testing.T) {
	plain := []byte{
		0x12, 0x34, 0x56, 0x78, 0x33, 0x33, 0x33, 0x33,
		0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0x00, 0x00,
		0x51, 0x07,
	}

	for _, offs := range [][2]int{{0, 0}, {3, 11}, {15, 15}} {
		enc := encryptForTest(plain, offs[0], offs[1])
		if err := Decrypt(enc); err != nil {
			t.Fatalf("Decrypt with offsets %v failed: %v", offs, err)
		}
		if !bytes.Equal(enc[:markerOffset], plain[:markerOffset]) {
			t.Errorf("offsets %v: decrypted % X, want % X", offs, enc[:markerOffset], plain[:markerOffset])
		}
	}
}

func TestDecrypt_AdditiveFormula(t *testing.T) {
	// Hand-computed: byte 0 with offsets 2 and 5 gains keyTable[2]+keyTable[5].
	payload := make([]byte, MinStateLen)
	payload[0] = 0x10
	payload[19] = 0x25

	if err := Decrypt(payload); err != nil {
		t.Fatal(err)
	}

	want := byte(0x10) + keyTable[2] + keyTable[5] // 8-bit wraparound
	if payload[0] != want {
		t.Errorf("payload[0] = %#x, want %#x", payload[0], want)
	}
}

func TestDecrypt_NotIdempotent(t *testing.T) {
	// The scheme is additive, not a toggle: applying it twice keeps shifting.
	plain := make([]byte, markerOffset)
	for i := range plain {
		plain[i] = byte(i)
	}

	enc := encryptForTest(plain, 4, 9)
	once := make([]byte, len(enc))
	copy(once, enc)
	if err := Decrypt(once); err != nil {
		t.Fatal(err)
	}

	twice := make([]byte, len(once))
	copy(twice, once)
	if err := Decrypt(twice); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(once[:markerOffset], twice[:markerOffset]) {
		t.Error("decrypting twice should not be idempotent")
	}
}

func TestDecrypt_TooShort(t *testing.T) {
	err := Decrypt(make([]byte, MinStateLen-1))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Decrypt of short payload = %v, want ErrMalformedPayload", err)
	}
}

func TestKeyTableBound(t *testing.T) {
	// Offsets are 4-bit, so the largest index is 15+decryptSpan-1.
	if max := 15 + decryptSpan; max > len(keyTable) {
		t.Errorf("key table too short: max index %d, len %d", max-1, len(keyTable))
	}
}
