package protocol

// GetBit returns bit i of buf, where bit 0 is the most significant bit of
// buf[0]. The caller must guarantee i/8 < len(buf).
func GetBit(buf []byte, i int) byte {
	return (buf[i/8] >> (7 - uint(i%8))) & 0x01
}

// GetNibble returns the 4-bit value at nibble index i: even indices read the
// high nibble of buf[i/2], odd indices the low nibble. The caller must
// guarantee i/2 < len(buf).
func GetNibble(buf []byte, i int) byte {
	if i%2 == 0 {
		return buf[i/2] >> 4
	}
	return buf[i/2] & 0x0F
}
