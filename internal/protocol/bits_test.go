package protocol

import "testing"

func TestGetBit(t *testing.T) {
	buf := []byte{0xB1, 0x00, 0xFF} // 0xB1 = 1011 0001

	want := []byte{1, 0, 1, 1, 0, 0, 0, 1}
	for i, w := range want {
		if got := GetBit(buf, i); got != w {
			t.Errorf("GetBit(buf, %d) = %d, want %d", i, got, w)
		}
	}

	if got := GetBit(buf, 8); got != 0 {
		t.Errorf("GetBit(buf, 8) = %d, want 0", got)
	}
	if got := GetBit(buf, 23); got != 1 {
		t.Errorf("GetBit(buf, 23) = %d, want 1", got)
	}
}

func TestGetNibble_HighLow(t *testing.T) {
	buf := []byte{0x12, 0x34, 0xAB, 0xF0}

	for k := 0; k < len(buf); k++ {
		if got, want := GetNibble(buf, 2*k), buf[k]>>4; got != want {
			t.Errorf("GetNibble(buf, %d) = %#x, want high nibble %#x", 2*k, got, want)
		}
		if got, want := GetNibble(buf, 2*k+1), buf[k]&0x0F; got != want {
			t.Errorf("GetNibble(buf, %d) = %#x, want low nibble %#x", 2*k+1, got, want)
		}
	}
}
