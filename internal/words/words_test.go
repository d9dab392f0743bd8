package words

import "testing"

func TestParseHexSpace(t *testing.T) {
	got, err := ParseHexSpace("41 a4 1f 10")
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{0x41, 0xa4, 0x1f, 0x10}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestParseHexSpaceInvalid(t *testing.T) {
	if _, err := ParseHexSpace("zz"); err == nil {
		t.Fatal("expected error for invalid hex group")
	}
}

func TestParseRawBytes(t *testing.T) {
	got := ParseRawBytes("AB")
	want := []uint64{'A', 'B'}
	if got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRangeSet(t *testing.T) {
	s := NewRange(2, 5)
	for v := uint64(0); v < 8; v++ {
		want := v >= 2 && v <= 5
		if s.Contains(v) != want {
			t.Errorf("Contains(%d) = %v, want %v", v, s.Contains(v), want)
		}
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	var got []uint64
	for v := range s.All() {
		got = append(got, v)
	}
	if len(got) != 4 || got[0] != 2 || got[3] != 5 {
		t.Errorf("All() = %v", got)
	}
}

func TestBitsetSet(t *testing.T) {
	s := NewBitset(8, 3, 1, 3, 9000)
	if !s.Contains(1) || !s.Contains(3) {
		t.Error("expected 1 and 3 to be members")
	}
	if s.Contains(2) {
		t.Error("2 should not be a member")
	}
	if s.Contains(9000) {
		t.Error("9000 is out of the 8-bit domain and should be ignored as absent")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicate 3 and out-of-domain 9000 excluded)", s.Len())
	}
}

func TestHashSet(t *testing.T) {
	s := NewHashSet(10, 20, 10)
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains(10) || !s.Contains(20) {
		t.Error("expected 10 and 20 to be members")
	}
	if s.Contains(30) {
		t.Error("30 should not be a member")
	}
}

func TestFull(t *testing.T) {
	s := Full(4)
	if s.Len() != 16 {
		t.Errorf("Len() = %d, want 16", s.Len())
	}
	if !s.Contains(0) || !s.Contains(15) || s.Contains(16) {
		t.Error("Full(4) should cover exactly [0, 16)")
	}
}
