package ndpi

import "testing"

func TestApplicable(t *testing.T) {
	fourGiB := uint64(1) << 32
	cases := []struct {
		bigTIFF  bool
		fileSize uint64
		want     bool
	}{
		{false, fourGiB + 1, true},
		{false, fourGiB, false},
		{false, 1 << 20, false},
		{true, fourGiB + 1, false},
	}
	for _, c := range cases {
		if got := Applicable(c.bigTIFF, c.fileSize); got != c.want {
			t.Errorf("Applicable(%v, %d) = %v, want %v", c.bigTIFF, c.fileSize, got, c.want)
		}
	}
}

func TestLooksOverflowed(t *testing.T) {
	if !LooksOverflowed(0x80000000) {
		t.Error("0x80000000 reads negative as int32")
	}
	if LooksOverflowed(0x7FFFFFFF) {
		t.Error("0x7FFFFFFF is positive as int32")
	}
}

func TestFixOffsets(t *testing.T) {
	fourGiB := uint64(1) << 32
	ifdOffset := fourGiB + 0x1000

	// a wrapped value below the IFD gains one 2^32 multiple, but stays
	// below the IFD: strip data precedes the directory describing it.
	fixed := FixOffsets([]uint64{0x800}, ifdOffset)
	if fixed[0] != fourGiB+0x800 {
		t.Errorf("fixed = %#x, want %#x", fixed[0], fourGiB+0x800)
	}
	if fixed[0] >= ifdOffset {
		t.Errorf("fixed offset %#x must stay below IFD at %#x", fixed[0], ifdOffset)
	}

	// a value within 2^32 below the IFD needs no correction.
	fixed = FixOffsets([]uint64{fourGiB}, ifdOffset)
	if fixed[0] != fourGiB {
		t.Errorf("near value perturbed: %#x", fixed[0])
	}

	// values at or past the IFD are never touched.
	fixed = FixOffsets([]uint64{ifdOffset + 8}, ifdOffset)
	if fixed[0] != ifdOffset+8 {
		t.Errorf("forward value perturbed: %#x", fixed[0])
	}

	// ordering is preserved across a mixed sequence.
	in := []uint64{0x800, 0x900, 0xA00}
	out := FixOffsets(in, ifdOffset)
	for i := 1; i < len(out); i++ {
		if out[i-1] >= out[i] {
			t.Errorf("fixed sequence not increasing: %#x", out)
		}
	}
}
