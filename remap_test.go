package imgio

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestRemap(t *testing.T) {
	var tests = []struct {
		name     string
		pix      []byte
		src, dst int
		expected []byte
	}{
		{"rgb to rgba", []byte{10, 20, 30}, 3, 4, []byte{10, 20, 30, 255}},
		{"rgba to rgb", []byte{10, 20, 30, 255}, 4, 3, []byte{10, 20, 30}},
		{"gray to rgba", []byte{7}, 1, 4, []byte{7, 255, 255, 255}},
		{"rgba to gray", []byte{1, 2, 3, 4}, 4, 1, []byte{1}},
		{"gray alpha to rgb", []byte{5, 6}, 2, 3, []byte{5, 6, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.T(t, Remap(tt.pix, 1, 1, tt.src, tt.dst), tt.expected)
		})
	}
}

func TestRemapRowMajor(t *testing.T) {
	// 3x2 RGB
	pix := []byte{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		10, 11, 12, 13, 14, 15, 16, 17, 18,
	}
	out := Remap(pix, 3, 2, 3, 4)
	test.T(t, len(out), 3*2*4)
	test.T(t, out, []byte{
		1, 2, 3, 255, 4, 5, 6, 255, 7, 8, 9, 255,
		10, 11, 12, 255, 13, 14, 15, 255, 16, 17, 18, 255,
	})

	out = Remap(out, 3, 2, 4, 2)
	test.T(t, out, []byte{1, 2, 4, 5, 7, 8, 10, 11, 13, 14, 16, 17})
}

func TestRemapSameChannels(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 5, 6}
	out := Remap(pix, 2, 1, 3, 3)
	test.T(t, out, pix)
	test.That(t, &out[0] == &pix[0], "must not copy")
}

func TestRemapLength(t *testing.T) {
	for src := 1; src <= 4; src++ {
		for dst := 1; dst <= 4; dst++ {
			pix := make([]byte, 5*3*src)
			test.T(t, len(Remap(pix, 5, 3, src, dst)), 5*3*dst)
		}
	}
}
