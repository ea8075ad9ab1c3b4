package imgio

import (
	"image"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func TestNew(t *testing.T) {
	img, err := New(2, 1, 3, []byte{1, 2, 3, 4, 5, 6})
	test.Error(t, err)
	test.T(t, img.Width, 2)
	test.T(t, img.Height, 1)
	test.T(t, img.Channels, 3)
	test.T(t, img.Stride(), 6)
	test.String(t, img.String(), "Image(2x1x3)")

	_, err = New(0, 1, 3, nil)
	test.That(t, err != nil)
	_, err = New(1, 1, 5, make([]byte, 5))
	test.That(t, err != nil)
	_, err = New(2, 2, 4, make([]byte, 15))
	test.That(t, err != nil)
}

func TestImageRelease(t *testing.T) {
	img, err := New(1, 1, 1, []byte{0})
	test.Error(t, err)
	test.That(t, !img.Released())
	img.Release()
	test.That(t, img.Released())
	img.Release()
	test.That(t, img.Released())
}

func TestImageView(t *testing.T) {
	var tests = []struct {
		channels int
		pix      []byte
		expected color.NRGBA
	}{
		{1, []byte{9}, color.NRGBA{9, 9, 9, 255}},
		{2, []byte{9, 128}, color.NRGBA{9, 9, 9, 128}},
		{3, []byte{1, 2, 3}, color.NRGBA{1, 2, 3, 255}},
		{4, []byte{1, 2, 3, 4}, color.NRGBA{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		img, err := New(1, 1, tt.channels, tt.pix)
		test.Error(t, err)
		m := img.Image()
		test.T(t, m.Bounds(), image.Rect(0, 0, 1, 1))
		test.T(t, color.NRGBAModel.Convert(m.At(0, 0)), tt.expected)
	}
}
