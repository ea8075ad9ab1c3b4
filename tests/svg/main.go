// +build gofuzz

package fuzz

import "github.com/tdewolff/imgio"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	img, err := imgio.Rasterize(data, 64, -1)
	if err != nil {
		return 0
	}
	if len(img.Pix) != img.Width*img.Height*4 {
		panic("bad pixel buffer size")
	}
	return 1
}
