package imgio

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

const redRect = `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="10"><rect x="0" y="0" width="20" height="10" fill="#ff0000"/></svg>`

func pixelAt(img *Image, x, y int) []byte {
	i := (y*img.Width + x) * img.Channels
	return img.Pix[i : i+img.Channels]
}

func TestRasterizeIntrinsic(t *testing.T) {
	img, err := Rasterize([]byte(redRect), -1, -1)
	test.Error(t, err)
	test.T(t, img.Width, 20)
	test.T(t, img.Height, 10)
	test.T(t, img.Channels, 4)
	test.T(t, len(img.Pix), 20*10*4)
	test.T(t, pixelAt(img, 10, 5), []byte{255, 0, 0, 255})
}

func TestRasterizeWidth(t *testing.T) {
	img, err := Rasterize([]byte(redRect), 40, -1)
	test.Error(t, err)
	test.T(t, img.Width, 40)
	test.T(t, img.Height, 20)
	test.T(t, pixelAt(img, 35, 15), []byte{255, 0, 0, 255})
}

func TestRasterizeHeight(t *testing.T) {
	img, err := Rasterize([]byte(redRect), 0, 5)
	test.Error(t, err)
	test.T(t, img.Width, 10)
	test.T(t, img.Height, 5)
}

func TestRasterizeUniformScale(t *testing.T) {
	// height is not scaled independently
	svg := `<svg width="10" height="10"><rect width="10" height="10" fill="#0000ff"/></svg>`
	img, err := Rasterize([]byte(svg), 20, 40)
	test.Error(t, err)
	test.T(t, img.Width, 20)
	test.T(t, img.Height, 40)
	test.T(t, pixelAt(img, 10, 10), []byte{0, 0, 255, 255})
	test.T(t, pixelAt(img, 10, 30), []byte{0, 0, 0, 0})
}

func TestRasterizeViewBox(t *testing.T) {
	svg := `<svg viewBox="0 0 8 4"><rect width="8" height="4" fill="#00ff00"/></svg>`
	img, err := Rasterize([]byte(svg), -1, -1)
	test.Error(t, err)
	test.T(t, img.Width, 8)
	test.T(t, img.Height, 4)
	test.T(t, pixelAt(img, 4, 2), []byte{0, 255, 0, 255})
}

func TestIntrinsicSize(t *testing.T) {
	var tests = []struct {
		svg           string
		width, height float64
	}{
		{`<svg width="20" height="10"></svg>`, 20.0, 10.0},
		{`<svg width="20px" height="1in"></svg>`, 20.0, 96.0},
		{`<svg width="72pt" height="10" viewBox="0 0 1 1"/>`, 96.0, 10.0},
		{`<?xml version="1.0"?><!-- icon --><svg viewBox="0,0,30,15"><g><path d="M0 0L1 1"/></g></svg>`, 30.0, 15.0},
	}
	for _, tt := range tests {
		t.Run(tt.svg, func(t *testing.T) {
			width, height, err := IntrinsicSize([]byte(tt.svg))
			test.Error(t, err)
			test.Float(t, width, tt.width)
			test.Float(t, height, tt.height)
		})
	}
}

func TestRasterizeErrors(t *testing.T) {
	var tests = []string{
		`<html></html>`,
		`<svg width="10" height="10"><rect></svg>`,
		`<svg width="10" height="10"><g>`,
		`<svg width="10furlong" height="10"></svg>`,
		`<svg viewBox="0 0 10"></svg>`,
		`<svg></svg>`,
	}
	for _, svg := range tests {
		t.Run(svg, func(t *testing.T) {
			_, err := Rasterize([]byte(svg), -1, -1)
			var parseErr *ParseError
			test.That(t, errors.As(err, &parseErr), err)
		})
	}
}
