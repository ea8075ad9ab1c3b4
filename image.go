package imgio

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a decoded raster with straight (non-premultiplied) 8-bit samples. Pix holds Width*Height*Channels bytes, row-major from the top-left pixel without row padding. Channels is 1 (gray), 2 (gray and alpha), 3 (RGB) or 4 (RGBA).
//
// An Image exclusively owns Pix. It is not safe for concurrent use: a handle must not be mutated while another goroutine encodes it.
type Image struct {
	Width, Height int
	Channels      int
	Pix           []byte
}

// New returns an image handle that takes ownership of pix.
func New(width, height, channels int, pix []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad image size: %dx%d", width, height)
	} else if channels < 1 || 4 < channels {
		return nil, fmt.Errorf("bad channel count: %d", channels)
	} else if len(pix) != width*height*channels {
		return nil, fmt.Errorf("bad pixel buffer: expected %d bytes, got %d", width*height*channels, len(pix))
	}
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      pix,
	}, nil
}

// Release drops the pixel buffer. The handle must not be used afterwards except for calling Release or Released.
func (img *Image) Release() {
	img.Pix = nil
}

// Released returns true if Release has been called.
func (img *Image) Released() bool {
	return img.Pix == nil
}

// Stride returns the number of bytes per row.
func (img *Image) Stride() int {
	return img.Width * img.Channels
}

func (img *Image) String() string {
	return fmt.Sprintf("Image(%dx%dx%d)", img.Width, img.Height, img.Channels)
}

// Image returns a view of the pixels as a standard image. Gray images share the pixel buffer, all other channel counts are copied into an NRGBA image.
func (img *Image) Image() image.Image {
	return toImage(img.Pix, img.Width, img.Height, img.Channels, img.Stride())
}

// toImage wraps a pixel buffer with the given row stride in a standard image.
func toImage(pix []byte, width, height, channels, stride int) image.Image {
	rect := image.Rect(0, 0, width, height)
	switch channels {
	case 1:
		return &image.Gray{Pix: pix, Stride: stride, Rect: rect}
	case 4:
		return &image.NRGBA{Pix: pix, Stride: stride, Rect: rect}
	}

	dst := image.NewNRGBA(rect)
	for y := 0; y < height; y++ {
		row := pix[y*stride:]
		for x := 0; x < width; x++ {
			var c color.NRGBA
			if channels == 2 {
				c = color.NRGBA{row[2*x], row[2*x], row[2*x], row[2*x+1]}
			} else {
				c = color.NRGBA{row[3*x], row[3*x+1], row[3*x+2], 0xFF}
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
