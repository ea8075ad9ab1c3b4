package imgio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/oov/psd"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// DecodeOptions are options for decoding. Width and Height set the target size of SVG documents and are ignored for raster images; values of zero or less are unset.
type DecodeOptions struct {
	Width, Height int
}

// Config is the format and size of an encoded image.
type Config struct {
	Format        string
	Width, Height int
}

type decoder struct {
	name   string
	magic  []string
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)
}

func decodePSD(r io.Reader) (image.Image, error) {
	doc, _, err := psd.Decode(r, &psd.DecodeOptions{})
	if err != nil {
		return nil, err
	}
	return doc.Picker, nil
}

// configOf is used by formats without a header-only decoder.
func configOf(decode func(io.Reader) (image.Image, error)) func(io.Reader) (image.Config, error) {
	return func(r io.Reader) (image.Config, error) {
		img, err := decode(r)
		if err != nil {
			return image.Config{}, err
		}
		size := img.Bounds().Size()
		return image.Config{ColorModel: img.ColorModel(), Width: size.X, Height: size.Y}, nil
	}
}

// decoders are matched by magic bytes in order, '?' matches any byte. TGA has no magic and is tried last.
var decoders = []decoder{
	{"png", []string{"\x89PNG\r\n\x1a\n"}, png.Decode, png.DecodeConfig},
	{"jpeg", []string{"\xff\xd8"}, jpeg.Decode, jpeg.DecodeConfig},
	{"gif", []string{"GIF87a", "GIF89a"}, gif.Decode, gif.DecodeConfig},
	{"bmp", []string{"BM"}, bmp.Decode, bmp.DecodeConfig},
	{"tiff", []string{"II*\x00", "MM\x00*"}, tiff.Decode, tiff.DecodeConfig},
	{"webp", []string{"RIFF????WEBPVP8"}, webp.Decode, webp.DecodeConfig},
	{"psd", []string{"8BPS"}, decodePSD, configOf(decodePSD)},
	{"hdr", []string{"#?RADIANCE", "#?RGBE"}, rgbe.Decode, configOf(rgbe.Decode)},
}

var tgaDecoder = decoder{"tga", nil, tga.Decode, configOf(tga.Decode)}

func matchMagic(magic string, b []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != b[i] && magic[i] != '?' {
			return false
		}
	}
	return true
}

func sniff(b []byte) decoder {
	for _, dec := range decoders {
		for _, magic := range dec.magic {
			if matchMagic(magic, b) {
				return dec
			}
		}
	}
	return tgaDecoder
}

// Decode decodes an image from memory. Buffers starting with '<' after optional whitespace are rasterized as SVG with the size given in opts, all others are decoded as raster images with their native channel count.
func Decode(b []byte, opts *DecodeOptions) (*Image, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	if isSVG(b) {
		return Rasterize(b, opts.Width, opts.Height)
	}
	return decodeRaster(b)
}

// DecodeReader reads r until EOF and decodes the result.
func DecodeReader(r io.Reader, opts *DecodeOptions) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	return Decode(b, opts)
}

// Load decodes an image from a file. Filenames ending in .svg are rasterized as SVG with the size given in opts.
func Load(filename string, opts *DecodeOptions) (*Image, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	b, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(filename, ".svg") {
		return Rasterize(b, opts.Width, opts.Height)
	}
	return decodeRaster(b)
}

// FormatName returns the name of the format that Decode would use for b, which is "svg" for SVG documents and "tga" when no other format matches.
func FormatName(b []byte) string {
	if isSVG(b) {
		return "svg"
	}
	return sniff(b).name
}

// DecodeConfig returns the format and size of an encoded image without decoding all pixels where the format allows.
func DecodeConfig(b []byte) (Config, error) {
	if isSVG(b) {
		width, height, err := IntrinsicSize(b)
		if err != nil {
			return Config{}, err
		}
		return Config{
			Format: "svg",
			Width:  int(width + 0.5),
			Height: int(height + 0.5),
		}, nil
	}

	dec := sniff(b)
	cfg, err := dec.config(bytes.NewReader(b))
	if err != nil {
		return Config{}, &DecodeError{Format: dec.name, Err: err}
	}
	return Config{
		Format: dec.name,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func readFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: filename, Err: err}
	}
	b := make([]byte, info.Size())
	if _, err := io.ReadFull(f, b); err != nil {
		return nil, &IOError{Op: "read", Path: filename, Err: err}
	}
	return b, nil
}

func decodeRaster(b []byte) (*Image, error) {
	if len(b) == 0 {
		return nil, &DecodeError{Err: errors.New("empty buffer")}
	}

	dec := sniff(b)
	img, err := dec.decode(bytes.NewReader(b))
	if err != nil {
		if dec.name == tgaDecoder.name {
			err = fmt.Errorf("unsupported image format: %w", err)
		}
		return nil, &DecodeError{Format: dec.name, Err: err}
	}
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, &DecodeError{Format: dec.name, Err: fmt.Errorf("bad image size: %dx%d", size.X, size.Y)}
	}
	channels := channelCount(img)
	return &Image{
		Width:    size.X,
		Height:   size.Y,
		Channels: channels,
		Pix:      pixels(img, channels),
	}, nil
}

// channelCount returns the number of channels that represents the image without loss.
func channelCount(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xFFFF {
				return 4
			}
		}
		return 3
	case *image.RGBA:
		if m.Opaque() {
			return 3
		}
	case *image.RGBA64:
		if m.Opaque() {
			return 3
		}
	default:
		if o, ok := img.(interface{ Opaque() bool }); ok {
			if o.Opaque() {
				return 3
			}
		} else if opaque(img) {
			return 3
		}
	}
	return 4
}

// opaque scans all pixels, for image types that cannot report their opacity.
func opaque(img image.Image) bool {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				return false
			}
		}
	}
	return true
}

// pixels returns tightly packed straight-alpha samples of img.
func pixels(img image.Image, channels int) []byte {
	bounds := img.Bounds()
	rect := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	if channels == 1 {
		gray := image.NewGray(rect)
		draw.Draw(gray, rect, img, bounds.Min, draw.Src)
		return gray.Pix
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*rect.Dx() || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(rect)
		draw.Draw(nrgba, rect, img, bounds.Min, draw.Src)
	}
	if channels == 4 {
		return nrgba.Pix
	}
	return Remap(nrgba.Pix, rect.Dx(), rect.Dy(), 4, channels)
}
