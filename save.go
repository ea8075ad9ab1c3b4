package imgio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 50

// SaveOptions are options for saving an image. Zero values are unset.
type SaveOptions struct {
	// Format is the output format. When unset it follows from the last three characters of the filename for file sinks, and is Raw otherwise.
	Format Format

	// Quality is the JPEG quality in [1,100], default is DefaultQuality.
	Quality int

	// Stride is the number of bytes between the starts of consecutive rows of the encoded buffer, default is Channels times the image width. It is ignored by Raw.
	Stride int

	// Channels is the number of channels to encode in [1,4], default is the channel count of the image. Pixels are remapped when it differs.
	Channels int
}

// SinkFunc receives encoded bytes in the order they are produced. The chunk must not be retained after returning. A returned error aborts encoding.
type SinkFunc func(chunk []byte) error

// Write implements io.Writer.
func (f SinkFunc) Write(b []byte) (int, error) {
	if err := f(b); err != nil {
		return 0, err
	}
	return len(b), nil
}

type saveOptions struct {
	format   Format
	quality  int
	stride   int
	channels int
}

func (opts *SaveOptions) resolve(img *Image, format Format) (saveOptions, error) {
	if opts == nil {
		opts = &SaveOptions{}
	}
	o := saveOptions{
		format:   format,
		quality:  DefaultQuality,
		channels: img.Channels,
	}
	if opts.Format != UnknownFormat {
		o.format = opts.Format
	}
	if o.format == SVG {
		return o, ErrSVGUnsupported
	} else if o.format < PNG || SVG < o.format {
		return o, encodeErrorf("unknown file format %v", o.format)
	}

	if img.Released() {
		return o, encodeErrorf("image is released")
	} else if n := img.Width * img.Height * img.Channels; len(img.Pix) < n {
		return o, encodeErrorf("pixel buffer too small: %d bytes for %d", len(img.Pix), n)
	} else if opts.Quality != 0 {
		if opts.Quality < 1 || 100 < opts.Quality {
			return o, encodeErrorf("bad quality: %d", opts.Quality)
		}
		o.quality = opts.Quality
	}
	if opts.Channels != 0 {
		if opts.Channels < 1 || 4 < opts.Channels {
			return o, encodeErrorf("bad channel count: %d", opts.Channels)
		}
		o.channels = opts.Channels
	}
	o.stride = o.channels * img.Width
	if opts.Stride != 0 {
		if opts.Stride < o.stride {
			return o, encodeErrorf("bad stride: %d is less than %d bytes per row", opts.Stride, o.stride)
		}
		o.stride = opts.Stride
	}
	return o, nil
}

// Save encodes img to a sink. A string sink is a filename, a SinkFunc or func([]byte) error receives the encoded bytes in chunks, and an io.Writer receives them as a stream. For any other sink, including nil, the encoded bytes are returned.
func Save(img *Image, sink interface{}, opts *SaveOptions) ([]byte, error) {
	switch s := sink.(type) {
	case string:
		return nil, SaveFile(img, s, opts)
	case SinkFunc:
		return nil, SaveFunc(img, s, opts)
	case func([]byte) error:
		return nil, SaveFunc(img, s, opts)
	case io.Writer:
		return nil, Write(s, img, opts)
	}
	return Encode(img, opts)
}

// SaveFile encodes img to a file. The format is taken from the last three characters of filename unless given in opts. The file is always closed before returning.
func SaveFile(img *Image, filename string, opts *SaveOptions) error {
	format, err := FormatFromPath(filename)
	if err != nil && (opts == nil || opts.Format == UnknownFormat) {
		return err
	}
	o, err := opts.resolve(img, format)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return &IOError{Op: "open", Path: filename, Err: err}
	}
	if err := encode(f, img, o); err != nil {
		f.Close()
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = filename
		}
		return err
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: filename, Err: err}
	}
	return nil
}

// SaveFunc encodes img and passes the bytes to fn in the order they are produced. The format defaults to Raw.
func SaveFunc(img *Image, fn SinkFunc, opts *SaveOptions) error {
	return Write(fn, img, opts)
}

// Write encodes img to w. The format defaults to Raw.
func Write(w io.Writer, img *Image, opts *SaveOptions) error {
	o, err := opts.resolve(img, Raw)
	if err != nil {
		return err
	}
	return encode(w, img, o)
}

// Encode encodes img and returns the bytes. The format defaults to Raw.
func Encode(img *Image, opts *SaveOptions) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Write(buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sinkWriter keeps the first write error so that it can be told apart from encoder errors.
type sinkWriter struct {
	w   io.Writer
	err error
}

func (w *sinkWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	if err != nil {
		w.err = err
	}
	return n, err
}

func encode(w io.Writer, img *Image, o saveOptions) error {
	pix := img.Pix
	if o.channels != img.Channels {
		pix = Remap(pix, img.Width, img.Height, img.Channels, o.channels)
	}

	sw := &sinkWriter{w: w}
	var err error
	if o.format == Raw {
		n := img.Width * img.Height * o.channels
		if len(pix) < n {
			return encodeErrorf("pixel buffer too small: %d bytes for %d", len(pix), n)
		}
		_, err = sw.Write(pix[:n])
	} else {
		if len(pix) < (img.Height-1)*o.stride+img.Width*o.channels {
			return encodeErrorf("pixel buffer too small for stride %d", o.stride)
		}
		m := toImage(pix, img.Width, img.Height, o.channels, o.stride)
		switch o.format {
		case PNG:
			err = png.Encode(sw, m)
		case JPG:
			err = jpeg.Encode(sw, m, &jpeg.Options{Quality: o.quality})
		case TGA:
			err = tga.Encode(sw, m)
		case HDR:
			err = rgbe.Encode(sw, toHDR(m))
		}
	}
	if sw.err != nil {
		return &IOError{Op: "write", Err: sw.err}
	} else if err != nil {
		return encodeErrorf("unable to save image: %w", err)
	}
	return nil
}

// toHDR converts 8-bit samples to linear floating point RGB in [0,1].
func toHDR(m image.Image) *hdr.RGB {
	bounds := m.Bounds()
	dst := hdr.NewRGB(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			dst.SetRGB(x, y, hdrcolor.RGB{
				R: float64(c.R) / 255.0,
				G: float64(c.G) / 255.0,
				B: float64(c.B) / 255.0,
			})
		}
	}
	return dst
}
