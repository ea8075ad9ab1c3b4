package imgio

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
	"golang.org/x/image/draw"
)

// svgHeader holds the root element geometry in pixels.
type svgHeader struct {
	width, height float64
	viewBox       [4]float64
	hasViewBox    bool
}

type svgScanner struct {
	z   *parse.Input
	err error
}

func (svg *svgScanner) parseDimension(v string) float64 {
	if len(v) == 0 {
		return 0.0
	}

	nn, _ := parse.Dimension([]byte(v))
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		if svg.err == nil {
			svg.err = parse.NewErrorLexer(svg.z, "bad dimension: %w: %s", err, v)
		}
		return 0.0
	}

	dim := v[nn:]
	switch strings.ToLower(dim) {
	case "cm":
		return num * 10.0 * 96.0 / 25.4
	case "mm":
		return num * 96.0 / 25.4
	case "q":
		return num * 0.25 * 96.0 / 25.4
	case "in":
		return num * 96.0
	case "pc":
		return num * 96.0 / 6.0
	case "pt":
		return num * 96.0 / 72.0
	case "", "px":
		return num
	}
	if svg.err == nil {
		svg.err = parse.NewErrorLexer(svg.z, "unknown dimension: %s", dim)
	}
	return 0.0
}

func (svg *svgScanner) parseViewBox(v string) (viewBox [4]float64) {
	vals := strings.FieldsFunc(v, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(vals) != 4 {
		if svg.err == nil {
			svg.err = parse.NewErrorLexer(svg.z, "bad viewBox")
		}
		return
	}
	for i := 0; i < 4; i++ {
		var err error
		if viewBox[i], err = strconv.ParseFloat(vals[i], 64); err != nil && svg.err == nil {
			svg.err = parse.NewErrorLexer(svg.z, "bad viewBox: %w", err)
		}
	}
	return
}

// parseSVGHeader lexes the whole document, checks that tags are balanced and that the root element is svg, and returns the root geometry.
func parseSVGHeader(b []byte) (svgHeader, error) {
	z := parse.NewInputBytes(b)
	l := xml.NewLexer(z)
	svg := svgScanner{z: z}

	header := svgHeader{}
	root := false
	tags := []string{}
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return header, l.Err()
			} else if svg.err != nil {
				return header, svg.err
			} else if !root {
				return header, fmt.Errorf("expected SVG tag")
			} else if len(tags) != 0 {
				return header, parse.NewErrorLexer(z, "unclosed tag: %s", tags[len(tags)-1])
			}
			return header, nil
		case xml.StartTagToken:
			attrs := map[string]string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 2 <= len(val) && (val[0] == '"' || val[0] == '\'') {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}
			if tt == xml.ErrorToken {
				if l.Err() != io.EOF {
					return header, l.Err()
				}
				return header, parse.NewErrorLexer(z, "unexpected end of document")
			}

			tag := string(data[1:])
			if !root {
				if tag != "svg" {
					return header, fmt.Errorf("expected SVG tag")
				}
				root = true
				if v, ok := attrs["viewBox"]; ok {
					header.viewBox = svg.parseViewBox(v)
					header.hasViewBox = true
				}
				header.width = svg.parseDimension(attrs["width"])
				header.height = svg.parseDimension(attrs["height"])
				if header.width == 0.0 {
					header.width = header.viewBox[2]
				}
				if header.height == 0.0 {
					header.height = header.viewBox[3]
				}
			} else if len(tags) == 0 {
				return header, parse.NewErrorLexer(z, "unexpected tag after root: %s", tag)
			}
			if tt != xml.StartTagCloseVoidToken {
				tags = append(tags, tag)
			}
		case xml.EndTagToken:
			if len(data) < 3 {
				return header, parse.NewErrorLexer(z, "bad closing tag")
			}
			tag := string(data[2 : len(data)-1])
			if len(tags) == 0 || tags[len(tags)-1] != tag {
				return header, parse.NewErrorLexer(z, "unexpected closing tag: %s", tag)
			}
			tags = tags[:len(tags)-1]
		}
	}
}

// IntrinsicSize returns the size of an SVG document in pixels as given by its width and height attributes, or its viewBox.
func IntrinsicSize(svg []byte) (float64, float64, error) {
	header, err := parseSVGHeader(svg)
	if err != nil {
		return 0.0, 0.0, &ParseError{err}
	}
	return header.width, header.height, nil
}

// Rasterize renders an SVG document to a 4-channel image. If width and height are not positive the intrinsic size is used. Otherwise both axes are scaled uniformly by width over the intrinsic width, or by height over the intrinsic height when only height is given. The output has the given width and height, and unset dimensions follow from the scale.
func Rasterize(svg []byte, width, height int) (*Image, error) {
	header, err := parseSVGHeader(svg)
	if err != nil {
		return nil, &ParseError{err}
	} else if header.width <= 0.0 || header.height <= 0.0 {
		return nil, &ParseError{fmt.Errorf("unknown image size")}
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, &ParseError{err}
	}
	if !header.hasViewBox {
		icon.ViewBox.X, icon.ViewBox.Y = 0.0, 0.0
		icon.ViewBox.W, icon.ViewBox.H = header.width, header.height
	}

	scale := 1.0
	if 0 < width {
		scale = float64(width) / header.width
	} else if 0 < height {
		scale = float64(height) / header.height
	}
	if width <= 0 {
		width = max(1, int(math.Round(header.width*scale)))
	}
	if height <= 0 {
		height = max(1, int(math.Round(header.height*scale)))
	}
	icon.SetTarget(0.0, 0.0, header.width*scale, header.height*scale)

	rect := image.Rect(0, 0, width, height)
	img := image.NewRGBA(rect)
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	// unpremultiply alpha
	dst := image.NewNRGBA(rect)
	draw.Draw(dst, rect, img, image.Point{}, draw.Src)
	return &Image{
		Width:    width,
		Height:   height,
		Channels: 4,
		Pix:      dst.Pix,
	}, nil
}

// isSVG returns true if the first non-whitespace byte is '<'.
func isSVG(b []byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n\f\v")
	return 0 < len(b) && b[0] == '<'
}
