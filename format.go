package imgio

// Format is an output format.
type Format int

// see Format
const (
	UnknownFormat Format = iota
	PNG
	JPG
	TGA
	HDR
	Raw
	SVG
)

var formatTags = map[string]Format{
	"png": PNG,
	"jpg": JPG,
	"tga": TGA,
	"hdr": HDR,
	"raw": Raw,
	"svg": SVG,
}

// ParseFormat returns the format for a tag. Tags are matched case-sensitively.
func ParseFormat(tag string) (Format, error) {
	if format, ok := formatTags[tag]; ok {
		return format, nil
	}
	return UnknownFormat, encodeErrorf("unknown file format %s", tag)
}

// FormatFromPath returns the format given by the last three characters of a filename.
func FormatFromPath(filename string) (Format, error) {
	if len(filename) < 3 {
		return ParseFormat(filename)
	}
	return ParseFormat(filename[len(filename)-3:])
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPG:
		return "jpg"
	case TGA:
		return "tga"
	case HDR:
		return "hdr"
	case Raw:
		return "raw"
	case SVG:
		return "svg"
	}
	return "unknown"
}

// Mimetype returns the media type of the encoded format.
func (f Format) Mimetype() string {
	switch f {
	case PNG:
		return "image/png"
	case JPG:
		return "image/jpeg"
	case TGA:
		return "image/x-tga"
	case HDR:
		return "image/vnd.radiance"
	case SVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
