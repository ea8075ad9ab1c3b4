// Package imgio decodes raster images and SVG documents into pixel buffers and encodes pixel buffers as PNG, JPEG, TGA, Radiance HDR or raw bytes.
//
// Decoding infers the channel count from the source. Saving can remap the channel count, where new channels are filled with 0xFF and surplus channels are dropped, and writes to a file, a callback or memory.
package imgio

// Version identifies the build, set with -ldflags "-X github.com/tdewolff/imgio.Version=...".
var Version = "unknown"
