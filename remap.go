package imgio

// Remap converts a tightly packed pixel buffer from src to dst channels per pixel. Extra target channels are filled with 0xFF and surplus source channels are dropped. If src equals dst, pix is returned as is.
func Remap(pix []byte, width, height, src, dst int) []byte {
	if src == dst {
		return pix
	}

	n := min(src, dst)
	out := make([]byte, width*height*dst)
	for i, j := 0, 0; j < len(out); i, j = i+src, j+dst {
		copy(out[j:j+n], pix[i:i+n])
		for k := n; k < dst; k++ {
			out[j+k] = 0xFF
		}
	}
	return out
}
