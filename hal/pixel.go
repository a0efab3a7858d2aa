package hal

// rgb565 packs 8-bit channels as rrrrrggggggbbbbb.
func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}

// on565 reports whether an RGB565 pixel is brighter than mid-grey.
func on565(p uint16) bool {
	r, g, b := rgb888From565(p)
	return int(r)+int(g)+int(b) > 3*0x80
}
