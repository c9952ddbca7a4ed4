package qoi

const cacheSize = 64

// Pixel is a single un-premultiplied RGBA value.
type Pixel struct {
	R byte
	G byte
	B byte
	A byte
}

var startPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

func (p Pixel) hash() int {
	return int((p.R*3 + p.G*5 + p.B*7 + p.A*11) % cacheSize)
}

// delta returns next-prev wrapped into a signed byte.
func delta(prev, next byte) int8 {
	return int8(next - prev)
}

// offset applies a signed delta to v modulo 256.
func offset(v byte, d int8) byte {
	return v + byte(d)
}

// colorCache holds recently seen pixels, indexed by Pixel.hash.
type colorCache [cacheSize]Pixel

func (c *colorCache) lookup(p Pixel) (int, bool) {
	index := p.hash()
	return index, c[index] == p
}

func (c *colorCache) put(p Pixel) {
	c[p.hash()] = p
}
