package qoi

// Chunk tags. The 8-bit literal tags take precedence over the 2-bit tags.
const (
	TagIndex byte = 0b00000000
	TagDiff  byte = 0b01000000
	TagLuma  byte = 0b10000000
	TagRun   byte = 0b11000000
	TagRGB   byte = 0b11111110
	TagRGBA  byte = 0b11111111

	tagMask  byte = 0b11000000
	dataMask byte = 0b00111111
)

// maxRun stays below 63 so a run chunk never collides with TagRGB or TagRGBA.
const maxRun = 62

// chunk is one unit of the pixel stream.
type chunk interface {
	appendTo(buf []byte) []byte
	// apply returns the pixel the chunk produces and how many times it repeats.
	apply(prev Pixel, cache *colorCache) (Pixel, int)
}

type rgbChunk struct {
	r, g, b byte
}

func (c rgbChunk) appendTo(buf []byte) []byte {
	return append(buf, TagRGB, c.r, c.g, c.b)
}

func (c rgbChunk) apply(prev Pixel, _ *colorCache) (Pixel, int) {
	return Pixel{R: c.r, G: c.g, B: c.b, A: prev.A}, 1
}

type rgbaChunk struct {
	pixel Pixel
}

func (c rgbaChunk) appendTo(buf []byte) []byte {
	return append(buf, TagRGBA, c.pixel.R, c.pixel.G, c.pixel.B, c.pixel.A)
}

func (c rgbaChunk) apply(Pixel, *colorCache) (Pixel, int) {
	return c.pixel, 1
}

type indexChunk struct {
	index byte
}

func (c indexChunk) appendTo(buf []byte) []byte {
	return append(buf, TagIndex|c.index)
}

func (c indexChunk) apply(_ Pixel, cache *colorCache) (Pixel, int) {
	return cache[c.index], 1
}

type diffChunk struct {
	dr, dg, db int8
}

func isSmallDiff(d int8) bool {
	return d >= -2 && d <= 1
}

func newDiffChunk(prev, next Pixel) (diffChunk, bool) {
	c := diffChunk{
		dr: delta(prev.R, next.R),
		dg: delta(prev.G, next.G),
		db: delta(prev.B, next.B),
	}
	return c, isSmallDiff(c.dr) && isSmallDiff(c.dg) && isSmallDiff(c.db)
}

func (c diffChunk) appendTo(buf []byte) []byte {
	chunk := TagDiff
	chunk |= byte(c.dr+2) << 4
	chunk |= byte(c.dg+2) << 2
	chunk |= byte(c.db + 2)
	return append(buf, chunk)
}

func (c diffChunk) apply(prev Pixel, _ *colorCache) (Pixel, int) {
	return Pixel{
		R: offset(prev.R, c.dr),
		G: offset(prev.G, c.dg),
		B: offset(prev.B, c.db),
		A: prev.A,
	}, 1
}

type lumaChunk struct {
	dg, drdg, dbdg int8
}

func newLumaChunk(prev, next Pixel) (lumaChunk, bool) {
	dg := delta(prev.G, next.G)
	c := lumaChunk{
		dg:   dg,
		drdg: delta(prev.R, next.R) - dg,
		dbdg: delta(prev.B, next.B) - dg,
	}
	ok := c.dg >= -32 && c.dg <= 31 &&
		c.drdg >= -8 && c.drdg <= 7 &&
		c.dbdg >= -8 && c.dbdg <= 7
	return c, ok
}

func (c lumaChunk) appendTo(buf []byte) []byte {
	first := TagLuma | byte(c.dg+32)
	second := byte(c.drdg+8)<<4 | byte(c.dbdg+8)
	return append(buf, first, second)
}

func (c lumaChunk) apply(prev Pixel, _ *colorCache) (Pixel, int) {
	return Pixel{
		R: offset(prev.R, c.dg+c.drdg),
		G: offset(prev.G, c.dg),
		B: offset(prev.B, c.dg+c.dbdg),
		A: prev.A,
	}, 1
}

type runChunk struct {
	length byte
}

func (c runChunk) appendTo(buf []byte) []byte {
	return append(buf, TagRun|(c.length-1))
}

func (c runChunk) apply(prev Pixel, _ *colorCache) (Pixel, int) {
	return prev, int(c.length)
}

// parseChunk reads the chunk at the start of data and reports its size.
func parseChunk(data []byte) (chunk, int, error) {
	if len(data) == 0 {
		return nil, 0, ErrTruncated
	}

	switch tag := data[0]; {
	case tag == TagRGBA:
		if len(data) < 5 {
			return nil, 0, ErrTruncated
		}
		return rgbaChunk{Pixel{R: data[1], G: data[2], B: data[3], A: data[4]}}, 5, nil

	case tag == TagRGB:
		if len(data) < 4 {
			return nil, 0, ErrTruncated
		}
		return rgbChunk{r: data[1], g: data[2], b: data[3]}, 4, nil

	case tag&tagMask == TagIndex:
		return indexChunk{index: tag & dataMask}, 1, nil

	case tag&tagMask == TagDiff:
		return diffChunk{
			dr: int8((tag>>4)&0b11) - 2,
			dg: int8((tag>>2)&0b11) - 2,
			db: int8(tag&0b11) - 2,
		}, 1, nil

	case tag&tagMask == TagLuma:
		if len(data) < 2 {
			return nil, 0, ErrTruncated
		}
		return lumaChunk{
			dg:   int8(tag&dataMask) - 32,
			drdg: int8(data[1]>>4) - 8,
			dbdg: int8(data[1]&0b1111) - 8,
		}, 2, nil

	default:
		return runChunk{length: tag&dataMask + 1}, 1, nil
	}
}
