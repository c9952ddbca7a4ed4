package qoi

import (
	"bytes"
)

// Decode parses a complete QOI stream. Any malformed input aborts the whole
// decode with a *DecodeError carrying the offending byte offset.
func Decode(data []byte) (*Image, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	d := newDecoder(h)
	if err := d.decodePixels(data[headerSize:]); err != nil {
		return nil, err
	}

	return &Image{
		Width:      h.Width,
		Height:     h.Height,
		Channels:   h.Channels,
		ColorSpace: h.ColorSpace,
		Pix:        d.pix,
	}, nil
}

// Upper bound on the up-front pixel allocation; a header alone must not be
// able to demand gigabytes before any chunk is read.
const maxPreallocPixels = 1 << 20

type decoder struct {
	header Header
	pix    []byte
	count  uint64
	cache  colorCache
	prev   Pixel
}

func newDecoder(h Header) *decoder {
	n := min(h.pixelCount(), maxPreallocPixels)
	return &decoder{
		header: h,
		pix:    make([]byte, 0, n*uint64(h.Channels)),
		prev:   startPixel,
	}
}

func (d *decoder) decodePixels(data []byte) error {
	pos := headerSize
	for !bytes.Equal(data, endMarker[:]) {
		if len(data) <= len(endMarker) {
			return &DecodeError{Offset: pos, Err: ErrParseEndMarker}
		}

		c, size, err := parseChunk(data)
		if err != nil {
			return &DecodeError{Offset: pos, Err: err}
		}
		if err := d.apply(c); err != nil {
			return &DecodeError{Offset: pos, Err: err}
		}

		data = data[size:]
		pos += size
	}

	if d.count != d.header.pixelCount() {
		return &DecodeError{Offset: pos, Err: ErrPixelCount}
	}
	return nil
}

func (d *decoder) apply(c chunk) error {
	pixel, n := c.apply(d.prev, &d.cache)
	if d.count+uint64(n) > d.header.pixelCount() {
		return ErrPixelCount
	}

	for range n {
		d.pix = append(d.pix, pixel.R, pixel.G, pixel.B)
		if d.header.Channels == ChannelsRGBA {
			d.pix = append(d.pix, pixel.A)
		}
	}
	d.count += uint64(n)

	d.cache.put(pixel)
	d.prev = pixel
	return nil
}
