package qoi

import (
	"fmt"
)

// Encode serializes img into a complete QOI stream: header, chunks and end
// marker.
//
// img.Pix must hold exactly Width*Height pixels of img.Channels bytes each.
func Encode(img *Image) ([]byte, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	e := newEncoder(img.Channels)
	// Worst case is an RGBA literal for every pixel.
	e.buf = make([]byte, 0, headerSize+img.pixelCount()*5+len(endMarker))
	e.buf = img.header().appendTo(e.buf)

	stride := int(img.Channels)
	for i := 0; i+stride <= len(img.Pix); i += stride {
		e.writePixel(img.Pix[i : i+stride])
	}
	e.flushRun()

	e.buf = append(e.buf, endMarker[:]...)
	return e.buf, nil
}

type encoder struct {
	buf       []byte
	channels  Channels
	cache     colorCache
	prev      Pixel
	runLength byte
}

func newEncoder(ch Channels) *encoder {
	return &encoder{
		channels: ch,
		prev:     startPixel,
	}
}

// pixelAt resolves raw channel bytes to a pixel; RGB data is always opaque.
func pixelAt(raw []byte, ch Channels) Pixel {
	p := Pixel{R: raw[0], G: raw[1], B: raw[2], A: 255}
	if ch == ChannelsRGBA {
		p.A = raw[3]
	}
	return p
}

func (e *encoder) writePixel(raw []byte) {
	pixel := pixelAt(raw, e.channels)

	if pixel == e.prev {
		// The start pixel can open a run before it was ever cached.
		e.cache.put(pixel)
		e.runLength++
		if e.runLength == maxRun {
			e.flushRun()
		}
		return
	}
	e.flushRun()

	e.write(e.chooseChunk(pixel))
	e.cache.put(pixel)
	e.prev = pixel
}

// chooseChunk picks the shortest chunk able to express pixel, given that it
// differs from the previous pixel.
func (e *encoder) chooseChunk(pixel Pixel) chunk {
	if index, ok := e.cache.lookup(pixel); ok {
		return indexChunk{index: byte(index)}
	}

	if pixel.A != e.prev.A {
		return rgbaChunk{pixel: pixel}
	}
	if c, ok := newDiffChunk(e.prev, pixel); ok {
		return c
	}
	if c, ok := newLumaChunk(e.prev, pixel); ok {
		return c
	}
	return rgbChunk{r: pixel.R, g: pixel.G, b: pixel.B}
}

func (e *encoder) flushRun() {
	if e.runLength == 0 {
		return
	}
	e.write(runChunk{length: e.runLength})
	e.runLength = 0
}

func (e *encoder) write(c chunk) {
	e.buf = c.appendTo(e.buf)
}

func (img *Image) validate() error {
	if !img.Channels.valid() {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidImage, img.Channels)
	}
	if !img.ColorSpace.valid() {
		return fmt.Errorf("%w: unsupported color space %d", ErrInvalidImage, img.ColorSpace)
	}
	if len(img.Pix)%int(img.Channels) != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d channels",
			ErrPixelCount, len(img.Pix), img.Channels)
	}
	if want := img.header().pixelCount(); uint64(len(img.Pix)/int(img.Channels)) != want {
		return fmt.Errorf("%w: have %d pixels, want %dx%d",
			ErrPixelCount, len(img.Pix)/int(img.Channels), img.Width, img.Height)
	}
	return nil
}
