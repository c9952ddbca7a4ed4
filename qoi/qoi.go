// Package qoi implements the lossless "Quite OK Image" format.
//
// A stream is a 14-byte header, a sequence of byte-aligned chunks and an
// 8-byte end marker. Encoder and decoder each track the previous pixel and a
// 64-entry cache of recently seen pixels, and update both identically after
// every pixel.
package qoi

import (
	"image"
	"image/color"
)

// Image is a decoded QOI image. Pix holds the pixels row by row, Channels
// bytes per pixel in R, G, B(, A) order.
type Image struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	ColorSpace ColorSpace
	Pix        []byte
}

func (img *Image) header() Header {
	return Header{
		Width:      img.Width,
		Height:     img.Height,
		Channels:   img.Channels,
		ColorSpace: img.ColorSpace,
	}
}

func (img *Image) pixelCount() int {
	return int(img.Width) * int(img.Height)
}

// PixelAt returns the pixel at index i in row-major order. Pixels of RGB
// images are opaque.
func (img *Image) PixelAt(i int) Pixel {
	stride := int(img.Channels)
	return pixelAt(img.Pix[i*stride:(i+1)*stride], img.Channels)
}

func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(img.Width), int(img.Height))
}

func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.NRGBA{}
	}
	p := img.PixelAt(y*int(img.Width) + x)
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Opaque reports whether every pixel has full alpha.
func (img *Image) Opaque() bool {
	if img.Channels != ChannelsRGBA {
		return true
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			return false
		}
	}
	return true
}
