package qoi

import (
	"errors"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

func init() {
	image.RegisterFormat("qoi", magic, DecodeImage, DecodeConfig)
}

// FromImage converts m to an Image with the given channel count, discarding
// alpha when ch is ChannelsRGB. An *Image that already has ch channels is
// returned as is.
func FromImage(m image.Image, ch Channels) *Image {
	if img, ok := m.(*Image); ok && img.Channels == ch {
		return img
	}

	b := m.Bounds()
	nrgba, ok := m.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), m, b.Min, draw.Src)
	}

	img := &Image{
		Width:      uint32(b.Dx()),
		Height:     uint32(b.Dy()),
		Channels:   ch,
		ColorSpace: ColorSpaceSRGB,
		Pix:        make([]byte, 0, b.Dx()*b.Dy()*int(ch)),
	}
	for y := 0; y < b.Dy(); y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+b.Dx()*4]
		if ch == ChannelsRGBA {
			img.Pix = append(img.Pix, row...)
			continue
		}
		for x := 0; x < len(row); x += 4 {
			img.Pix = append(img.Pix, row[x], row[x+1], row[x+2])
		}
	}
	return img
}

// EncodeImage writes m to w as a QOI stream with the given channel count.
func EncodeImage(w io.Writer, m image.Image, ch Channels) error {
	data, err := Encode(FromImage(m, ch))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// DecodeImage reads a whole QOI stream from r. The result is an *Image.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeConfig returns the dimensions of a QOI image without decoding its
// pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	// One byte past the header, since a header-only stream is invalid.
	buf := make([]byte, headerSize+1)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return image.Config{}, err
	}
	h, err := parseHeader(buf[:n])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}
