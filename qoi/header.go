package qoi

import (
	"bytes"
	"encoding/binary"
)

const (
	magic      = "qoif"
	headerSize = 14
)

var endMarker = [...]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Channels is the number of channels stored per pixel.
type Channels uint8

const (
	ChannelsRGB  Channels = 3
	ChannelsRGBA Channels = 4
)

func (ch Channels) valid() bool {
	return ch == ChannelsRGB || ch == ChannelsRGBA
}

// ColorSpace is informational only and does not change how pixels are coded.
type ColorSpace uint8

const (
	// ColorSpaceSRGB is sRGB colour channels with linear alpha.
	ColorSpaceSRGB ColorSpace = 0
	// ColorSpaceLinear means every channel is linear.
	ColorSpaceLinear ColorSpace = 1
)

func (cs ColorSpace) valid() bool {
	return cs == ColorSpaceSRGB || cs == ColorSpaceLinear
}

// Header is the fixed-size preamble of a QOI stream.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	ColorSpace ColorSpace
}

func (h Header) pixelCount() uint64 {
	return uint64(h.Width) * uint64(h.Height)
}

func (h Header) appendTo(buf []byte) []byte {
	buf = append(buf, magic...)
	buf = binary.BigEndian.AppendUint32(buf, h.Width)
	buf = binary.BigEndian.AppendUint32(buf, h.Height)
	buf = append(buf, byte(h.Channels), byte(h.ColorSpace))
	return buf
}

// parseHeader validates data as the start of a QOI stream. The stream must
// continue past the header, so data must be longer than headerSize.
func parseHeader(data []byte) (Header, error) {
	n := min(len(data), len(magic))
	if !bytes.Equal(data[:n], []byte(magic)[:n]) {
		return Header{}, &DecodeError{Offset: 0, Err: ErrParseHeader}
	}
	if len(data) <= headerSize {
		return Header{}, &DecodeError{Offset: max(len(data)-1, 0), Err: ErrParseHeader}
	}

	h := Header{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   Channels(data[12]),
		ColorSpace: ColorSpace(data[13]),
	}
	if !h.Channels.valid() {
		return Header{}, &DecodeError{Offset: 12, Err: ErrParseHeader}
	}
	if !h.ColorSpace.valid() {
		return Header{}, &DecodeError{Offset: 13, Err: ErrParseHeader}
	}
	return h, nil
}
