package qoi_test

import (
	"bytes"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kropptrevor/qoicodec/qoi"
)

// noisyImage mixes repeated pixels, small steps and random jumps so every
// chunk type shows up.
func noisyImage(width, height uint32, ch qoi.Channels, seed uint64) *qoi.Image {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	palette := []qoi.Pixel{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 200, G: 10, B: 30, A: 128},
		{R: 12, G: 34, B: 56, A: 0},
	}

	img := &qoi.Image{
		Width:      width,
		Height:     height,
		Channels:   ch,
		ColorSpace: qoi.ColorSpaceLinear,
	}
	p := palette[0]
	for range int(width) * int(height) {
		switch rng.IntN(6) {
		case 0:
			// repeat
		case 1:
			p = palette[rng.IntN(len(palette))]
		case 2:
			p.R += byte(rng.IntN(4)) - 2
			p.G += byte(rng.IntN(4)) - 2
			p.B += byte(rng.IntN(4)) - 2
		case 3:
			dg := byte(rng.IntN(64)) - 32
			p.G += dg
			p.R += dg + byte(rng.IntN(16)) - 8
			p.B += dg + byte(rng.IntN(16)) - 8
		case 4:
			p.A = byte(rng.IntN(256))
		default:
			p = qoi.Pixel{
				R: byte(rng.IntN(256)),
				G: byte(rng.IntN(256)),
				B: byte(rng.IntN(256)),
				A: p.A,
			}
		}
		img.Pix = append(img.Pix, p.R, p.G, p.B)
		if ch == qoi.ChannelsRGBA {
			img.Pix = append(img.Pix, p.A)
		}
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		width  uint32
		height uint32
		ch     qoi.Channels
	}{
		{name: "empty", width: 0, height: 0, ch: qoi.ChannelsRGBA},
		{name: "single pixel", width: 1, height: 1, ch: qoi.ChannelsRGB},
		{name: "rgb", width: 37, height: 23, ch: qoi.ChannelsRGB},
		{name: "rgba", width: 64, height: 48, ch: qoi.ChannelsRGBA},
		{name: "tall rgba", width: 3, height: 500, ch: qoi.ChannelsRGBA},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			expected := noisyImage(tc.width, tc.height, tc.ch, uint64(tc.width)*31+uint64(tc.height))
			if expected.Pix == nil {
				expected.Pix = []byte{}
			}

			data, err := qoi.Encode(expected)
			if err != nil {
				t.Fatalf("expected nil error, but got %v", err)
			}
			actual, err := qoi.Decode(data)
			if err != nil {
				t.Fatalf("expected nil error, but got %v", err)
			}

			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImage(t *testing.T) {
	t.Parallel()

	t.Run("Should resolve RGB pixels as opaque", func(t *testing.T) {
		t.Parallel()
		img := row(qoi.ChannelsRGB, qoi.Pixel{R: 1, G: 2, B: 3}, qoi.Pixel{R: 4, G: 5, B: 6})

		actual := img.At(1, 0)

		expected := color.NRGBA{R: 4, G: 5, B: 6, A: 255}
		if expected != actual {
			t.Fatalf("expected %v but got %v", expected, actual)
		}
		if !img.Opaque() {
			t.Fatal("expected RGB image to be opaque")
		}
	})

	t.Run("Should report translucent pixels", func(t *testing.T) {
		t.Parallel()
		img := row(qoi.ChannelsRGBA, qoi.Pixel{A: 255}, qoi.Pixel{A: 254})

		if img.Opaque() {
			t.Fatal("expected image not to be opaque")
		}
	})

	t.Run("Should convert sub image", func(t *testing.T) {
		t.Parallel()
		src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				src.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
			}
		}
		sub := src.SubImage(image.Rect(1, 2, 3, 4))
		expected := &qoi.Image{
			Width:    2,
			Height:   2,
			Channels: qoi.ChannelsRGB,
			Pix: []byte{
				1, 2, 7, 2, 2, 7,
				1, 3, 7, 2, 3, 7,
			},
		}

		actual := qoi.FromImage(sub, qoi.ChannelsRGB)

		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Fatalf("image mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should decode through image package", func(t *testing.T) {
		t.Parallel()
		src := image.NewRGBA(image.Rect(0, 0, 16, 8))
		for y := 0; y < 8; y++ {
			for x := 0; x < 16; x++ {
				src.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 32), B: 40, A: 255})
			}
		}
		var buf bytes.Buffer
		if err := qoi.EncodeImage(&buf, src, qoi.ChannelsRGBA); err != nil {
			t.Fatalf("expected nil error, but got %v", err)
		}

		actual, format, err := image.Decode(&buf)

		if err != nil {
			t.Fatalf("expected nil error, but got %v", err)
		}
		if format != "qoi" {
			t.Fatalf("expected format %q but got %q", "qoi", format)
		}
		if src.Bounds() != actual.Bounds() {
			t.Fatalf("expected bounds %v but got %v", src.Bounds(), actual.Bounds())
		}
		for y := 0; y < 8; y++ {
			for x := 0; x < 16; x++ {
				expected := color.NRGBAModel.Convert(src.At(x, y))
				if got := actual.At(x, y); expected != got {
					t.Fatalf("expected color %v but got %v at %v", expected, got, image.Point{x, y})
				}
			}
		}
	})

	t.Run("Should decode config", func(t *testing.T) {
		t.Parallel()
		data, err := qoi.Encode(noisyImage(12, 5, qoi.ChannelsRGB, 1))
		if err != nil {
			t.Fatalf("expected nil error, but got %v", err)
		}

		conf, format, err := image.DecodeConfig(bytes.NewReader(data))

		if err != nil {
			t.Fatalf("expected nil error, but got %v", err)
		}
		if format != "qoi" || conf.Width != 12 || conf.Height != 5 {
			t.Fatalf("unexpected config %q %+v", format, conf)
		}
	})

	t.Run("Should fail decoding config of bare header", func(t *testing.T) {
		t.Parallel()
		data := []byte{'q', 'o', 'i', 'f', 0, 0, 0, 1, 0, 0, 0, 1, 4, 0}

		_, err := qoi.DecodeConfig(bytes.NewReader(data))

		expectDecodeError(t, err, qoi.ErrParseHeader, 13)
	})
}
