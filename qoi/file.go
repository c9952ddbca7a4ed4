package qoi

import (
	"log/slog"
	"os"
)

// Load reads and decodes the QOI file at path. Errors from the file system
// are returned unchanged.
func Load(path string) (*Image, error) {
	logger := slog.Default().With("file", path)
	logger.Debug("loading image")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded image", "width", img.Width, "height", img.Height, "bytes", len(data))
	return img, nil
}

// Store encodes img and writes it to path, replacing any existing file.
// Errors from the file system are returned unchanged.
func Store(path string, img *Image) (err error) {
	logger := slog.Default().With("file", path)

	data, err := Encode(img)
	if err != nil {
		return err
	}

	outFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Error("could not close image file", "error", closeErr)
			if err == nil {
				err = closeErr
			}
		}
	}()

	if _, err = outFile.Write(data); err != nil {
		return err
	}
	if err = outFile.Sync(); err != nil {
		return err
	}

	logger.Debug("stored image", "width", img.Width, "height", img.Height, "bytes", len(data))
	return nil
}
