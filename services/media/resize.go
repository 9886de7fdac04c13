package mediasvc

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Limits on both the requested size and the decoded source.
const (
	MaxDimension = 10000
	MaxPixels    = 40_000_000
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.Errorf("image must not exceed %d pixels", MaxPixels)
)

func withinLimits(width, height int) bool {
	return width <= MaxDimension && height <= MaxDimension && width*height <= MaxPixels
}

// ResizeImage scales the image in data to exactly width x height and re-encodes it in its original format.
// It returns the new bytes and the format name (e.g. "png").
func ResizeImage(data []byte, width, height int) ([]byte, string, error) {
	if width <= 0 || height <= 0 {
		return nil, "", errors.Errorf("invalid dimensions %dx%d", width, height)
	}
	if !withinLimits(width, height) {
		return nil, "", ErrImageTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", errors.Wrap(err, "decoding image config")
	}
	if !withinLimits(cfg.Width, cfg.Height) {
		return nil, "", ErrImageTooLarge
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", errors.Wrap(err, "decoding image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case "png":
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	case "bmp":
		err = bmp.Encode(&buf, dst)
	case "tiff":
		err = tiff.Encode(&buf, dst, nil)
	default:
		return nil, "", ErrUnsupportedFormat
	}
	if err != nil {
		return nil, "", errors.Wrapf(err, "encoding %s image", format)
	}
	return buf.Bytes(), format, nil
}

// ContentType returns the MIME type of an image format name.
func ContentType(format string) string {
	return "image/" + format
}
