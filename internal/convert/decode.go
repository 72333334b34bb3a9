package convert

import (
	"bytes"
	"errors"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

// Decode turns raw request bytes into a pixel buffer. Supported formats
// are whatever the registered decoders handle: PNG, JPEG, GIF, TIFF, BMP
// and WebP.
func Decode(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: errors.New("no input bytes")}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &EmptyImageError{Width: b.Dx(), Height: b.Dy()}
	}
	return imaging.Clone(img), nil
}

// preprocess applies the configured downscale and blur. The returned
// buffer is always origin-normalized NRGBA and never aliases src.
func preprocess(src *image.NRGBA, cfg Config) (*image.NRGBA, error) {
	img := src
	if cfg.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > cfg.MaxDimension || b.Dy() > cfg.MaxDimension {
			img = imaging.Fit(img, cfg.MaxDimension, cfg.MaxDimension, imaging.Lanczos)
		}
	}
	if cfg.PreblurSigma > 0 {
		img = imaging.Clone(blur.Gaussian(img, cfg.PreblurSigma))
	}
	if img == src {
		img = imaging.Clone(src)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &EmptyImageError{Width: b.Dx(), Height: b.Dy()}
	}
	return img, nil
}
