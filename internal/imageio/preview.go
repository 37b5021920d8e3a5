package imageio

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// PreviewOptions selects what Preview renders.
type PreviewOptions struct {
	Slice  int // axial slice; negative means the middle one
	Volume int // volume of a 4D image
	Width  int // output width in pixels; 0 keeps the image width
}

// Preview renders one axial slice of img as greyscale, scaled so the
// brightest voxel of the slice is white. Negative intensities are black.
func Preview(img Image, opts PreviewOptions) (out image.Image, err error) {
	dims := img.Dims()
	xm, ym, zm, tm := dims[0], dims[1], dims[2], max(dims[3], 1)
	if xm <= 0 || ym <= 0 || zm <= 0 {
		return nil, errors.Errorf("cannot preview image with dims %v", dims)
	}

	z := opts.Slice
	if z < 0 {
		z = zm / 2
	}
	if z >= zm {
		return nil, errors.Errorf("slice %d out of range [0,%d)", z, zm)
	}
	if opts.Volume < 0 || opts.Volume >= tm {
		return nil, errors.Errorf("volume %d out of range [0,%d)", opts.Volume, tm)
	}

	// Library images panic on out-of-range reads.
	defer func() {
		if panicErr := recover(); panicErr != nil {
			out, err = nil, errors.Errorf("failed to read slice %d: %v", z, panicErr)
		}
	}()

	maxIntensity := 0.0
	for x := 0; x < xm; x++ {
		for y := 0; y < ym; y++ {
			if v := img.At(x, y, z, opts.Volume); v > maxIntensity {
				maxIntensity = v
			}
		}
	}

	gray := image.NewGray16(image.Rect(0, 0, xm, ym))
	for x := 0; x < xm; x++ {
		for y := 0; y < ym; y++ {
			// Rows run top to bottom, so flip y to put anterior at the top.
			gray.SetGray16(x, ym-1-y, color.Gray16{Y: windowScale(img.At(x, y, z, opts.Volume), maxIntensity)})
		}
	}

	if opts.Width <= 0 || opts.Width == xm {
		return gray, nil
	}
	return imaging.Resize(gray, opts.Width, 0, imaging.Lanczos), nil
}

// WritePreview renders img and encodes it to w as PNG.
func WritePreview(w io.Writer, img Image, opts PreviewOptions) error {
	out, err := Preview(img, opts)
	if err != nil {
		return err
	}
	return errors.Wrap(imaging.Encode(w, out, imaging.PNG), "failed to encode preview")
}

func windowScale(intensity, maxIntensity float64) uint16 {
	if intensity <= 0 || maxIntensity <= 0 {
		return 0
	}
	return uint16(math.MaxUint16 * math.Min(intensity/maxIntensity, 1))
}
