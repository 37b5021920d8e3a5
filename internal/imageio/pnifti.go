package imageio

import (
	"fmt"
	"strings"

	pnifti "github.com/KyungWonPark/nifti"
	"github.com/jacksmith/fslw/internal/model"
	"github.com/pkg/errors"
)

// ParallelImage wraps a github.com/KyungWonPark/nifti image, whose reader
// inflates .nii.gz files with pgzip.
type ParallelImage struct {
	img *pnifti.Nifti1Image
}

// NewParallelImage wraps img for use as a wrapper input.
func NewParallelImage(img *pnifti.Nifti1Image) *ParallelImage {
	return &ParallelImage{img: img}
}

func (*ParallelImage) isInput() {}

// Backend returns model.BackendParallel.
func (*ParallelImage) Backend() model.Backend { return model.BackendParallel }

// Raw returns the underlying library image.
func (p *ParallelImage) Raw() *pnifti.Nifti1Image { return p.img }

func (p *ParallelImage) Dims() [4]int {
	d := p.img.GetDims()
	return [4]int{d[0], d[1], d[2], d[3]}
}

func (p *ParallelImage) At(x, y, z, t int) float64 {
	return float64(p.img.GetAt(uint32(x), uint32(y), uint32(z), uint32(t)))
}

// ParallelCodec reads and writes through github.com/KyungWonPark/nifti.
type ParallelCodec struct{}

func (ParallelCodec) Backend() model.Backend { return model.BackendParallel }

func (ParallelCodec) Read(path string) (img Image, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			img, err = nil, errors.Errorf("pnifti: failed to read %s: %v", path, panicErr)
		}
	}()

	var raw pnifti.Nifti1Image
	raw.LoadImage(path, true)
	if raw.GetHeader().Bitpix == 0 || raw.GetDims()[0] == 0 {
		return nil, errors.Errorf("pnifti: %s holds no image", path)
	}
	return &ParallelImage{img: &raw}, nil
}

// Write saves img, which must be a *ParallelImage, to path. Save appends
// .gz itself and keeps the original header; uncompressed paths are encoded
// as float32 voxels.
func (ParallelCodec) Write(img Image, path string) (err error) {
	p, ok := img.(*ParallelImage)
	if !ok {
		return fmt.Errorf("pnifti: cannot write %T", img)
	}

	defer func() {
		if panicErr := recover(); panicErr != nil {
			err = errors.Errorf("pnifti: failed to write %s: %v", path, panicErr)
		}
	}()

	if !strings.HasSuffix(path, ".gz") {
		return writeVolume(p, path)
	}
	p.img.Save(strings.TrimSuffix(path, ".gz"))
	return nil
}
