package imageio

import (
	"fmt"

	"github.com/henghuang/nifti"
	"github.com/jacksmith/fslw/internal/model"
	"github.com/pkg/errors"
)

// NiftiImage wraps a github.com/henghuang/nifti image.
type NiftiImage struct {
	img *nifti.Nifti1Image
}

// NewNiftiImage wraps img for use as a wrapper input.
func NewNiftiImage(img *nifti.Nifti1Image) *NiftiImage {
	return &NiftiImage{img: img}
}

func (*NiftiImage) isInput() {}

// Backend returns model.BackendNifti.
func (*NiftiImage) Backend() model.Backend { return model.BackendNifti }

// Raw returns the underlying library image.
func (n *NiftiImage) Raw() *nifti.Nifti1Image { return n.img }

func (n *NiftiImage) Dims() [4]int {
	d := n.img.GetDims()
	return [4]int{d[0], d[1], d[2], d[3]}
}

func (n *NiftiImage) At(x, y, z, t int) float64 {
	return float64(n.img.GetAt(x, y, z, t))
}

// NiftiCodec reads and writes through github.com/henghuang/nifti.
type NiftiCodec struct{}

func (NiftiCodec) Backend() model.Backend { return model.BackendNifti }

// Read loads the header and voxel data of path. The library panics on
// malformed input; the panic is returned as an error.
func (NiftiCodec) Read(path string) (img Image, err error) {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			img, err = nil, errors.Errorf("nifti: failed to read %s: %v", path, panicErr)
		}
	}()

	var raw nifti.Nifti1Image
	raw.LoadImage(path, true)
	if raw.GetDims()[0] == 0 {
		return nil, errors.Errorf("nifti: %s holds no image", path)
	}
	return &NiftiImage{img: &raw}, nil
}

// Write saves img, which must be a *NiftiImage, to path as float32 voxels
// with unit spacing. The library's own Save always appends .gz to the name
// and leaves the stream unterminated, so the volume is encoded here.
func (NiftiCodec) Write(img Image, path string) (err error) {
	n, ok := img.(*NiftiImage)
	if !ok {
		return fmt.Errorf("nifti: cannot write %T", img)
	}

	defer func() {
		if panicErr := recover(); panicErr != nil {
			err = errors.Errorf("nifti: failed to write %s: %v", path, panicErr)
		}
	}()

	return writeVolume(n, path)
}
