package imageio

import (
	"encoding/binary"
	"io"
	"os"
	"strings"

	"github.com/henghuang/nifti"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

const (
	headerSize   = 348
	voxelOffset  = 352
	dtFloat32    = 16
	float32Bits  = 32
	sclSlopeUnit = 1
)

// writeVolume stores img at path as a single-file NIfTI-1 volume of
// float32 voxels, x fastest. Paths ending in .gz are compressed.
func writeVolume(img Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "failed to close %s", path)
		}
	}()

	if !strings.HasSuffix(path, ".gz") {
		return encodeVolume(f, img)
	}

	zw := pgzip.NewWriter(f)
	if err := encodeVolume(zw, img); err != nil {
		zw.Close()
		return err
	}
	return errors.Wrapf(zw.Close(), "failed to compress %s", path)
}

func encodeVolume(w io.Writer, img Image) error {
	dims := img.Dims()
	nx, ny, nz, nt := dims[0], dims[1], dims[2], max(dims[3], 1)
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return errors.Errorf("cannot encode image with dimensions %v", dims)
	}

	ndim := int16(3)
	if nt > 1 {
		ndim = 4
	}

	hdr := nifti.Nifti1Header{
		SizeofHdr: headerSize,
		Dim:       [8]int16{ndim, int16(nx), int16(ny), int16(nz), int16(nt), 1, 1, 1},
		Datatype:  dtFloat32,
		Bitpix:    float32Bits,
		Pixdim:    [8]float32{1, 1, 1, 1, 1, 1, 1, 1},
		VoxOffset: voxelOffset,
		SclSlope:  sclSlopeUnit,
		Magic:     [4]byte{'n', '+', '1', 0},
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := w.Write(make([]byte, voxelOffset-headerSize)); err != nil {
		return errors.Wrap(err, "failed to write header padding")
	}

	voxels := make([]float32, 0, nx*ny*nz*nt)
	for t := 0; t < nt; t++ {
		for z := 0; z < nz; z++ {
			for y := 0; y < ny; y++ {
				for x := 0; x < nx; x++ {
					voxels = append(voxels, float32(img.At(x, y, z, t)))
				}
			}
		}
	}
	return errors.Wrap(binary.Write(w, binary.LittleEndian, voxels), "failed to write voxels")
}
