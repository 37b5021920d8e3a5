// Package imageio moves images between memory and the files toolkit
// programs read and write.
package imageio

import "github.com/jacksmith/fslw/internal/model"

// Input is anything a wrapper accepts where an image is expected: a Path,
// or an in-memory Image from one of the supported backends.
type Input interface {
	isInput()
}

// Path is an image file on disk. A leading ~ is expanded.
type Path string

func (Path) isInput() {}

// Image is a volume held in memory by one of the imaging backends.
type Image interface {
	Input

	// Backend identifies the library that owns the image.
	Backend() model.Backend

	// Dims returns the x, y, z and t extents.
	Dims() [4]int

	// At returns the voxel value at (x, y, z, t).
	At(x, y, z, t int) float64
}

// Codec reads and writes images for one backend.
type Codec interface {
	Backend() model.Backend
	Read(path string) (Image, error)
	Write(img Image, path string) error
}
