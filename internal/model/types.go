// Package model defines the core value types shared by fslw packages.
package model

import (
	"sort"
	"strings"
)

// OutputType is an FSLOUTPUTTYPE value controlling which file layout
// FSL programs write.
type OutputType string

const (
	OutputNiftiGz     OutputType = "NIFTI_GZ"
	OutputNifti       OutputType = "NIFTI"
	OutputNiftiPair   OutputType = "NIFTI_PAIR"
	OutputNiftiPairGz OutputType = "NIFTI_PAIR_GZ"
	OutputAnalyze     OutputType = "ANALYZE"
	OutputAnalyzeGz   OutputType = "ANALYZE_GZ"
)

// DefaultOutputType is used when neither the environment nor the
// configuration names an output type.
const DefaultOutputType = OutputNiftiGz

// extensions maps every valid OutputType to the suffix FSL appends.
var extensions = map[OutputType]string{
	OutputNiftiGz:     ".nii.gz",
	OutputNifti:       ".nii",
	OutputNiftiPair:   ".hdr",
	OutputNiftiPairGz: ".hdr.gz",
	OutputAnalyze:     ".hdr",
	OutputAnalyzeGz:   ".hdr.gz",
}

// imageSuffixes lists every suffix TrimImageExt strips, longest first so
// ".nii.gz" wins over ".gz"-less forms.
var imageSuffixes = []string{".nii.gz", ".hdr.gz", ".img.gz", ".nii", ".hdr", ".img"}

// OutputTypes returns all valid output type names in sorted order.
func OutputTypes() []string {
	names := make([]string, 0, len(extensions))
	for t := range extensions {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// ParseOutputType validates s against the fixed output type table.
// Matching is exact; FSL itself only understands the upper-case names.
func ParseOutputType(s string) (OutputType, error) {
	t := OutputType(s)
	if _, ok := extensions[t]; !ok {
		return "", &ConfigurationError{
			Setting: "outputtype",
			Value:   s,
			Message: "must be one of " + strings.Join(OutputTypes(), ", "),
		}
	}
	return t, nil
}

// Extension returns the file suffix FSL writes for t.
func Extension(t OutputType) (string, error) {
	ext, ok := extensions[t]
	if !ok {
		return "", &ConfigurationError{
			Setting: "outputtype",
			Value:   string(t),
			Message: "no file extension registered",
		}
	}
	return ext, nil
}

// TrimImageExt removes a known image suffix from path, leaving the stem
// FSL programs take for their output arguments. Dots elsewhere in the path
// are preserved.
func TrimImageExt(path string) string {
	lower := strings.ToLower(path)
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return path[:len(path)-len(suffix)]
		}
	}
	return path
}

// ImageFiles returns the files FSL writes for the image stem+ext. Paired
// output types put the voxels in an .img file beside the .hdr header.
func ImageFiles(stem, ext string) []string {
	files := []string{stem + ext}
	if strings.HasPrefix(ext, ".hdr") {
		files = append(files, stem+".img"+strings.TrimPrefix(ext, ".hdr"))
	}
	return files
}

// Backend names an imaging library used to read and write NIfTI files.
type Backend string

const (
	// BackendNifti reads and writes through github.com/henghuang/nifti.
	BackendNifti Backend = "nifti"
	// BackendParallel reads and writes through github.com/KyungWonPark/nifti,
	// which decompresses with pgzip.
	BackendParallel Backend = "pnifti"
)

// DefaultBackend is selected when no backend has been configured.
const DefaultBackend = BackendNifti

// backendAliases maps accepted spellings to their canonical backend.
var backendAliases = map[string]Backend{
	"nifti":  BackendNifti,
	"nifti1": BackendNifti,
	"pnifti": BackendParallel,
}

// ParseBackend normalises s to a canonical Backend. Matching is
// case-insensitive and "nifti1" is accepted as an alias for "nifti".
func ParseBackend(s string) (Backend, error) {
	b, ok := backendAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &ConfigurationError{
			Setting: "backend",
			Value:   s,
			Message: "must be one of nifti, pnifti",
		}
	}
	return b, nil
}
