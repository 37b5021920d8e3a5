package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/fslw/internal/cli"
	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <image> <output.png>",
	Short: "Save an axial slice as PNG",
	Long: `Read <image> with the configured backend and save one axial slice as
a greyscale PNG, scaled so the brightest voxel of the slice is white.

Examples:
  fslw preview t1_brain.nii.gz brain.png
  fslw preview bold.nii.gz bold.png --slice=20 --volume=5 --width=512`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

var (
	previewSlice  int
	previewVolume int
	previewWidth  int
)

func init() {
	previewCmd.Flags().IntVar(&previewSlice, "slice", -1, "axial slice (default middle)")
	previewCmd.Flags().IntVar(&previewVolume, "volume", 0, "volume of a 4D image")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "output width in pixels (default image width)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	in, err := homedir.Expand(args[0])
	if err != nil {
		return err
	}
	out, err := homedir.Expand(args[1])
	if err != nil {
		return err
	}

	img, err := tk.Bridge().Load(in)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	err = imageio.WritePreview(f, img, imageio.PreviewOptions{
		Slice:  previewSlice,
		Volume: previewVolume,
		Width:  previewWidth,
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(out)
		return err
	}

	fmt.Printf("%s %s\n", cli.Green("wrote"), out)
	return nil
}
