package main

import (
	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/spf13/cobra"
)

var fnirtCmd = &cobra.Command{
	Use:   "fnirt <input> <reference> <output>",
	Short: "Register nonlinearly with fnirt",
	Long: `Register <input> to <reference> with fnirt, writing the warped image
to <output>.

With --affine, a 12 DOF flirt runs first and fnirt starts from its
result. The flirt image and matrix go to --flirt-out and --flirt-omat,
or to temp files.

Examples:
  fslw fnirt t1.nii.gz MNI152_T1_2mm.nii.gz t1_warped --opts="--config=T1_2_MNI152_2mm"
  fslw fnirt t1.nii.gz ref.nii.gz warped --affine --flirt-out=affine`,
	Args: cobra.ExactArgs(3),
	RunE: runFnirt,
}

var (
	fnirtOpts      string
	fnirtAffine    bool
	fnirtFlirtOmat string
	fnirtFlirtOut  string
	fnirtFlirtOpts string
)

func init() {
	fnirtCmd.Flags().StringVar(&fnirtOpts, "opts", "", "extra fnirt options")
	fnirtCmd.Flags().BoolVar(&fnirtAffine, "affine", false, "run a 12 DOF flirt first")
	fnirtCmd.Flags().StringVar(&fnirtFlirtOmat, "flirt-omat", "", "with --affine, write the flirt matrix here")
	fnirtCmd.Flags().StringVar(&fnirtFlirtOut, "flirt-out", "", "with --affine, write the flirt image here")
	fnirtCmd.Flags().StringVar(&fnirtFlirtOpts, "flirt-opts", "", "with --affine, extra flirt options")
	rootCmd.AddCommand(fnirtCmd)
}

func runFnirt(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	in, ref := imageio.Path(args[0]), imageio.Path(args[1])
	out := ops.Output{Out: args[2]}

	var res *ops.Result
	if fnirtAffine {
		res, err = tk.FNIRTWithAffine(ctx, in, ref, ops.AffineOptions{
			Output:    out,
			FlirtOmat: fnirtFlirtOmat,
			FlirtOut:  fnirtFlirtOut,
			FlirtOpts: fnirtFlirtOpts,
			Opts:      fnirtOpts,
			Verbose:   flagVerbose,
		})
	} else {
		res, err = tk.FNIRT(ctx, in, ref, ops.FNIRTOptions{
			Output:  out,
			Opts:    fnirtOpts,
			Verbose: flagVerbose,
		})
	}
	if err != nil {
		return err
	}
	return report(res)
}
