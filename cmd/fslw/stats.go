package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jacksmith/fslw/internal/cli"
	"github.com/jacksmith/fslw/internal/imageio"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <image> -- <fslstats options>",
	Short: "Summarise an image with fslstats",
	Long: `Run fslstats on <image>. Everything after -- is passed to fslstats.
Output lines are joined with spaces.

Examples:
  fslw stats t1.nii.gz -- -M
  fslw stats bold.nii.gz -t -- -m`,
	Args: cobra.MinimumNArgs(2),
	RunE: runStats,
}

var cogCmd = &cobra.Command{
	Use:   "cog <image>",
	Short: "Print the centre of gravity",
	Long: `Print the centre of gravity of <image> in mm, or in voxels with
--voxels. With --timeseries there is one row per volume.`,
	Args: cobra.ExactArgs(1),
	RunE: runCog,
}

var (
	statsTimeseries bool
	cogVoxels       bool
	cogTimeseries   bool
)

func init() {
	statsCmd.Flags().BoolVarP(&statsTimeseries, "timeseries", "t", false, "report each volume separately")
	cogCmd.Flags().BoolVar(&cogVoxels, "voxels", false, "report voxel coordinates instead of mm")
	cogCmd.Flags().BoolVarP(&cogTimeseries, "timeseries", "t", false, "report each volume separately")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cogCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	v, err := tk.Stats(commandContext(cmd), imageio.Path(args[0]), ops.StatsOptions{
		Opts:       shellquote.Join(args[1:]...),
		Timeseries: statsTimeseries,
		Verbose:    flagVerbose,
	})
	if err != nil {
		return err
	}
	if v.ExitCode != 0 {
		return &cli.ExitError{Code: v.ExitCode, Err: fmt.Errorf("fslstats exited with status %d", v.ExitCode)}
	}

	fmt.Println(v.String())
	return nil
}

func runCog(cmd *cobra.Command, args []string) error {
	tk, err := newToolkit()
	if err != nil {
		return err
	}

	cog, err := tk.COG(commandContext(cmd), imageio.Path(args[0]), ops.COGOptions{
		Voxels:     cogVoxels,
		Timeseries: cogTimeseries,
		Verbose:    flagVerbose,
	})
	if err != nil {
		return err
	}
	if cog.ExitCode != 0 {
		return &cli.ExitError{Code: cog.ExitCode, Err: cog.Err()}
	}

	table := cli.NewTable()
	table.AddRow(cli.Gray("x"), cli.Gray("y"), cli.Gray("z"))
	for i := 0; i+3 <= len(cog.Coords); i += 3 {
		c := cog.Coords[i : i+3]
		table.AddRow(formatCoord(c[0]), formatCoord(c[1]), formatCoord(c[2]))
	}
	table.Render(os.Stdout)
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
