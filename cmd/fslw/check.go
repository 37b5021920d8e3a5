package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/fslw/internal/cli"
	"github.com/jacksmith/fslw/internal/toolkit"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that FSL can be found",
	Long: `Locate FSL the way every other command does and list which of the
programs fslw drives are installed. Exits 1 if FSL cannot be found.

When FSLDIR is exported, programs are looked up under $FSLDIR/bin.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc := newLocator(cfg)

	root, src, err := loc.ResolveRoot()
	if err != nil {
		fmt.Printf("%s %v\n", cli.Red("FSL not found:"), err)
		return &cli.ExitError{Code: 1, Err: fmt.Errorf("FSL not found")}
	}
	fmt.Printf("FSL found at %s (%s)\n", root, src)

	table := cli.NewTable()
	missing := 0
	for _, p := range programs {
		path := filepath.Join(root, "bin", p)
		if _, err := os.Stat(path); err != nil {
			missing++
			table.AddRow(p, cli.Yellow("missing"))
			continue
		}
		table.AddRow(p, cli.Status(0))
	}
	table.Render(os.Stdout)

	if missing > 0 {
		fmt.Printf("%d of %d programs missing\n", missing, len(programs))
	}
	return nil
}

// rootSource is shared with config show.
func rootSource(loc *toolkit.Locator) (string, string) {
	root, src, err := loc.ResolveRoot()
	if err != nil {
		return cli.Red(err.Error()), ""
	}
	return root, src.String()
}
