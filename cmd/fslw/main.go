// Package main is the entry point for the fslw CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jacksmith/fslw/internal/cli"
	"github.com/jacksmith/fslw/internal/ops"
	"github.com/jacksmith/fslw/internal/storage"
	"github.com/jacksmith/fslw/internal/toolkit"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(cli.ExitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "fslw",
	Short: "fslw - run FSL neuroimaging programs",
	Long: `fslw runs programs from the FSL toolkit with a consistent interface.

It finds the FSL install (FSLDIR, then ~/.fslw.yaml, then the usual
locations), exports FSLOUTPUTTYPE, runs the program through sh, and
tidies up the files each program leaves behind.

A program that exits non-zero makes fslw exit with the same status.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			cli.SetColorEnabled(false)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Global flags.
var (
	flagConfig     string
	flagFSLDir     string
	flagOutputType string
	flagPrefix     string
	flagBackend    string
	flagVerbose    bool
	flagDebug      bool
	flagNoColor    bool
)

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.fslw.yaml)")
	pf.StringVar(&flagFSLDir, "fsldir", "", "FSL install root, used when FSLDIR is not exported")
	pf.StringVar(&flagOutputType, "outputtype", "", "FSLOUTPUTTYPE, used when not exported")
	pf.StringVar(&flagPrefix, "prefix", "", "text placed before every program name")
	pf.StringVar(&flagBackend, "backend", "", "imaging library used to read images (nifti, pnifti)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log each command before running it")
	pf.BoolVar(&flagDebug, "debug", false, "log temp file handling")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeConfigKeys(cmd, []string{"backend"}, toComplete)
	})
	rootCmd.RegisterFlagCompletionFunc("outputtype", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeConfigKeys(cmd, []string{"outputtype"}, toComplete)
	})

	// Replaced by the completion command.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("fslw version {{.Version}}\n")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*storage.Config, error) {
	cfg, err := storage.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}

	overrides := map[string]string{
		"fsldir":     flagFSLDir,
		"outputtype": flagOutputType,
		"prefix":     flagPrefix,
		"backend":    flagBackend,
	}
	for _, key := range storage.Keys() {
		if v := overrides[key]; v != "" {
			if err := cfg.Set(key, v); err != nil {
				return nil, fmt.Errorf("--%s: %w", key, err)
			}
		}
	}
	return cfg, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !cli.ColorEnabled(),
	})
	if flagDebug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newLocator(cfg *storage.Config) *toolkit.Locator {
	return toolkit.NewLocator(cfg, toolkit.WithLookupEnv(lookupEnv))
}

// newToolkit builds the toolkit every program command runs through.
func newToolkit() (*ops.Toolkit, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return ops.New(cfg,
		ops.WithLocator(newLocator(cfg)),
		ops.WithLogger(newLogger()),
	), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// report passes a program's output through and turns a non-zero exit
// into an ExitError.
func report(res *ops.Result) error {
	fmt.Print(res.Stdout)
	fmt.Fprint(os.Stderr, res.Stderr)
	if res.ExitCode != 0 {
		return &cli.ExitError{Code: res.ExitCode, Err: res.Err()}
	}
	if res.OutputFile != "" {
		fmt.Printf("%s %s\n", cli.Green("wrote"), res.OutputFile)
	}
	return nil
}
