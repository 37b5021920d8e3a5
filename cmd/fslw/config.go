package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jacksmith/fslw/internal/cli"
	"github.com/jacksmith/fslw/internal/model"
	"github.com/jacksmith/fslw/internal/storage"
	"github.com/jacksmith/fslw/internal/toolkit"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change fslw settings",
	Long: `Show or change the settings in ~/.fslw.yaml (or --config).

Settings:
  fsldir      FSL install root, used when FSLDIR is not exported
  outputtype  FSLOUTPUTTYPE, used when not exported
  prefix      text placed before every program name
  backend     imaging library used to read images (nifti, pnifti)`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved settings and where each came from",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting in the config file.

Examples:
  fslw config set fsldir /usr/local/fsl
  fslw config set outputtype NIFTI
  fslw config set prefix ""`,
	Args:              cobra.ExactArgs(2),
	RunE:              runConfigSet,
	ValidArgsFunction: completeConfigKeys,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the config file in $EDITOR",
	Long: `Open the config file in $VISUAL or $EDITOR. The file is only written
back if it still parses and every value is valid.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath() (string, error) {
	if flagConfig != "" {
		return homedir.Expand(flagConfig)
	}
	return storage.DefaultConfigPath()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc := newLocator(cfg)

	// Sources must be read before the locator stores defaults in cfg.
	typeSource := "default"
	if v, ok := lookupEnv(toolkit.EnvOutputType); ok && v != "" {
		typeSource = "env"
	} else if cfg.OutputType != "" {
		typeSource = "config"
	}
	backendSource := "default"
	if cfg.Backend != "" {
		backendSource = "config"
	}

	root, rootSrc := rootSource(loc)

	var outputType, ext string
	if t, err := loc.OutputType(); err != nil {
		outputType = cli.Red(err.Error())
	} else {
		outputType = string(t)
		ext, _ = model.Extension(t)
	}

	backend := cfg.Backend
	if backend == "" {
		backend = string(model.DefaultBackend)
	}

	table := cli.NewTable()
	table.AddRow("config", path, "")
	table.AddRow("fsldir", root, cli.Gray(rootSrc))
	table.AddRow("outputtype", outputType, cli.Gray(typeSource))
	table.AddRow("extension", cli.OrUnset(ext), "")
	table.AddRow("prefix", cli.OrUnset(cfg.Prefix), "")
	table.AddRow("backend", backend, cli.Gray(backendSource))
	table.Render(os.Stdout)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := storage.SaveConfig(path, cfg); err != nil {
		return err
	}

	fmt.Printf("%s %s\n", cli.Green("updated"), path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		content, err = configTemplate()
	}
	if err != nil {
		return err
	}

	edited, err := cli.EditInEditor(content, ".yaml")
	if err != nil {
		return err
	}
	if bytes.Equal(edited, content) {
		fmt.Println("No changes.")
		return nil
	}
	if _, err := storage.ParseConfig(edited); err != nil {
		return fmt.Errorf("not saved: %w", err)
	}
	if err := os.WriteFile(path, edited, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("%s %s\n", cli.Green("updated"), path)
	return nil
}

// configTemplate lists every setting, commented out, for a new file.
func configTemplate() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# fslw settings; see `fslw config --help`.\n")
	for _, key := range storage.Keys() {
		line, err := yaml.Marshal(map[string]string{key: ""})
		if err != nil {
			return nil, err
		}
		buf.WriteString("# " + string(line))
	}
	return buf.Bytes(), nil
}

func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return storage.Keys(), cobra.ShellCompDirectiveNoFileComp
	case 1:
		switch args[0] {
		case "outputtype":
			return model.OutputTypes(), cobra.ShellCompDirectiveNoFileComp
		case "backend":
			return []string{string(model.BackendNifti), string(model.BackendParallel)}, cobra.ShellCompDirectiveNoFileComp
		case "fsldir":
			return nil, cobra.ShellCompDirectiveFilterDirs
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
