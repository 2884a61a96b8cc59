package main

import (
	"fmt"
	"os"

	"mixfleet/internal/config"
	"mixfleet/internal/paths"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if file, ferr := paths.ConfigFile(); ferr == nil {
		fmt.Printf("# %s\n", file)
	}
	fmt.Print(string(data))
	fmt.Printf("# effective scan root: %s\n", cfg.EffectiveScanRoot())
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := paths.ConfigDir()
	if err != nil {
		return err
	}
	file, err := paths.ConfigFile()
	if err != nil {
		return err
	}

	if _, err := os.Stat(file); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", file)
	}

	if err := config.DefaultConfig().Save(dir); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", file)
	return nil
}
