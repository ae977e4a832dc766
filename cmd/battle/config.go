package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battle/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or validate battle configuration",
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the embedded default config",
	Long: `Print the embedded default config as YAML. Redirect it to a file to
start a custom config:

  battle config default > ~/.arcade/configs/battle.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.DefaultBattleYAML())
		return err
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a config file",
	Long: `Parse and validate a battle config, reporting every problem found.
Without an argument the file resolved from --config and the search path
is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigCheck,
}

func init() {
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigCheck(_ *cobra.Command, args []string) error {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}
	path = config.Locate(path)
	if path == "" {
		fmt.Println("No config file found; the embedded default is in use.")
		return nil
	}

	if _, err := config.LoadBattle(path); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}
