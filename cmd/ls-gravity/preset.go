package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-gravity/internal/scenario"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "List and export built-in presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range scenario.PresetNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var dumpOutput string

var presetDumpCmd = &cobra.Command{
	Use:   "dump [name]",
	Short: "Write a preset as a YAML scenario file",
	Long: `
Write a built-in preset as a YAML scenario. The output can be edited and
loaded back with --scenario.

Examples:
  ls-gravity preset dump solar > solar.yaml
  ls-gravity preset dump binary -o binary.yaml
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "solar"
		if len(args) == 1 {
			name = strings.ToLower(args[0])
		}
		bodies, err := scenario.Preset(name)
		if err != nil {
			return err
		}
		file := scenario.FromBodies(name, bodies)

		if dumpOutput == "" || dumpOutput == "-" {
			return file.Encode(cmd.OutOrStdout())
		}
		f, err := os.Create(dumpOutput)
		if err != nil {
			return fmt.Errorf("create scenario file: %w", err)
		}
		defer f.Close()
		if err := file.Encode(f); err != nil {
			return err
		}
		return f.Close()
	},
}

func init() {
	presetDumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "output file (default stdout)")
	presetCmd.AddCommand(presetListCmd, presetDumpCmd)
}
