package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagForce   bool
	flagInPlace bool
)

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a value and print the resulting document",
	Long: "Sets KEY to VALUE, read as YAML, so [a, b] stores a list and {x: 1} a branch. " +
		"Replacing a branch with a scalar requires --force.",
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&flagForce, "force", false, "allow replacing a branch with a scalar")
	setCmd.Flags().BoolVarP(&flagInPlace, "in-place", "i", false, "rewrite --file instead of printing")
}

func runSet(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	value := parseValue(args[1])
	if flagForce {
		err = t.SetForce(args[0], value)
	} else {
		err = t.Set(args[0], value)
	}
	if err != nil {
		return err
	}
	logger.Debug("set value", "key", args[0], "force", flagForce)

	format := "json"
	if isYAMLPath(flagFile) {
		format = "yaml"
	}
	out, err := encodeTree(t, format)
	if err != nil {
		return err
	}
	if !flagInPlace {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(flagFile, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagFile, err)
	}
	return nil
}
