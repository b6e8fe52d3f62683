package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagDefault string
	flagFormat  string
)

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the value at a key",
	Long:  "Prints the value at KEY. Strings are printed bare; branches and other values as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var branchCmd = &cobra.Command{
	Use:   "branch KEY",
	Short: "Print the branch at a key as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runBranch,
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the full key of every leaf",
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

var findCmd = &cobra.Command{
	Use:   "find VALUE",
	Short: "Print the key of the first leaf holding VALUE",
	Long:  "VALUE is read as YAML, so 3 is an integer, true a boolean and \"3\" a string. Type and value must both match.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of entries, branches included",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the whole document",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the content hash of the document",
	Args:  cobra.NoArgs,
	RunE:  runHash,
}

func init() {
	getCmd.Flags().StringVar(&flagDefault, "default", "", "value to print when KEY is missing (read as YAML)")
	exportCmd.Flags().StringVar(&flagFormat, "format", "json", "output format: json|yaml")
}

func runGet(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	v, found := t.Lookup(args[0])
	if !found {
		if !cmd.Flags().Changed("default") {
			return fmt.Errorf("%q not found", args[0])
		}
		v = parseValue(flagDefault)
	}
	out, err := formatValue(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runBranch(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	b, err := t.GetBranch(args[0])
	if err != nil {
		return err
	}
	if b == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "null")
		return nil
	}
	out, err := encodeTree(b, "json")
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runKeys(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	for _, k := range t.Keys() {
		pathColor.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}

func runFind(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	path, found := t.Find(parseValue(args[0]))
	if !found {
		return fmt.Errorf("no leaf holds %s", args[0])
	}
	pathColor.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(t.Count()))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	out, err := encodeTree(t, flagFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runHash(cmd *cobra.Command, args []string) error {
	t, err := readTree()
	if err != nil {
		return err
	}
	h, err := t.Hash()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	return nil
}
