package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jrhy/paramtree"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagFile      string
	flagSeparator string
	flagVerbose   bool
	flagNoColor   bool
)

var (
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	pathColor  = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed, color.Bold)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorColor.Sprint("Error:"), err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ptree",
	Short:         "Query and edit parameter trees stored as JSON or YAML",
	Long:          "ptree reads a JSON or YAML document as a tree of parameters addressed by composite keys like db.primary.host.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		color.NoColor = flagNoColor || !isTerminal(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "JSON or YAML document to read (format by extension)")
	rootCmd.PersistentFlags().StringVar(&flagSeparator, "separator", paramtree.DefaultSeparator, "separator between key segments")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "never color key paths")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
}

// --- Helpers ---

func treeOptions() (*paramtree.Options, error) {
	if flagSeparator == "" {
		return nil, fmt.Errorf("%w: --separator must not be empty", paramtree.ErrInvalidArgument)
	}
	return &paramtree.Options{Separator: flagSeparator}, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readTree loads the --file document.
func readTree() (*paramtree.Tree, error) {
	if flagFile == "" {
		return nil, fmt.Errorf("no document given; use --file")
	}
	opts, err := treeOptions()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(flagFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", flagFile, err)
	}
	var t *paramtree.Tree
	if isYAMLPath(flagFile) {
		t, err = paramtree.FromYAML(data, opts)
	} else {
		t, err = paramtree.FromJSON(data, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", flagFile, err)
	}
	logger.Debug("loaded tree", "file", flagFile, "count", t.Count())
	return t, nil
}

// encodeTree renders t as json or yaml.
func encodeTree(t *paramtree.Tree, format string) ([]byte, error) {
	switch format {
	case "json":
		b, err := t.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		return t.ToYAML()
	}
	return nil, fmt.Errorf("invalid format %q: must be json or yaml", format)
}

// parseValue reads a command-line value as a YAML scalar or flow
// collection, falling back to the raw string. Mappings keep the order they
// were written in, and an empty argument is the empty string.
func parseValue(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return s
	}
	v, err := paramtree.DecodeYAMLValue([]byte(s))
	if err != nil {
		return s
	}
	return v
}

// formatValue prints strings bare and everything else as JSON.
func formatValue(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
