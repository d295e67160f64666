// Command gqlcoords reports the schema coordinates referenced by GraphQL
// documents. Results go to stdout, diagnostics to stderr; any terminal error
// exits non-zero.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/graph-tools/coordinates"
	"github.com/graph-tools/coordinates/corpus"
)

const defaultConfigFile = "gqlcoords.yaml"

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gqlcoords",
		Short:         "Extract schema coordinates from GraphQL documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newUsageCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	var (
		schemaPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "extract --schema <file> <document...>",
		Short: "Print the union of coordinates referenced by the given documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			files, err := corpus.ExpandPatterns(args)
			if err != nil {
				return err
			}

			union := make(map[string]struct{})
			for _, file := range files {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				coords, err := schema.ExtractCoordinates(string(data))
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				for _, coord := range coords {
					union[coord] = struct{}{}
				}
			}

			sorted := make([]string, 0, len(union))
			for coord := range union {
				sorted = append(sorted, coord)
			}
			sort.Strings(sorted)

			if asJSON {
				return writeJSON(cmd, sorted)
			}
			for _, coord := range sorted {
				fmt.Fprintln(cmd.OutOrStdout(), coord)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the SDL schema file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func newUsageCmd() *cobra.Command {
	var (
		configPath string
		schemaPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "usage [--config <file>] [--schema <file>] [pattern...]",
		Short: "Count how many documents in a corpus reference each coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath, schemaPath, args)
			if err != nil {
				return err
			}

			schema, err := loadSchema(cfg.Schema)
			if err != nil {
				return err
			}
			report, err := corpus.Scan(schema, cfg.Documents, cfg.FailFast)
			if err != nil {
				return err
			}
			for file, ferr := range report.Failures {
				logger.Warn("document skipped",
					slog.String("file", file),
					slog.String("error", ferr.Error()))
			}

			if asJSON {
				return writeJSON(cmd, report.Counts)
			}
			for _, coord := range report.Coordinates() {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", report.Counts[coord], coord)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to the corpus config file")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the SDL schema file (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")
	return cmd
}

// resolveConfig layers explicit flags and patterns over the config file. The
// default config file is optional; one named with --config must exist.
func resolveConfig(configPath, schemaPath string, patterns []string) (*corpus.Config, error) {
	cfg := &corpus.Config{}
	switch {
	case configPath != "":
		loaded, err := corpus.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		if loaded, err := corpus.LoadConfig(defaultConfigFile); err == nil {
			cfg = loaded
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if schemaPath != "" {
		cfg.Schema = schemaPath
	}
	if len(patterns) > 0 {
		cfg.Documents = patterns
	}
	return cfg, cfg.Validate()
}

func loadSchema(path string) (*coordinates.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	schema, err := coordinates.ParseSchema(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schema, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
