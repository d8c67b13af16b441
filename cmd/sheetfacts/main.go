// Package main provides the CLI entry point for sheetfacts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetfacts-go/internal/config"
	"github.com/ukaji3/sheetfacts-go/internal/logging"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/models"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/module"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/output"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/parser"
)

var (
	outputPath string
	pretty     bool
	format     string
	sheetsDir  string
	sheetNames []string
	formulas   bool
	logLevel   string

	logger    = zerolog.Nop()
	logCloser io.Closer
)

// errModuleFailed ends a failed module run after its response was printed.
var errModuleFailed = errors.New("module failed")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		if !errors.Is(err, errModuleFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetfacts [input.xlsx]",
		Short: "Convert spreadsheet sheets into Ansible facts",
		Long: `sheetfacts reads an xlsx workbook and turns every sheet into a list of
records keyed by the sheet's first row, output as JSON or YAML.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := cfg.LogOptions()
			opts.Level = logLevel
			var err error
			logger, logCloser, err = logging.New(opts, cmd.ErrOrStderr())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser == nil {
				return nil
			}
			return logCloser.Close()
		},
		RunE: run,
	}

	rootCmd.PersistentFlags().BoolVar(&formulas, "formulas", cfg.Formulas, "Return formula text instead of cached values")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level: trace, debug, info, warn, error")

	rootCmd.Flags().StringSliceVar(&sheetNames, "sheets", nil, "Sheets to extract, in order (default: all)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", cfg.Pretty, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&format, "format", cfg.Format, "Output format: json, yaml")
	rootCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "module [args-file]",
		Short: "Run as an Ansible binary module",
		Long: `module reads Ansible module arguments (src, sheets) from a JSON file and
prints the module response on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: runModule,
	})

	return rootCmd
}

func newExtractor() (*sheetfacts.Extractor, error) {
	reader := sheetfacts.NewExcelizeReader(parser.ReadOptions{Formulas: formulas})
	return sheetfacts.NewExtractor(reader, logger)
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	ex, err := newExtractor()
	if err != nil {
		return err
	}

	// Extract data
	facts, err := ex.Extract(inputPath, sheetfacts.Options{Sheets: sheetNames})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := output.Marshal(facts, outFormat, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	// Write output
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		if outFormat == output.FormatJSON {
			data = append(data, '\n')
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	// Write per-sheet files
	if sheetsDir != "" {
		if err := writeSheetFiles(facts, sheetsDir, outFormat); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	return nil
}

func writeSheetFiles(facts *models.Facts, dir string, format output.Format) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sheets := facts.AnsibleFacts
	for _, key := range sheets.Keys() {
		records, _ := sheets.Get(key)
		data, err := output.Marshal(records, format, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, key+"."+format.Ext())
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

func runModule(cmd *cobra.Command, args []string) error {
	resp := moduleResponse(args[0])
	if err := resp.Write(cmd.OutOrStdout()); err != nil {
		return err
	}
	if resp.Failed {
		return errModuleFailed
	}
	return nil
}

func moduleResponse(argsFile string) module.Response {
	ex, err := newExtractor()
	if err != nil {
		logger.Error().Err(err).Msg("workbook reader unavailable")
		return module.MissingDependency()
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		return module.Fail(fmt.Sprintf("read module arguments: %v", err))
	}
	args, err := module.ParseArgs(data)
	if err != nil {
		return module.Fail(err.Error())
	}
	return module.Execute(ex, args)
}
